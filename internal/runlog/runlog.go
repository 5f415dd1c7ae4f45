// Package runlog keeps the bounded, persisted log of completed generation
// runs. Newest first, capped, written through the key-value store on every
// mutation.
package runlog

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/styleforge/styleforge/internal/kvstore"
	"github.com/styleforge/styleforge/internal/pipeline"
)

// MaxRecords is the retention cap. Appending past it evicts the oldest
// record.
const MaxRecords = 20

type History struct {
	store  kvstore.Store
	logger *zap.Logger

	mu      sync.Mutex
	records []pipeline.RunRecord
}

// Load reads the persisted log. Absent or malformed data falls back to an
// empty log; a parse failure never reaches the caller.
func Load(store kvstore.Store, logger *zap.Logger) *History {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &History{store: store, logger: logger}

	data, ok, err := store.Get(kvstore.KeyRunHistory)
	if err != nil || !ok {
		if err != nil {
			logger.Warn("load run history", zap.Error(err))
		}
		return h
	}
	var records []pipeline.RunRecord
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("run history is malformed, starting empty", zap.Error(err))
		return h
	}
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	h.records = records
	return h
}

// Append prepends record and evicts past the cap, then persists. Implements
// pipeline.RunLog.
func (h *History) Append(record pipeline.RunRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append([]pipeline.RunRecord{record}, h.records...)
	if len(h.records) > MaxRecords {
		h.records = h.records[:MaxRecords]
	}
	h.persistLocked()
}

// Remove deletes the record with the given id and persists. Unknown ids are
// a no-op.
func (h *History) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.records[:0]
	removed := false
	for _, record := range h.records {
		if record.ID == id {
			removed = true
			continue
		}
		kept = append(kept, record)
	}
	if !removed {
		return
	}
	h.records = kept
	h.persistLocked()
}

// List returns a copy of the log, newest first.
func (h *History) List() []pipeline.RunRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]pipeline.RunRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Len returns the number of retained records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// persistLocked writes the whole log through the store. A failed persist is
// logged and swallowed; the in-memory log stays authoritative for the
// session.
func (h *History) persistLocked() {
	data, err := json.Marshal(h.records)
	if err != nil {
		h.logger.Warn("marshal run history", zap.Error(err))
		return
	}
	if err := h.store.Set(kvstore.KeyRunHistory, data); err != nil {
		h.logger.Warn("persist run history", zap.Error(err))
	}
}
