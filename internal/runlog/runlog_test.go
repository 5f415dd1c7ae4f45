package runlog_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/styleforge/styleforge/internal/kvstore"
	"github.com/styleforge/styleforge/internal/pipeline"
	"github.com/styleforge/styleforge/internal/runlog"
)

func record(n int) pipeline.RunRecord {
	return pipeline.RunRecord{
		ID:        fmt.Sprintf("run-%d", n),
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute),
		Prompt:    fmt.Sprintf("prompt %d", n),
		Artifacts: []pipeline.GeneratedArtifact{{FileName: "style.css", Kind: pipeline.ArtifactStylesheet}},
	}
}

func TestAppend_CapsAtTwentyNewestFirst(t *testing.T) {
	store := kvstore.NewMemory()
	h := runlog.Load(store, nil)

	for n := 1; n <= 25; n++ {
		h.Append(record(n))
	}

	records := h.List()
	if len(records) != runlog.MaxRecords {
		t.Fatalf("expected %d records, got %d", runlog.MaxRecords, len(records))
	}
	// 25 appends keep the 20 most recent: 25 down to 6.
	for i, r := range records {
		want := fmt.Sprintf("run-%d", 25-i)
		if r.ID != want {
			t.Fatalf("record %d = %s, want %s", i, r.ID, want)
		}
	}
}

func TestAppend_PersistsEveryMutation(t *testing.T) {
	store := kvstore.NewMemory()
	h := runlog.Load(store, nil)
	h.Append(record(1))

	reloaded := runlog.Load(store, nil)
	if reloaded.Len() != 1 {
		t.Fatalf("append must be durable, reloaded %d records", reloaded.Len())
	}
	if reloaded.List()[0].ID != "run-1" {
		t.Fatalf("unexpected reloaded record: %+v", reloaded.List()[0])
	}
}

func TestRemove(t *testing.T) {
	store := kvstore.NewMemory()
	h := runlog.Load(store, nil)
	h.Append(record(1))
	h.Append(record(2))

	h.Remove("run-1")
	if h.Len() != 1 || h.List()[0].ID != "run-2" {
		t.Fatalf("unexpected log after remove: %+v", h.List())
	}

	h.Remove("no-such-id")
	if h.Len() != 1 {
		t.Fatal("removing an unknown id must be a no-op")
	}

	reloaded := runlog.Load(store, nil)
	if reloaded.Len() != 1 {
		t.Fatalf("remove must persist, reloaded %d records", reloaded.Len())
	}
}

func TestLoad_MalformedDataFallsBackToEmpty(t *testing.T) {
	store := kvstore.NewMemory()
	if err := store.Set(kvstore.KeyRunHistory, []byte(`{"not":"a list"}`)); err != nil {
		t.Fatal(err)
	}

	h := runlog.Load(store, nil)
	if h.Len() != 0 {
		t.Fatalf("malformed data must load as empty, got %d", h.Len())
	}
}

func TestAppend_SwallowsWriteFailure(t *testing.T) {
	store := kvstore.NewMemory()
	store.FailWrites = true
	store.SetErr = errors.New("disk full")

	h := runlog.Load(store, nil)
	h.Append(record(1))

	// The in-memory log still reflects the append.
	if h.Len() != 1 {
		t.Fatalf("write failure must not lose the in-memory record, got %d", h.Len())
	}
}
