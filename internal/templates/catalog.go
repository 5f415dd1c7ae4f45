// Package templates manages the style template catalog: stock entries seeded
// from configuration plus user-authored entries, persisted in full on every
// mutation.
package templates

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/styleforge/styleforge/internal/kvstore"
)

// StyleTemplate is one reusable style prompt.
type StyleTemplate struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Prompt         string `json:"prompt"`
	LikeCount      int    `json:"like_count"`
	IsLiked        bool   `json:"is_liked"`
	IsUserAuthored bool   `json:"is_user_authored"`
}

// ErrNotFound reports an unknown template id.
type ErrNotFound struct{ ID string }

func (e *ErrNotFound) Error() string { return "template not found: " + e.ID }

// ErrNotEditable reports a mutation attempted on a stock template.
type ErrNotEditable struct{ ID string }

func (e *ErrNotEditable) Error() string { return "stock templates cannot be edited: " + e.ID }

type Catalog struct {
	store  kvstore.Store
	logger *zap.Logger

	mu      sync.Mutex
	entries []StyleTemplate
}

// Load builds the catalog from the persisted state, falling back to the
// provided stock seeds when nothing (or garbage) is stored. Stock seeds
// absent from the persisted state are appended, so new built-ins show up for
// existing users.
func Load(store kvstore.Store, seeds []StyleTemplate, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{store: store, logger: logger}

	data, ok, err := store.Get(kvstore.KeyTemplates)
	if err != nil || !ok {
		if err != nil {
			logger.Warn("load template catalog", zap.Error(err))
		}
		c.entries = append(c.entries, seeds...)
		return c
	}
	var persisted []StyleTemplate
	if err := json.Unmarshal(data, &persisted); err != nil {
		logger.Warn("template catalog is malformed, reseeding", zap.Error(err))
		c.entries = append(c.entries, seeds...)
		return c
	}
	c.entries = persisted
	for _, seed := range seeds {
		if _, idx := c.findLocked(seed.ID); idx < 0 {
			c.entries = append(c.entries, seed)
		}
	}
	return c
}

// List returns a copy of the catalog in stored order.
func (c *Catalog) List() []StyleTemplate {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StyleTemplate, len(c.entries))
	copy(out, c.entries)
	return out
}

// Search filters by case-insensitive containment over name or prompt text.
func (c *Catalog) Search(substring string) []StyleTemplate {
	needle := strings.ToLower(strings.TrimSpace(substring))
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []StyleTemplate
	for _, entry := range c.entries {
		if needle == "" ||
			strings.Contains(strings.ToLower(entry.Name), needle) ||
			strings.Contains(strings.ToLower(entry.Prompt), needle) {
			out = append(out, entry)
		}
	}
	return out
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (StyleTemplate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, idx := c.findLocked(id)
	if idx < 0 {
		return StyleTemplate{}, &ErrNotFound{ID: id}
	}
	return entry, nil
}

// Like toggles the liked flag and adjusts the like count accordingly.
func (c *Catalog) Like(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, idx := c.findLocked(id)
	if idx < 0 {
		return &ErrNotFound{ID: id}
	}
	if entry.IsLiked {
		entry.IsLiked = false
		entry.LikeCount--
	} else {
		entry.IsLiked = true
		entry.LikeCount++
	}
	c.entries[idx] = entry
	c.persistLocked()
	return nil
}

// Rename changes a user-authored template's name.
func (c *Catalog) Rename(id, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("template name is empty")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, idx := c.findLocked(id)
	if idx < 0 {
		return &ErrNotFound{ID: id}
	}
	if !entry.IsUserAuthored {
		return &ErrNotEditable{ID: id}
	}
	entry.Name = trimmed
	c.entries[idx] = entry
	c.persistLocked()
	return nil
}

// Delete removes a user-authored template.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, idx := c.findLocked(id)
	if idx < 0 {
		return &ErrNotFound{ID: id}
	}
	if !entry.IsUserAuthored {
		return &ErrNotEditable{ID: id}
	}
	c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
	c.persistLocked()
	return nil
}

// Save creates a new user-authored entry with a zero like count.
func (c *Catalog) Save(name, prompt string) (StyleTemplate, error) {
	trimmedName := strings.TrimSpace(name)
	trimmedPrompt := strings.TrimSpace(prompt)
	if trimmedName == "" || trimmedPrompt == "" {
		return StyleTemplate{}, fmt.Errorf("template name and prompt are required")
	}
	entry := StyleTemplate{
		ID:             uuid.NewString(),
		Name:           trimmedName,
		Prompt:         trimmedPrompt,
		IsUserAuthored: true,
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	c.persistLocked()
	return entry, nil
}

func (c *Catalog) findLocked(id string) (StyleTemplate, int) {
	for idx, entry := range c.entries {
		if entry.ID == id {
			return entry, idx
		}
	}
	return StyleTemplate{}, -1
}

func (c *Catalog) persistLocked() {
	data, err := json.Marshal(c.entries)
	if err != nil {
		c.logger.Warn("marshal template catalog", zap.Error(err))
		return
	}
	if err := c.store.Set(kvstore.KeyTemplates, data); err != nil {
		c.logger.Warn("persist template catalog", zap.Error(err))
	}
}
