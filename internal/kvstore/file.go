package kvstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/styleforge/styleforge/internal/fsops"
)

// File is a Store backed by a single JSON object file. Every Set rewrites
// the whole file atomically. A missing or malformed file reads as empty.
type File struct {
	filesystem fsops.FS
	path       string
}

func NewFile(filesystem fsops.FS, path string) *File {
	return &File{filesystem: filesystem, path: path}
}

func (s *File) load() map[string]json.RawMessage {
	data, err := s.filesystem.ReadFile(s.path)
	if err != nil {
		return map[string]json.RawMessage{}
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		return map[string]json.RawMessage{}
	}
	return values
}

func (s *File) save(values map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := s.filesystem.MkdirAll(s.filesystem.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	if err := fsops.WriteFileAtomic(s.filesystem, s.path, data, os.FileMode(0o644)); err != nil {
		return fmt.Errorf("write store %s: %w", s.path, err)
	}
	return nil
}

func (s *File) Get(key string) ([]byte, bool, error) {
	value, ok := s.load()[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

func (s *File) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for key %q is not valid JSON", key)
	}
	values := s.load()
	values[key] = json.RawMessage(value)
	return s.save(values)
}

func (s *File) Delete(key string) error {
	values := s.load()
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}
