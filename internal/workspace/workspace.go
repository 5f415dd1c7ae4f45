// Package workspace holds the application context: the working file set and
// style prompt, their undo/redo history, and the small persisted user
// preferences. It is constructed once at startup and passed to whatever
// needs it; there is no module-level state.
package workspace

import (
	"bytes"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"github.com/styleforge/styleforge/internal/kvstore"
	"github.com/styleforge/styleforge/internal/pipeline"
)

const DefaultTheme = "light"

type Workspace struct {
	store  kvstore.Store
	logger *zap.Logger

	mu      sync.Mutex
	files   []pipeline.InputFile
	prompt  string
	history *pipeline.SnapshotHistory

	markdown goldmark.Markdown
}

func New(store kvstore.Store, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Workspace{
		store:    store,
		logger:   logger,
		markdown: goldmark.New(),
	}
	w.history = pipeline.NewSnapshotHistory(w.snapshotLocked())
	return w
}

// AddFile admits one uploaded document. Markdown uploads are rendered to
// markup first so the pipeline always works on markup. Returns false when
// the file-set cap drops the submission; the drop is silent by contract.
func (w *Workspace) AddFile(name, content string, source pipeline.EditSource) (pipeline.InputFile, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.files) >= pipeline.MaxInputFiles {
		return pipeline.InputFile{}, false
	}
	file := pipeline.InputFile{
		ID:      uuid.NewString(),
		Name:    name,
		Content: w.normalize(name, content),
	}
	w.files = append(w.files, file)
	w.history.Commit(w.snapshotLocked(), source)
	return file, true
}

// RemoveFile drops the file with the given id. Unknown ids are a no-op.
func (w *Workspace) RemoveFile(id string, source pipeline.EditSource) {
	w.mu.Lock()
	defer w.mu.Unlock()
	kept := w.files[:0]
	removed := false
	for _, file := range w.files {
		if file.ID == id {
			removed = true
			continue
		}
		kept = append(kept, file)
	}
	if !removed {
		return
	}
	w.files = kept
	w.history.Commit(w.snapshotLocked(), source)
}

// SetPrompt updates the style prompt. Free-text edits commit to history
// after the debounce quiet period, not per keystroke.
func (w *Workspace) SetPrompt(text string, source pipeline.EditSource) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prompt = text
	w.history.CommitDebounced(w.snapshotLocked(), source)
}

// ApplyTemplatePrompt replaces the prompt from a selected template. Template
// selection is a discrete edit and commits immediately.
func (w *Workspace) ApplyTemplatePrompt(prompt string, source pipeline.EditSource) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prompt = prompt
	w.history.Commit(w.snapshotLocked(), source)
}

// Snapshot returns the current (file set, prompt) pair.
func (w *Workspace) Snapshot() pipeline.InputSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked().Clone()
}

// Undo steps the history back and replays that snapshot into the workspace.
// No-op at the head.
func (w *Workspace) Undo() pipeline.InputSnapshot {
	snapshot := w.history.Undo()
	w.apply(snapshot)
	return snapshot
}

// Redo steps the history forward and replays that snapshot. No-op at the
// tail.
func (w *Workspace) Redo() pipeline.InputSnapshot {
	snapshot := w.history.Redo()
	w.apply(snapshot)
	return snapshot
}

func (w *Workspace) CanUndo() bool { return w.history.CanUndo() }
func (w *Workspace) CanRedo() bool { return w.history.CanRedo() }

// Reset starts a new project: empty file set, empty prompt, fresh history.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = nil
	w.prompt = ""
	w.history.Reset(w.snapshotLocked())
}

// Theme returns the persisted theme preference, defaulting on anything
// missing or malformed.
func (w *Workspace) Theme() string {
	data, ok, err := w.store.Get(kvstore.KeyTheme)
	if err != nil || !ok {
		return DefaultTheme
	}
	theme := strings.Trim(string(data), `"`)
	if theme == "" {
		return DefaultTheme
	}
	return theme
}

// SetTheme persists the theme preference. A failed write is logged and
// swallowed.
func (w *Workspace) SetTheme(theme string) {
	if err := w.store.Set(kvstore.KeyTheme, []byte(`"`+theme+`"`)); err != nil {
		w.logger.Warn("persist theme", zap.Error(err))
	}
}

// apply replays a snapshot into the live state. The replay itself must not
// re-enter the history; snapshots come from it already.
func (w *Workspace) apply(snapshot pipeline.InputSnapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	clone := snapshot.Clone()
	w.files = clone.Files
	w.prompt = clone.Prompt
}

func (w *Workspace) snapshotLocked() pipeline.InputSnapshot {
	files := make([]pipeline.InputFile, len(w.files))
	copy(files, w.files)
	return pipeline.InputSnapshot{Files: files, Prompt: w.prompt}
}

// normalize renders markdown uploads to markup. Conversion failures keep the
// raw content; admission is tolerant.
func (w *Workspace) normalize(name, content string) string {
	ext := strings.ToLower(name)
	if !strings.HasSuffix(ext, ".md") && !strings.HasSuffix(ext, ".markdown") {
		return content
	}
	var buf bytes.Buffer
	if err := w.markdown.Convert([]byte(content), &buf); err != nil {
		w.logger.Warn("markdown conversion failed, keeping raw content", zap.String("file", name), zap.Error(err))
		return content
	}
	return buf.String()
}
