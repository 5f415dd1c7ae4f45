package pipeline

import (
	"testing"
	"time"
)

func snap(prompt string, names ...string) InputSnapshot {
	files := make([]InputFile, 0, len(names))
	for i, n := range names {
		files = append(files, InputFile{ID: n, Name: n, Content: "doc " + n + string(rune('0'+i))})
	}
	return InputSnapshot{Files: files, Prompt: prompt}
}

// manualScheduler captures scheduled work so tests fire or cancel it
// explicitly instead of sleeping.
type manualScheduler struct {
	fn        func()
	cancelled int
}

func (m *manualScheduler) schedule(_ time.Duration, fn func()) func() {
	m.fn = fn
	return func() {
		m.fn = nil
		m.cancelled++
	}
}

func (m *manualScheduler) fire() {
	if m.fn != nil {
		fn := m.fn
		m.fn = nil
		fn()
	}
}

func TestHistory_UndoThenRedoRestores(t *testing.T) {
	h := NewSnapshotHistory(snap(""))
	h.Commit(snap("retro", "a.txt"), SourceUser)
	h.Commit(snap("retro neon", "a.txt", "b.txt"), SourceUser)

	before := h.Current()
	h.Undo()
	after := h.Redo()

	if after.Prompt != before.Prompt || len(after.Files) != len(before.Files) {
		t.Fatalf("undo+redo must restore: before=%+v after=%+v", before, after)
	}
}

func TestHistory_UndoAtHeadIsNoop(t *testing.T) {
	h := NewSnapshotHistory(snap("initial"))
	got := h.Undo()
	if got.Prompt != "initial" {
		t.Fatalf("undo at head must return current snapshot, got %q", got.Prompt)
	}
	if h.CanUndo() {
		t.Fatal("nothing to undo at head")
	}
}

func TestHistory_CommitAfterUndoTruncates(t *testing.T) {
	h := NewSnapshotHistory(snap(""))
	h.Commit(snap("one", "a.txt"), SourceUser)
	h.Commit(snap("two", "a.txt"), SourceUser)
	h.Commit(snap("three", "a.txt"), SourceUser)

	h.Undo()
	h.Undo()
	h.Commit(snap("branch", "a.txt"), SourceUser)

	if h.CanRedo() {
		t.Fatal("redo must be unavailable past the new tail")
	}
	if got := h.Current().Prompt; got != "branch" {
		t.Fatalf("cursor should sit on the new commit, got %q", got)
	}
	if h.Len() != 3 {
		t.Fatalf("expected initial+one+branch, got %d entries", h.Len())
	}
}

func TestHistory_ReplayEditsAreNotRecorded(t *testing.T) {
	h := NewSnapshotHistory(snap(""))
	h.Commit(snap("one", "a.txt"), SourceUser)
	length := h.Len()

	h.Commit(snap("replayed", "a.txt"), SourceReplay)
	h.CommitDebounced(snap("replayed too", "a.txt"), SourceReplay)

	if h.Len() != length {
		t.Fatalf("replay-sourced edits must not grow the history: %d != %d", h.Len(), length)
	}
}

func TestHistory_DebounceCoalescesEdits(t *testing.T) {
	sched := &manualScheduler{}
	h := NewSnapshotHistory(snap(""))
	h.schedule = sched.schedule

	h.CommitDebounced(snap("r"), SourceUser)
	h.CommitDebounced(snap("re"), SourceUser)
	h.CommitDebounced(snap("retro"), SourceUser)
	if h.Len() != 1 {
		t.Fatalf("no commit before the quiet period elapses, got %d entries", h.Len())
	}
	if sched.cancelled != 2 {
		t.Fatalf("each new edit must cancel the pending commit, cancels=%d", sched.cancelled)
	}

	sched.fire()
	if h.Len() != 2 {
		t.Fatalf("expected exactly one coalesced entry, got %d", h.Len())
	}
	if got := h.Current().Prompt; got != "retro" {
		t.Fatalf("latest edit wins, got %q", got)
	}
}

func TestHistory_StructuralCommitDropsPendingDebounce(t *testing.T) {
	sched := &manualScheduler{}
	h := NewSnapshotHistory(snap(""))
	h.schedule = sched.schedule

	h.CommitDebounced(snap("typing"), SourceUser)
	h.Commit(snap("typing", "a.txt"), SourceUser)
	sched.fire()

	// The structural commit already captured the prompt; firing the stale
	// timer must not add another entry.
	if h.Len() != 2 {
		t.Fatalf("expected initial+structural, got %d", h.Len())
	}
}

func TestHistory_UndoFlushesPendingDebounce(t *testing.T) {
	sched := &manualScheduler{}
	h := NewSnapshotHistory(snap(""))
	h.schedule = sched.schedule

	h.CommitDebounced(snap("draft"), SourceUser)
	got := h.Undo()

	// The pending edit is committed first, then undo steps back to the
	// snapshot that preceded it.
	if got.Prompt != "" {
		t.Fatalf("undo should land on the initial snapshot, got %q", got.Prompt)
	}
	if !h.CanRedo() {
		t.Fatal("the flushed edit must be reachable via redo")
	}
	if redone := h.Redo(); redone.Prompt != "draft" {
		t.Fatalf("redo should restore the flushed edit, got %q", redone.Prompt)
	}
}

func TestHistory_ResetReplacesEverything(t *testing.T) {
	h := NewSnapshotHistory(snap(""))
	h.Commit(snap("one", "a.txt"), SourceUser)
	h.Commit(snap("two", "a.txt"), SourceUser)

	h.Reset(snap("fresh"))
	if h.Len() != 1 || h.CanUndo() || h.CanRedo() {
		t.Fatalf("reset must leave a single snapshot, len=%d", h.Len())
	}
	if got := h.Current().Prompt; got != "fresh" {
		t.Fatalf("unexpected snapshot after reset: %q", got)
	}
}
