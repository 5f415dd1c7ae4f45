package pipeline

import (
	"sync"
	"time"
)

// EditSource tags every mutation with its origin so the history layer itself
// decides whether to record it. Replaying a snapshot through undo/redo must
// not re-enter the history.
type EditSource int

const (
	SourceUser EditSource = iota
	SourceReplay
)

// DebounceQuiet is the quiet period after the last free-text edit before the
// pending prompt snapshot is committed.
const DebounceQuiet = 1000 * time.Millisecond

// scheduleFunc schedules fn after d and returns a cancel function. Tests
// inject a synchronous variant so nothing sleeps.
type scheduleFunc func(d time.Duration, fn func()) (cancel func())

func timerSchedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// SnapshotHistory is a linear undo/redo stack over input snapshots. The
// cursor always indexes a valid snapshot; committing while the cursor is not
// at the tail discards everything after it, so the history never branches.
type SnapshotHistory struct {
	mu        sync.Mutex
	snapshots []InputSnapshot
	cursor    int

	schedule      scheduleFunc
	cancelPending func()
	pending       *InputSnapshot
}

// NewSnapshotHistory starts the history with a single initial snapshot.
func NewSnapshotHistory(initial InputSnapshot) *SnapshotHistory {
	return &SnapshotHistory{
		snapshots: []InputSnapshot{initial.Clone()},
		schedule:  timerSchedule,
	}
}

// Commit records snapshot immediately. Structural edits (add/remove file,
// template selection) use this path. Replay-sourced mutations are not
// recorded. Any pending debounced commit is cancelled: the committed
// snapshot already carries the current prompt.
func (h *SnapshotHistory) Commit(snapshot InputSnapshot, source EditSource) {
	if source == SourceReplay {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropPendingLocked()
	h.commitLocked(snapshot)
}

// CommitDebounced records snapshot after DebounceQuiet of no further
// debounced edits. A later call within the window cancels the pending commit
// and restarts the timer, so free-text typing yields one history entry, not
// one per keystroke.
func (h *SnapshotHistory) CommitDebounced(snapshot InputSnapshot, source EditSource) {
	if source == SourceReplay {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropPendingLocked()
	clone := snapshot.Clone()
	h.pending = &clone
	h.cancelPending = h.schedule(DebounceQuiet, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.pending == nil {
			return
		}
		pending := *h.pending
		h.pending = nil
		h.cancelPending = nil
		h.commitLocked(pending)
	})
}

// Undo moves the cursor back one snapshot and returns it. At the head it is
// a no-op returning the current snapshot. A pending debounced commit is
// flushed first so the latest edit is not silently lost.
func (h *SnapshotHistory) Undo() InputSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flushPendingLocked()
	if h.cursor > 0 {
		h.cursor--
	}
	return h.snapshots[h.cursor].Clone()
}

// Redo moves the cursor forward one snapshot and returns it. At the tail it
// is a no-op returning the current snapshot.
func (h *SnapshotHistory) Redo() InputSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.flushPendingLocked()
	if h.cursor < len(h.snapshots)-1 {
		h.cursor++
	}
	return h.snapshots[h.cursor].Clone()
}

// CanUndo reports whether Undo would move the cursor.
func (h *SnapshotHistory) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0 || h.pending != nil
}

// CanRedo reports whether Redo would move the cursor.
func (h *SnapshotHistory) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.snapshots)-1
}

// Current returns the snapshot at the cursor.
func (h *SnapshotHistory) Current() InputSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snapshots[h.cursor].Clone()
}

// Reset replaces the entire history with a single initial snapshot.
func (h *SnapshotHistory) Reset(initial InputSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropPendingLocked()
	h.snapshots = []InputSnapshot{initial.Clone()}
	h.cursor = 0
}

// Len returns the number of recorded snapshots.
func (h *SnapshotHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snapshots)
}

func (h *SnapshotHistory) commitLocked(snapshot InputSnapshot) {
	if h.cursor < len(h.snapshots)-1 {
		h.snapshots = h.snapshots[:h.cursor+1]
	}
	h.snapshots = append(h.snapshots, snapshot.Clone())
	h.cursor = len(h.snapshots) - 1
}

func (h *SnapshotHistory) dropPendingLocked() {
	if h.cancelPending != nil {
		h.cancelPending()
		h.cancelPending = nil
	}
	h.pending = nil
}

func (h *SnapshotHistory) flushPendingLocked() {
	if h.pending == nil {
		h.dropPendingLocked()
		return
	}
	pending := *h.pending
	h.dropPendingLocked()
	h.commitLocked(pending)
}
