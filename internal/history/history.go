// Package history keeps the ordered, replayable record of buffer edits.
// Entries [0, cursor) are done; entries [cursor, len) are undone but
// retained for redo until a new edit truncates them.
package history

import (
	"github.com/halcyard/ebb/internal/buffer"
	"github.com/halcyard/ebb/internal/change"
	"github.com/halcyard/ebb/internal/logger"
)

// History is the undo/redo stack for one buffer.
type History struct {
	buf          *buffer.Buffer
	entries      []*change.Change
	cursor       int
	amalgamating bool
}

// New creates an empty history replaying against buf.
func New(buf *buffer.Buffer) *History {
	return &History{buf: buf}
}

// Perform runs an action and records the change it yields. A nil change
// (a non-edit command) records nothing and leaves amalgamation mode; a
// real change first discards the stale redo tail, then either merges into
// the newest entry or is appended. Perform reports whether an edit was
// recorded (merged or appended).
func (h *History) Perform(action func() *change.Change) bool {
	ch := action()
	if ch == nil {
		h.amalgamating = false
		return false
	}

	h.entries = h.entries[:h.cursor]

	if h.amalgamating && len(h.entries) > 0 {
		last := h.entries[len(h.entries)-1]
		merged, err := last.Amalgamate(ch)
		if err != nil {
			// A broken amalgamation contract means corrupted history;
			// abort loudly rather than record garbage.
			logger.Fatalf("History: %v", err)
		}
		if merged {
			logger.Debugf("History: amalgamated %s entry, %d total", last.Kind(), len(h.entries))
			return true
		}
	}

	h.entries = append(h.entries, ch)
	h.cursor++
	h.amalgamating = true
	logger.Debugf("History: recorded %s entry, cursor=%d, count=%d", ch.Kind(), h.cursor, len(h.entries))
	return true
}

// Undo reverts the newest done entry. Reports false when there is nothing
// to undo.
func (h *History) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	h.entries[h.cursor].Undo(h.buf)
	logger.Debugf("History: undid entry %d", h.cursor)
	return true
}

// Redo reapplies the oldest undone entry. Reports false when there is
// nothing to redo.
func (h *History) Redo() bool {
	if h.cursor == len(h.entries) {
		return false
	}
	h.entries[h.cursor].Redo(h.buf)
	h.cursor++
	logger.Debugf("History: redid entry %d", h.cursor-1)
	return true
}

// Reset discards all entries. Called after loading a new file: history is
// per-document-session, never persisted.
func (h *History) Reset() {
	h.entries = h.entries[:0]
	h.cursor = 0
	h.amalgamating = false
	logger.Debugf("History: reset")
}

// CanUndo reports whether an undo would do anything.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a redo would do anything.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries) }

// Len returns the number of retained entries.
func (h *History) Len() int { return len(h.entries) }
