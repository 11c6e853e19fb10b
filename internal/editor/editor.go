// Package editor is the command layer: it turns dispatched keys into
// buffer mutations wrapped in reversible changes, and drives damage
// flushes to the display.
package editor

import (
	"github.com/halcyard/ebb/internal/buffer"
	"github.com/halcyard/ebb/internal/change"
	"github.com/halcyard/ebb/internal/event"
	"github.com/halcyard/ebb/internal/history"
)

// Display is what the editor needs from the terminal layer. The concrete
// implementation lives in internal/display; tests use a stub.
type Display interface {
	buffer.Refresher
	Scroll(lines int)
	ChooseOrigin()
	SetMessage(format string, args ...interface{})
	ClearMessage()
	Beep()
	Ask(question string) bool
	ReadString(prompt, def string) (string, bool)
	Height() int
}

// Command is one editor operation. It returns the change it made to the
// buffer text, or nil for commands that alter no text.
type Command func(*Editor) *change.Change

// goalUnset marks the goal column as underived. Obey resets the goal at
// the start of every command; only vertical motions set it.
const goalUnset = -1

// Editor binds one buffer, its history, and a display.
type Editor struct {
	buf     *buffer.Buffer
	hist    *history.History
	display Display
	events  *event.Manager

	scrollMargin int
	alive        bool

	goal     int // goal column resolved by this command, or goalUnset
	prevGoal int // previous command's resolved goal
}

// Config collects the editor's collaborators.
type Config struct {
	Buffer       *buffer.Buffer
	History      *history.History
	Display      Display
	Events       *event.Manager // may be nil
	ScrollMargin int
}

// New creates an editor.
func New(cfg Config) *Editor {
	return &Editor{
		buf:          cfg.Buffer,
		hist:         cfg.History,
		display:      cfg.Display,
		events:       cfg.Events,
		scrollMargin: cfg.ScrollMargin,
		alive:        true,
		goal:         goalUnset,
		prevGoal:     goalUnset,
	}
}

// Buffer returns the editor's buffer.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// History returns the editor's undo history.
func (e *Editor) History() *history.History { return e.hist }

// Alive reports whether the editor should keep running. The command loop
// observes this once per iteration.
func (e *Editor) Alive() bool { return e.alive }

// Obey executes one dispatched command under the wrapping protocol: the
// goal column rotates, the transient message clears, state snapshots
// bracket the command body, and accumulated damage flushes to the
// display. A command that changed text comes back as a composite change
// so undo restores both the text and the point/mark that preceded it.
func (e *Editor) Obey(cmd Command) *change.Change {
	e.prevGoal, e.goal = e.goal, goalUnset
	e.display.ClearMessage()

	before := e.buf.State()
	inner := cmd(e)
	after := e.buf.State()

	e.buf.Flush(e.display)

	if inner == nil {
		return nil
	}
	return change.NewComposite(before, inner, after)
}

// Dispatch runs a command through Obey and the history, then announces
// any recorded edit on the event bus.
func (e *Editor) Dispatch(cmd Command) {
	recorded := e.hist.Perform(func() *change.Change { return e.Obey(cmd) })
	if recorded && e.events != nil {
		e.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{
			FilePath: e.buf.Filename(),
			Modified: e.buf.Modified(),
		})
	}
}
