package editor

import (
	"unicode"

	"github.com/atotto/clipboard"

	"github.com/halcyard/ebb/internal/change"
	"github.com/halcyard/ebb/internal/event"
	"github.com/halcyard/ebb/internal/logger"
)

// SelfInsert returns the command inserting r at the point. The resulting
// change is mergeable, so an uninterrupted typing run on one line
// amalgamates into a single undo entry.
func SelfInsert(r rune) Command {
	return func(e *Editor) *change.Change {
		pos := e.buf.Point()
		e.buf.Insert(pos, []rune{r})
		e.buf.SetPoint(pos + 1)
		return change.NewMergeableInsertion(pos, []rune{r})
	}
}

// DeleteBackward deletes the character before the point.
func DeleteBackward(e *Editor) *change.Change {
	pos := e.buf.Point()
	if pos == 0 {
		e.display.Beep()
		return nil
	}
	deleted := e.buf.Delete(pos-1, 1)
	e.buf.SetPoint(pos - 1)
	return change.NewDeletion(pos-1, deleted)
}

// DeleteForward deletes the character at the point.
func DeleteForward(e *Editor) *change.Change {
	pos := e.buf.Point()
	if pos == e.buf.Length() {
		e.display.Beep()
		return nil
	}
	deleted := e.buf.Delete(pos, 1)
	return change.NewDeletion(pos, deleted)
}

// DeleteToLineEnd deletes from the point to the end of the line. At the
// end of a line it deletes the newline instead, joining the next line.
func DeleteToLineEnd(e *Editor) *change.Change {
	pos := e.buf.Point()
	row, col := e.buf.RowCol(pos)
	line, err := e.buf.Line(row)
	if err != nil {
		return nil
	}
	n := len(line) - col
	if n == 0 {
		// At end of line: take the newline, joining the next line up.
		if pos == e.buf.Length() {
			e.display.Beep()
			return nil
		}
		n = 1
	}
	deleted := e.buf.Delete(pos, n)
	return change.NewDeletion(pos, deleted)
}

// Transpose swaps the two characters adjacent to the point. The change is
// self-inverse: undo and redo perform the same swap.
func Transpose(e *Editor) *change.Change {
	pos := e.buf.Point()
	if !e.buf.Transpose(pos) {
		e.display.Beep()
		return nil
	}
	return change.NewTransposition(pos)
}

// UppercaseWord uppercases the maximal alphanumeric run containing the
// point. Characters are overwritten in place, never inserted or deleted,
// so damage stays at line scale. Beeps when the point is not on a word.
func UppercaseWord(e *Editor) *change.Change {
	pos := e.buf.Point()
	if r, ok := e.buf.At(pos); !ok || !isWordRune(r) {
		e.display.Beep()
		return nil
	}

	start := pos
	for start > 0 {
		r, ok := e.buf.At(start - 1)
		if !ok || !isWordRune(r) {
			break
		}
		start--
	}
	end := pos + 1
	for end < e.buf.Length() {
		r, ok := e.buf.At(end)
		if !ok || !isWordRune(r) {
			break
		}
		end++
	}

	old := e.buf.Slice(start, end-start)
	upper := make([]rune, len(old))
	for i, r := range old {
		upper[i] = unicode.ToUpper(r)
	}
	for i, r := range upper {
		if r != old[i] {
			e.buf.SetAt(start+i, r)
		}
	}
	return change.NewReplacement(start, old, upper)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SetMark places the mark at the point.
func SetMark(e *Editor) *change.Change {
	e.buf.SetMark(e.buf.Point())
	e.display.SetMessage("Mark set")
	return nil
}

// ExchangeMark swaps the point and the mark.
func ExchangeMark(e *Editor) *change.Change {
	point := e.buf.Point()
	mark := e.buf.Mark()
	e.buf.SetPoint(mark)
	e.buf.SetMark(point)
	return nil
}

// Yank copies the region between mark and point to the system clipboard.
func Yank(e *Editor) *change.Change {
	lo, hi := e.buf.Mark(), e.buf.Point()
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		e.display.Beep()
		return nil
	}
	text := e.buf.Slice(lo, hi-lo)
	if err := clipboard.WriteAll(string(text)); err != nil {
		logger.Warnf("Editor: clipboard write failed: %v", err)
		e.display.SetMessage("Clipboard unavailable")
		return nil
	}
	e.display.SetMessage("Copied %d characters", hi-lo)
	return nil
}

// Put inserts the system clipboard contents at the point. A paste is one
// plain insertion, never merged with surrounding typing.
func Put(e *Editor) *change.Change {
	content, err := clipboard.ReadAll()
	if err != nil {
		logger.Warnf("Editor: clipboard read failed: %v", err)
		e.display.SetMessage("Clipboard unavailable")
		return nil
	}
	if content == "" {
		e.display.Beep()
		return nil
	}
	pos := e.buf.Point()
	text := []rune(content)
	e.buf.Insert(pos, text)
	e.buf.SetPoint(pos + len(text))
	return change.NewInsertion(pos, text)
}

// Save writes the buffer to its file. The modified flag survives a failed
// save: the edit was not persisted.
func Save(e *Editor) *change.Change {
	if e.buf.Filename() == "" {
		name, ok := e.display.ReadString("Save as: ", "")
		if !ok || name == "" {
			return nil
		}
		e.buf.SetFilename(name)
	}
	if err := e.buf.SaveFile(); err != nil {
		logger.Errorf("Editor: %v", err)
		e.display.SetMessage("Save failed: %v", err)
		return nil
	}
	if e.events != nil {
		e.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{
			FilePath: e.buf.Filename(),
			Chars:    e.buf.Length(),
		})
	}
	return nil
}

// Load prompts for a filename and replaces the buffer content. On success
// the undo history is discarded: history is per document session. On
// failure the buffer keeps its content, but the display is refreshed
// honestly either way.
func Load(e *Editor) *change.Change {
	name, ok := e.display.ReadString("Load file: ", e.buf.Filename())
	if !ok || name == "" {
		return nil
	}
	err := e.buf.LoadFile(name)
	if err != nil {
		logger.Errorf("Editor: %v", err)
		e.display.SetMessage("Load failed: %v", err)
	} else {
		e.hist.Reset()
		e.display.ChooseOrigin()
	}
	if e.events != nil {
		e.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: name, Err: err})
	}
	return nil
}

// Quit stops the editor, asking for confirmation first when unsaved edits
// would be lost. The command loop drains after the in-flight command.
func Quit(e *Editor) *change.Change {
	if e.buf.Modified() && !e.display.Ask("Buffer modified; really quit?") {
		return nil
	}
	e.alive = false
	if e.events != nil {
		e.events.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	}
	return nil
}

// Undo reverts the most recent history entry, beeping at the boundary.
// It yields no change itself: replaying an undo is meaningless.
func Undo(e *Editor) *change.Change {
	if !e.hist.Undo() {
		e.display.Beep()
	}
	return nil
}

// Redo reapplies the most recently undone entry, beeping at the boundary.
func Redo(e *Editor) *change.Change {
	if !e.hist.Redo() {
		e.display.Beep()
	}
	return nil
}
