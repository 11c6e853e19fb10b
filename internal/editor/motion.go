package editor

import "github.com/halcyard/ebb/internal/change"

// MoveLeft moves the point one character back. At the buffer start it
// beeps instead.
func MoveLeft(e *Editor) *change.Change {
	if e.buf.Point() == 0 {
		e.display.Beep()
		return nil
	}
	e.buf.SetPoint(e.buf.Point() - 1)
	return nil
}

// MoveRight moves the point one character forward.
func MoveRight(e *Editor) *change.Change {
	if e.buf.Point() == e.buf.Length() {
		e.display.Beep()
		return nil
	}
	e.buf.SetPoint(e.buf.Point() + 1)
	return nil
}

// MoveUp moves to the goal column one row up.
func MoveUp(e *Editor) *change.Change {
	e.moveVertically(-1)
	return nil
}

// MoveDown moves to the goal column one row down.
func MoveDown(e *Editor) *change.Change {
	e.moveVertically(1)
	return nil
}

// moveVertically moves the point dy rows, aiming for the goal column. A
// run of consecutive vertical motions keeps the column the first of them
// resolved, even across rows too short to reach it; any other command in
// between resets the goal to the then-current column.
func (e *Editor) moveVertically(dy int) {
	row, col := e.buf.RowCol(e.buf.Point())
	goal := e.prevGoal
	if goal == goalUnset {
		goal = col
	}
	e.goal = goal

	newRow := row + dy
	if newRow < 0 || newRow >= e.buf.LineCount() {
		e.display.Beep()
		return
	}
	e.buf.SetPoint(e.buf.Offset(newRow, goal))
}

// MoveLineStart moves to the first column of the current line.
func MoveLineStart(e *Editor) *change.Change {
	row, _ := e.buf.RowCol(e.buf.Point())
	e.buf.SetPoint(e.buf.Offset(row, 0))
	return nil
}

// MoveLineEnd moves just past the last character of the current line.
func MoveLineEnd(e *Editor) *change.Change {
	row, _ := e.buf.RowCol(e.buf.Point())
	line, err := e.buf.Line(row)
	if err != nil {
		return nil
	}
	e.buf.SetPoint(e.buf.Offset(row, len(line)))
	return nil
}

// MoveBufferStart moves to the absolute start of the buffer.
func MoveBufferStart(e *Editor) *change.Change {
	e.buf.SetPoint(0)
	return nil
}

// MoveBufferEnd moves to the absolute end of the buffer.
func MoveBufferEnd(e *Editor) *change.Change {
	e.buf.SetPoint(e.buf.Length())
	return nil
}

// MovePageUp moves the point up by one screenful and scrolls the viewport
// with it.
func MovePageUp(e *Editor) *change.Change {
	e.movePage(-1)
	return nil
}

// MovePageDown moves the point down by one screenful and scrolls the
// viewport with it.
func MovePageDown(e *Editor) *change.Change {
	e.movePage(1)
	return nil
}

// movePage moves by the display height minus the scroll margin, keeping
// the current column, and tells the display to shift its viewport by the
// same amount.
func (e *Editor) movePage(dir int) {
	amount := e.display.Height() - e.scrollMargin
	if amount < 1 {
		amount = 1
	}
	row, col := e.buf.RowCol(e.buf.Point())
	newRow := row + dir*amount
	if newRow < 0 {
		newRow = 0
	}
	if newRow > e.buf.LineCount()-1 {
		newRow = e.buf.LineCount() - 1
	}
	if newRow == row {
		e.display.Beep()
		return
	}
	e.buf.SetPoint(e.buf.Offset(newRow, col))
	e.display.Scroll(dir * amount)
}
