// Package buffer owns the editing state around the text store: the point
// (cursor offset), the mark, the modified flag and the accumulated damage
// level. Its mutation primitives follow a fixed ordering: note damage
// first, adjust the mark, mutate storage, then set the modified flag.
package buffer

import (
	"fmt"

	"github.com/halcyard/ebb/internal/logger"
	"github.com/halcyard/ebb/internal/textstore"
)

// Buffer is the single editing buffer.
type Buffer struct {
	store    *textstore.Store
	point    int
	mark     int
	filename string
	modified bool

	damage    Damage
	damageRow int
}

// New creates an empty buffer. It starts with full damage so the first
// flush paints the screen.
func New() *Buffer {
	return &Buffer{
		store:  textstore.New(),
		damage: Rewrite,
	}
}

// --- Accessors ---

// Point returns the current cursor offset.
func (b *Buffer) Point() int { return b.point }

// SetPoint moves the cursor, clamped into [0, Length].
func (b *Buffer) SetPoint(p int) {
	if p < 0 {
		p = 0
	}
	if max := b.store.Length(); p > max {
		p = max
	}
	b.point = p
}

// Mark returns the mark offset. A stored value outside [0, Length] reads
// back as the point; the raw value is never handed out invalid.
func (b *Buffer) Mark() int {
	if b.mark < 0 || b.mark > b.store.Length() {
		return b.point
	}
	return b.mark
}

// SetMark sets the mark offset.
func (b *Buffer) SetMark(m int) { b.mark = m }

// Filename returns the path this buffer was loaded from or saved to.
func (b *Buffer) Filename() string { return b.filename }

// SetFilename records the path without touching content.
func (b *Buffer) SetFilename(name string) { b.filename = name }

// Modified reports whether edits occurred since the last save or load.
func (b *Buffer) Modified() bool { return b.modified }

// Damage returns the accumulated damage level and, for RewriteLine, the
// row captured at the first damage note of the command.
func (b *Buffer) Damage() (Damage, int) { return b.damage, b.damageRow }

// Length returns the buffer length in characters.
func (b *Buffer) Length() int { return b.store.Length() }

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int { return b.store.LineCount() }

// Line returns the content of a line, without its newline.
func (b *Buffer) Line(row int) ([]rune, error) { return b.store.Line(row) }

// RowCol converts an offset to a (row, column) pair.
func (b *Buffer) RowCol(off int) (int, int) { return b.store.RowCol(off) }

// Offset converts a (row, column) pair to an offset.
func (b *Buffer) Offset(row, col int) int { return b.store.Offset(row, col) }

// At returns the character at an offset.
func (b *Buffer) At(off int) (rune, bool) { return b.store.At(off) }

// Slice returns a copy of n characters starting at off.
func (b *Buffer) Slice(off, n int) []rune { return b.store.Slice(off, n) }

// Contents returns the whole document.
func (b *Buffer) Contents() []rune { return b.store.Contents() }

// --- Damage tracking ---

// noteDamage escalates the damage level. The damage row is captured at the
// first note of a command, before any mutation, because the text at that
// row may itself be what is changing.
func (b *Buffer) noteDamage(level Damage, row int) {
	if b.damage == Clean && level == RewriteLine {
		b.damageRow = row
	}
	if level > b.damage {
		b.damage = level
	}
}

// Flush sends the accumulated damage with the cursor position to the
// display and resets damage to Clean. Called once per command.
func (b *Buffer) Flush(r Refresher) {
	row, col := b.store.RowCol(b.point)
	r.Refresh(b.damage, b.damageRow, row, col)
	b.damage = Clean
	b.damageRow = 0
}

// --- Mutation primitives ---

// damageFor decides the redraw scope of an edit touching row, where
// structural reports whether the edit adds or removes a newline. Edits off
// the cursor row, and structural edits, force a full rewrite.
func (b *Buffer) damageFor(row int, structural bool) Damage {
	if structural {
		return Rewrite
	}
	pointRow, _ := b.store.RowCol(b.point)
	if row != pointRow {
		return Rewrite
	}
	return RewriteLine
}

// Insert inserts text at pos, shifting the mark when the edit lands at or
// before it.
func (b *Buffer) Insert(pos int, text []rune) {
	if len(text) == 0 {
		return
	}
	row, _ := b.store.RowCol(pos)
	b.noteDamage(b.damageFor(row, containsNewline(text)), row)

	if pos <= b.mark {
		b.mark += len(text)
	}

	b.store.Insert(pos, text)
	b.modified = true
}

// Delete removes n characters at pos and returns the removed text. A mark
// inside the deleted range is clamped to the deletion point.
func (b *Buffer) Delete(pos, n int) []rune {
	if n <= 0 {
		return nil
	}
	if max := b.store.Length() - pos; n > max {
		n = max
	}
	if n <= 0 {
		return nil
	}
	row, _ := b.store.RowCol(pos)
	span := b.store.Slice(pos, n)
	b.noteDamage(b.damageFor(row, containsNewline(span)), row)

	if b.mark >= pos+n {
		b.mark -= n
	} else if b.mark > pos {
		b.mark = pos
	}

	deleted := b.store.Delete(pos, n)
	b.SetPoint(b.point) // re-clamp: the deletion may have shortened the text
	b.modified = true
	return deleted
}

// SetAt overwrites a single character in place. Line lengths never change,
// so the mark needs no adjustment.
func (b *Buffer) SetAt(pos int, r rune) bool {
	row, _ := b.store.RowCol(pos)
	b.noteDamage(b.damageFor(row, false), row)
	if !b.store.SetAt(pos, r) {
		return false
	}
	b.modified = true
	return true
}

// Transpose swaps the two characters adjacent to pos. At the first column
// of a line the swap shifts one position right, at the end of a line one
// position left. Reports false when the line has no usable pair.
func (b *Buffer) Transpose(pos int) bool {
	row, col := b.store.RowCol(pos)
	line, err := b.store.Line(row)
	if err != nil || len(line) < 2 {
		return false
	}
	i := pos - 1
	switch {
	case col == 0:
		i = pos
	case col >= len(line):
		i = pos - 2
	}
	start := b.store.Offset(row, 0)
	if i < start || i+1 > start+len(line)-1 {
		return false
	}
	a, _ := b.store.At(i)
	c, _ := b.store.At(i + 1)
	b.SetAt(i, c)
	b.SetAt(i+1, a)
	return true
}

// --- File I/O ---

// LoadFile replaces the buffer content from a file. Success resets point,
// mark, and the modified flag. Either way the display owes a full redraw:
// a failed load must still refresh honestly.
func (b *Buffer) LoadFile(path string) error {
	b.noteDamage(Rewrite, 0)
	if err := b.store.Load(path); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	b.filename = path
	b.point = 0
	b.mark = 0
	b.modified = false
	logger.Debugf("Buffer: loaded %q (%d chars, %d lines)", path, b.store.Length(), b.store.LineCount())
	return nil
}

// SaveFile writes the buffer to its filename. The modified flag is only
// cleared on success; a failed save leaves the edit unpersisted.
func (b *Buffer) SaveFile() error {
	if err := b.store.Save(b.filename); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	b.modified = false
	logger.Debugf("Buffer: wrote %q (%d chars)", b.filename, b.store.Length())
	return nil
}

func containsNewline(text []rune) bool {
	for _, r := range text {
		if r == '\n' {
			return true
		}
	}
	return false
}
