// Package textstore implements the character storage behind the editing
// buffer: a line-array container addressed by absolute character offsets.
// A document of N lines occupies the offset range [0, Length()], where the
// newline separating two lines is itself one character. The container
// always holds at least one (possibly empty) line.
package textstore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
)

// Store is a line-array text container.
type Store struct {
	lines [][]rune
}

// New creates an empty Store holding a single empty line.
func New() *Store {
	return &Store{lines: [][]rune{{}}}
}

// Length returns the total number of characters, counting one newline
// between each pair of adjacent lines.
func (s *Store) Length() int {
	n := len(s.lines) - 1
	for _, line := range s.lines {
		n += len(line)
	}
	return n
}

// LineCount returns the number of lines.
func (s *Store) LineCount() int {
	return len(s.lines)
}

// Line returns the content of a line, without its trailing newline.
func (s *Store) Line(row int) ([]rune, error) {
	if row < 0 || row >= len(s.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", row, len(s.lines)-1)
	}
	return s.lines[row], nil
}

// RowCol converts an absolute offset to a (row, column) pair. Offsets are
// clamped into [0, Length()]; the column of a line's newline equals the
// line's length.
func (s *Store) RowCol(off int) (row, col int) {
	if off < 0 {
		off = 0
	}
	for row = 0; row < len(s.lines); row++ {
		lineLen := len(s.lines[row])
		if off <= lineLen {
			return row, off
		}
		off -= lineLen + 1
	}
	// Past the end: clamp to the end of the last line.
	row = len(s.lines) - 1
	return row, len(s.lines[row])
}

// Offset converts a (row, column) pair to an absolute offset. Row and
// column are clamped into the valid range for the current content.
func (s *Store) Offset(row, col int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(s.lines) {
		row = len(s.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if col > len(s.lines[row]) {
		col = len(s.lines[row])
	}
	off := 0
	for r := 0; r < row; r++ {
		off += len(s.lines[r]) + 1
	}
	return off + col
}

// At returns the character at an offset. The newline between two lines
// reads back as '\n'. Reports false when off is out of range.
func (s *Store) At(off int) (rune, bool) {
	if off < 0 || off >= s.Length() {
		return 0, false
	}
	row, col := s.RowCol(off)
	line := s.lines[row]
	if col == len(line) {
		return '\n', true
	}
	return line[col], true
}

// SetAt overwrites the character at an offset in place. Newlines cannot be
// written or overwritten this way; use Insert/Delete for structural edits.
func (s *Store) SetAt(off int, r rune) bool {
	if r == '\n' {
		return false
	}
	if off < 0 || off >= s.Length() {
		return false
	}
	row, col := s.RowCol(off)
	if col == len(s.lines[row]) {
		return false
	}
	s.lines[row][col] = r
	return true
}

// Slice returns a copy of the n characters starting at off, clamped to the
// available content. Newlines appear as '\n'.
func (s *Store) Slice(off, n int) []rune {
	if off < 0 {
		n += off
		off = 0
	}
	if max := s.Length() - off; n > max {
		n = max
	}
	if n <= 0 {
		return nil
	}
	out := make([]rune, 0, n)
	row, col := s.RowCol(off)
	for n > 0 && row < len(s.lines) {
		line := s.lines[row]
		for col < len(line) && n > 0 {
			out = append(out, line[col])
			col++
			n--
		}
		if n > 0 && row < len(s.lines)-1 {
			out = append(out, '\n')
			n--
		}
		row++
		col = 0
	}
	return out
}

// Insert inserts text at an offset. Newlines in the text split lines.
func (s *Store) Insert(off int, text []rune) {
	if len(text) == 0 {
		return
	}
	row, col := s.RowCol(off)
	line := s.lines[row]

	head := append([]rune{}, line[:col]...)
	tail := append([]rune{}, line[col:]...)

	segs := splitLines(text)
	if len(segs) == 1 {
		s.lines[row] = append(append(head, segs[0]...), tail...)
		return
	}

	replacement := make([][]rune, 0, len(segs))
	replacement = append(replacement, append(head, segs[0]...))
	for i := 1; i < len(segs)-1; i++ {
		replacement = append(replacement, segs[i])
	}
	replacement = append(replacement, append(segs[len(segs)-1], tail...))

	rest := append([][]rune{}, s.lines[row+1:]...)
	s.lines = append(s.lines[:row], append(replacement, rest...)...)
}

// Delete removes n characters starting at off and returns the removed
// text. The range is clamped to the available content.
func (s *Store) Delete(off, n int) []rune {
	if off < 0 {
		n += off
		off = 0
	}
	if max := s.Length() - off; n > max {
		n = max
	}
	if n <= 0 {
		return nil
	}

	deleted := s.Slice(off, n)

	startRow, startCol := s.RowCol(off)
	endRow, endCol := s.RowCol(off + n)

	if startRow == endRow {
		line := s.lines[startRow]
		s.lines[startRow] = append(append([]rune{}, line[:startCol]...), line[endCol:]...)
		return deleted
	}

	merged := append([]rune{}, s.lines[startRow][:startCol]...)
	merged = append(merged, s.lines[endRow][endCol:]...)
	s.lines[startRow] = merged
	s.lines = append(s.lines[:startRow+1], s.lines[endRow+1:]...)
	return deleted
}

// Contents returns the whole document as a rune slice.
func (s *Store) Contents() []rune {
	return s.Slice(0, s.Length())
}

// Load reads a file into the store, replacing existing content. A missing
// file yields an empty store and no error; any other failure leaves the
// current content untouched.
func (s *Store) Load(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.lines = [][]rune{{}}
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	newLines := [][]rune{}
	for scanner.Scan() {
		newLines = append(newLines, []rune(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []rune{})
	}
	s.lines = newLines
	return nil
}

// Save writes the store content to a file as plain sequential characters.
func (s *Store) Save(filePath string) error {
	if filePath == "" {
		return errors.New("no file path specified for saving")
	}
	var buf bytes.Buffer
	for i, line := range s.lines {
		buf.WriteString(string(line))
		if i < len(s.lines)-1 {
			buf.WriteByte('\n')
		}
	}
	if err := os.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", filePath, err)
	}
	return nil
}

// splitLines splits text on newlines, copying each segment so the result
// does not alias the input.
func splitLines(text []rune) [][]rune {
	segs := [][]rune{}
	start := 0
	for i, r := range text {
		if r == '\n' {
			segs = append(segs, append([]rune{}, text[start:i]...))
			start = i + 1
		}
	}
	segs = append(segs, append([]rune{}, text[start:]...))
	return segs
}
