package display

import (
	"fmt"
	"math"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// gutterWidth returns the width of the line-number gutter, or 0 when the
// screen is too narrow to afford one.
func (s *Screen) gutterWidth(width int) int {
	lineCount := s.buf.LineCount()
	if lineCount < 1 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gw := maxDigits + 1 // one space of padding
	if gw >= width {
		return 0
	}
	return gw
}

// drawRow repaints one buffer row if it is inside the viewport.
func (s *Screen) drawRow(row, width, viewHeight int) {
	screenY := row - s.origin
	if screenY < 0 || screenY >= viewHeight || width <= 0 {
		return
	}

	for x := 0; x < width; x++ {
		s.screen.SetContent(x, screenY, ' ', nil, s.styleDefault)
	}

	gw := s.gutterWidth(width)
	line, err := s.buf.Line(row)
	if err != nil {
		return // row past the end of the buffer stays blank
	}

	if gw > 0 {
		numStr := fmt.Sprintf("%*d", gw-1, row+1)
		for i, r := range numStr {
			if i < gw-1 {
				s.screen.SetContent(i, screenY, r, nil, s.styleGutter)
			}
		}
	}

	// Iterate grapheme clusters so combining marks and wide characters
	// land in the right cells.
	gr := uniseg.NewGraphemes(string(line))
	x := gw
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			spaces := s.tabWidth - ((x - gw) % s.tabWidth)
			for i := 0; i < spaces && x < width; i++ {
				s.screen.SetContent(x, screenY, ' ', nil, s.styleDefault)
				x++
			}
			continue
		}
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			break
		}
		s.screen.SetContent(x, screenY, runes[0], runes[1:], s.styleDefault)
		for cw := 1; cw < clusterWidth; cw++ {
			s.screen.SetContent(x+cw, screenY, ' ', nil, s.styleDefault)
		}
		x += clusterWidth
	}
}

// visualColumn converts a character column on a line to a screen column,
// accounting for tab stops and wide runes.
func (s *Screen) visualColumn(line []rune, col int) int {
	x := 0
	for i := 0; i < col && i < len(line); i++ {
		if line[i] == '\t' {
			x += s.tabWidth - (x % s.tabWidth)
			continue
		}
		x += runewidth.RuneWidth(line[i])
	}
	return x
}

// placeCursor positions the terminal cursor, hiding it when it falls
// outside the drawable area.
func (s *Screen) placeCursor(row, col, width, viewHeight int) {
	gw := s.gutterWidth(width)
	line, err := s.buf.Line(row)
	visualCol := 0
	if err == nil {
		visualCol = s.visualColumn(line, col)
	}

	screenX := gw + visualCol
	screenY := row - s.origin
	if screenX >= width || screenY < 0 || screenY >= viewHeight || viewHeight <= 0 {
		s.screen.HideCursor()
		return
	}
	s.screen.ShowCursor(screenX, screenY)
}
