// Package display manages the terminal screen using tcell: damage-scoped
// redraw, viewport origin, key input, bell, and blocking prompts.
package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/halcyard/ebb/internal/buffer"
	"github.com/halcyard/ebb/internal/config"
	"github.com/halcyard/ebb/internal/statusbar"
)

// Screen renders one buffer onto a tcell screen.
type Screen struct {
	screen    tcell.Screen
	buf       *buffer.Buffer
	statusBar *statusbar.StatusBar

	origin       int // top visible buffer row
	tabWidth     int
	statusHeight int
	bell         bool

	styleDefault tcell.Style
	styleGutter  tcell.Style
}

// New creates and initializes the display for a buffer.
func New(buf *buffer.Buffer, cfg *config.Config) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}

	defStyle := tcell.StyleDefault
	s.SetStyle(defStyle)

	sbCfg := statusbar.DefaultConfig()
	sbCfg.MessageTimeout = config.MessageTimeout

	return &Screen{
		screen:       s,
		buf:          buf,
		statusBar:    statusbar.New(sbCfg),
		tabWidth:     cfg.Editor.TabWidth,
		statusHeight: cfg.Editor.StatusBarHeight,
		bell:         cfg.Editor.Bell,
		styleDefault: defStyle,
		styleGutter:  defStyle.Foreground(tcell.ColorGray),
	}, nil
}

// Close finalizes the tcell screen.
func (s *Screen) Close() {
	if s.screen != nil {
		s.screen.Fini()
	}
}

// StatusBar exposes the status line component for event-driven updates.
func (s *Screen) StatusBar() *statusbar.StatusBar {
	return s.statusBar
}

// Height returns the text area height in rows, at least 1.
func (s *Screen) Height() int {
	_, h := s.screen.Size()
	h -= s.statusHeight
	if h < 1 {
		h = 1
	}
	return h
}

// Key blocks until the next key event. Resize events are absorbed here
// with a full redraw. Returns nil once the screen is finalized.
func (s *Screen) Key() *tcell.EventKey {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			return ev
		case *tcell.EventResize:
			s.screen.Sync()
			row, col := s.buf.RowCol(s.buf.Point())
			s.Refresh(buffer.Rewrite, 0, row, col)
		case nil:
			return nil
		}
	}
}

// Refresh redraws according to the damage level: RewriteLine repaints the
// damaged row only, Rewrite the whole viewport. Clean still repositions
// the cursor and status bar. Scrolling the cursor back into view forces a
// full repaint regardless of the reported level.
func (s *Screen) Refresh(level buffer.Damage, line, row, col int) {
	width, height := s.screen.Size()
	viewHeight := height - s.statusHeight

	if s.scrollIntoView(row, viewHeight) {
		level = buffer.Rewrite
	}

	switch level {
	case buffer.Rewrite:
		for y := 0; y < viewHeight; y++ {
			s.drawRow(s.origin+y, width, viewHeight)
		}
	case buffer.RewriteLine:
		s.drawRow(line, width, viewHeight)
	}

	s.statusBar.SetFileInfo(s.buf.Filename(), s.buf.Modified())
	s.statusBar.SetCursorInfo(row, col)
	s.statusBar.Draw(s.screen, width, height)

	s.placeCursor(row, col, width, viewHeight)
	s.screen.Show()
}

// Scroll shifts the viewport origin by lines, clamped to the buffer.
func (s *Screen) Scroll(lines int) {
	s.origin += lines
	if s.origin > s.buf.LineCount()-1 {
		s.origin = s.buf.LineCount() - 1
	}
	if s.origin < 0 {
		s.origin = 0
	}
}

// ChooseOrigin recenters the viewport around the point.
func (s *Screen) ChooseOrigin() {
	row, _ := s.buf.RowCol(s.buf.Point())
	s.origin = row - s.Height()/2
	if s.origin < 0 {
		s.origin = 0
	}
}

// scrollIntoView moves the origin the minimal amount needed to keep the
// cursor row visible, reporting whether it moved.
func (s *Screen) scrollIntoView(row, viewHeight int) bool {
	moved := false
	if row < s.origin {
		s.origin = row
		moved = true
	}
	if viewHeight > 0 && row >= s.origin+viewHeight {
		s.origin = row - viewHeight + 1
		moved = true
	}
	if s.origin < 0 {
		s.origin = 0
	}
	return moved
}

// SetMessage shows a transient status message at the next refresh.
func (s *Screen) SetMessage(format string, args ...interface{}) {
	s.statusBar.SetTemporaryMessage(format, args...)
}

// ClearMessage removes any transient status message.
func (s *Screen) ClearMessage() {
	s.statusBar.ResetTemporaryMessage()
}

// Beep rings the terminal bell, if enabled.
func (s *Screen) Beep() {
	if s.bell {
		_ = s.screen.Beep()
	}
}
