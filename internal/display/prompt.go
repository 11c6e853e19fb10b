package display

import "github.com/gdamore/tcell/v2"

// Ask poses a yes/no question on the status line and blocks for the
// answer. Escape and Ctrl-G answer no.
func (s *Screen) Ask(question string) bool {
	defer s.statusBar.ResetTemporaryMessage()
	s.statusBar.SetTemporaryMessage("%s (y/n)", question)
	s.redrawStatus()

	for {
		ev := s.Key()
		if ev == nil {
			return false
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlG:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'y', 'Y':
				return true
			case 'n', 'N':
				return false
			}
		}
		s.Beep()
	}
}

// ReadString reads a line of input on the status line, starting from a
// default value. The second result is false when the prompt was
// cancelled with Escape or Ctrl-G.
func (s *Screen) ReadString(prompt, def string) (string, bool) {
	defer s.statusBar.ResetTemporaryMessage()
	text := []rune(def)

	for {
		s.statusBar.SetTemporaryMessage("%s%s", prompt, string(text))
		s.redrawStatus()

		ev := s.Key()
		if ev == nil {
			return "", false
		}
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlG:
			return "", false
		case tcell.KeyEnter:
			return string(text), true
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(text) > 0 {
				text = text[:len(text)-1]
			} else {
				s.Beep()
			}
		case tcell.KeyRune:
			text = append(text, ev.Rune())
		default:
			s.Beep()
		}
	}
}

// redrawStatus repaints only the status line, for prompt echo.
func (s *Screen) redrawStatus() {
	width, height := s.screen.Size()
	s.statusBar.Draw(s.screen, width, height)
	s.screen.Show()
}
