// Package input maps key events to editor commands. The keymap is an
// immutable registry built once at startup and handed to the command
// loop.
package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/halcyard/ebb/internal/editor"
)

// Keymap resolves tcell key events to commands.
type Keymap struct {
	keys map[tcell.Key]editor.Command // special keys, incl. Ctrl-letter codes
	ctrl map[tcell.Key]editor.Command // Ctrl + special keys (Home, End, ...)
}

// NewKeymap builds the default bindings.
func NewKeymap() *Keymap {
	k := &Keymap{
		keys: make(map[tcell.Key]editor.Command),
		ctrl: make(map[tcell.Key]editor.Command),
	}

	k.keys[tcell.KeyUp] = editor.MoveUp
	k.keys[tcell.KeyDown] = editor.MoveDown
	k.keys[tcell.KeyLeft] = editor.MoveLeft
	k.keys[tcell.KeyRight] = editor.MoveRight
	k.keys[tcell.KeyHome] = editor.MoveLineStart
	k.keys[tcell.KeyEnd] = editor.MoveLineEnd
	k.keys[tcell.KeyPgUp] = editor.MovePageUp
	k.keys[tcell.KeyPgDn] = editor.MovePageDown

	k.keys[tcell.KeyBackspace] = editor.DeleteBackward
	k.keys[tcell.KeyBackspace2] = editor.DeleteBackward
	k.keys[tcell.KeyDelete] = editor.DeleteForward
	k.keys[tcell.KeyCtrlK] = editor.DeleteToLineEnd

	k.keys[tcell.KeyCtrlT] = editor.Transpose
	k.keys[tcell.KeyCtrlU] = editor.UppercaseWord
	k.keys[tcell.KeyCtrlSpace] = editor.SetMark
	k.keys[tcell.KeyCtrlX] = editor.ExchangeMark
	k.keys[tcell.KeyCtrlW] = editor.Yank
	k.keys[tcell.KeyCtrlY] = editor.Put

	k.keys[tcell.KeyCtrlZ] = editor.Undo
	k.keys[tcell.KeyCtrlR] = editor.Redo

	k.keys[tcell.KeyCtrlS] = editor.Save
	k.keys[tcell.KeyCtrlO] = editor.Load
	k.keys[tcell.KeyCtrlQ] = editor.Quit
	k.keys[tcell.KeyEscape] = editor.Quit

	// Ctrl+Home/End arrive as the plain key plus a modifier.
	k.ctrl[tcell.KeyHome] = editor.MoveBufferStart
	k.ctrl[tcell.KeyEnd] = editor.MoveBufferEnd

	return k
}

// Lookup resolves a key event to a command, or nil when the key is
// unbound. Printable runes default to self-insertion; Enter and Tab
// insert their characters.
func (k *Keymap) Lookup(ev *tcell.EventKey) editor.Command {
	key := ev.Key()
	mod := ev.Modifiers()

	if mod&tcell.ModCtrl != 0 {
		if cmd, ok := k.ctrl[key]; ok {
			return cmd
		}
	}
	// Ctrl-letter keys already encode the modifier in the key code.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	switch key {
	case tcell.KeyRune:
		if mod&^tcell.ModShift == 0 {
			return editor.SelfInsert(ev.Rune())
		}
		return nil
	case tcell.KeyEnter:
		return editor.SelfInsert('\n')
	case tcell.KeyTab:
		return editor.SelfInsert('\t')
	}

	if cmd, ok := k.keys[key]; ok {
		return cmd
	}
	return nil
}
