// Package app wires the components together and runs the command loop.
package app

import (
	"fmt"

	"github.com/halcyard/ebb/internal/buffer"
	"github.com/halcyard/ebb/internal/config"
	"github.com/halcyard/ebb/internal/display"
	"github.com/halcyard/ebb/internal/editor"
	"github.com/halcyard/ebb/internal/event"
	"github.com/halcyard/ebb/internal/history"
	"github.com/halcyard/ebb/internal/input"
	"github.com/halcyard/ebb/internal/logger"
)

// App encapsulates the editor session: one buffer, its history, the
// display, and the key registry.
type App struct {
	cfg     *config.Config
	buf     *buffer.Buffer
	hist    *history.History
	screen  *display.Screen
	editor  *editor.Editor
	keymap  *input.Keymap
	events  *event.Manager
}

// New creates and initializes an application instance. filePath may be
// empty for an unnamed scratch buffer.
func New(cfg *config.Config, filePath string) (*App, error) {
	buf := buffer.New()
	if filePath != "" {
		if err := buf.LoadFile(filePath); err != nil {
			// Keep the empty buffer; the user still gets an editor.
			logger.Warnf("App: could not load '%s': %v", filePath, err)
		}
		buf.SetFilename(filePath)
	}

	screen, err := display.New(buf, cfg)
	if err != nil {
		return nil, fmt.Errorf("display initialization failed: %w", err)
	}

	events := event.NewManager()
	hist := history.New(buf)
	ed := editor.New(editor.Config{
		Buffer:       buf,
		History:      hist,
		Display:      screen,
		Events:       events,
		ScrollMargin: cfg.Editor.ScrollMargin,
	})

	a := &App{
		cfg:    cfg,
		buf:    buf,
		hist:   hist,
		screen: screen,
		editor: ed,
		keymap: input.NewKeymap(),
		events: events,
	}

	events.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	events.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	events.Subscribe(event.TypeBufferModified, a.handleBufferModified)

	var _ editor.Display = screen // compile-time interface check

	return a, nil
}

// Run executes the command loop: block for a key, look up its command,
// dispatch it, repeat until the editor stops being alive. In-flight
// commands always finish before the loop observes the quit.
func (a *App) Run() error {
	defer a.screen.Close()

	// First paint; the new buffer starts with full damage.
	a.buf.Flush(a.screen)

	for a.editor.Alive() {
		ev := a.screen.Key()
		if ev == nil {
			break // screen finalized under us
		}
		cmd := a.keymap.Lookup(ev)
		if cmd == nil {
			logger.Debugf("App: unbound key %v", ev.Key())
			a.screen.Beep()
			continue
		}
		a.editor.Dispatch(cmd)
	}

	if a.buf.Modified() {
		logger.Warnf("App: exited with unsaved changes in %q", a.buf.Filename())
	}
	logger.Infof("App: exiting")
	return nil
}

// --- Event handlers ---

func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		a.screen.SetMessage("Wrote %s (%d characters)", data.FilePath, data.Chars)
		logger.Infof("App: saved %q (%d chars)", data.FilePath, data.Chars)
	}
	return false
}

func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok && data.Err == nil {
		a.screen.SetMessage("Loaded %s", data.FilePath)
		logger.Infof("App: loaded %q", data.FilePath)
	}
	return false
}

func (a *App) handleBufferModified(e event.Event) bool {
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		a.screen.StatusBar().SetFileInfo(data.FilePath, data.Modified)
	}
	return false
}
