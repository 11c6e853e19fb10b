package event

import (
	"sync"

	"github.com/halcyard/ebb/internal/logger"
)

// Handler is the function signature for subscribers. Returning true marks
// the event consumed; dispatch currently ignores it but the seam is kept
// for symmetry with handlers that may want it later.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching. Dispatch is
// synchronous: the editor is single-threaded and handlers must observe
// state before the next command runs.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{handlers: make(map[Type][]Handler)}
}

// Subscribe adds a handler for an event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[eventType] = append(m.handlers[eventType], handler)
}

// Dispatch sends an event to all handlers registered for its type.
func (m *Manager) Dispatch(eventType Type, data interface{}) {
	m.mu.RLock()
	handlers := m.handlers[eventType]
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.Debugf("Event: dispatching type %v to %d handler(s)", eventType, len(handlers))

	// Copy so a handler subscribing during dispatch cannot grow the slice
	// under us.
	handlersCopy := make([]Handler, len(handlers))
	copy(handlersCopy, handlers)
	for _, handler := range handlersCopy {
		handler(Event{Type: eventType, Data: data})
	}
}
