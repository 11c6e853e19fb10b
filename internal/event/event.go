// Package event provides a small synchronous event bus used to decouple
// the command layer from presentation concerns like the status bar.
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified // fired after a command recorded an edit
	TypeBufferLoaded   // fired after a buffer load attempt
	TypeBufferSaved    // fired after a successful save
	TypeAppQuit        // fired when the editor stops being alive
)

// Event is the structure passed through the bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData describes the buffer after an edit was recorded.
type BufferModifiedData struct {
	FilePath string
	Modified bool
}

// BufferLoadedData describes a load attempt.
type BufferLoadedData struct {
	FilePath string
	Err      error
}

// BufferSavedData describes a successful save.
type BufferSavedData struct {
	FilePath string
	Chars    int
}

// AppQuitData is the payload for TypeAppQuit.
type AppQuitData struct{}
