// Package event is a small synchronous event bus between the application and its listeners.
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document events
	TypeDocumentLoaded  // a document was read from disk or created empty
	TypeDocumentSaved   // a document was written to disk
	TypeDocumentChanged // an edit, undo or redo changed the content

	// Command events
	TypeCommandExecuted // a command completed
	TypeCommandFailed   // a command returned an error

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeDocumentLoaded:
		return "DocumentLoaded"
	case TypeDocumentSaved:
		return "DocumentSaved"
	case TypeDocumentChanged:
		return "DocumentChanged"
	case TypeCommandExecuted:
		return "CommandExecuted"
	case TypeCommandFailed:
		return "CommandFailed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentLoadedData describes a loaded document. FilePath is empty for a new document.
type DocumentLoadedData struct {
	FilePath string
	Kind     string
	Lines    int
}

// DocumentSavedData describes a saved document.
type DocumentSavedData struct {
	FilePath string
	Lines    int
}

// DocumentChangedData names the change, e.g. "insert 1:1" or "undo".
type DocumentChangedData struct {
	Description string
}

// CommandData describes a command run. Err is set for TypeCommandFailed.
type CommandData struct {
	Name string
	Args []string
	Err  error
}
