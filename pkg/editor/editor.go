// Package editor defines the host editor surface the scroll engine drives and
// an in-memory implementation of it.
package editor

// Position is a zero-based line and column
type Position struct {
	Line   int
	Column int
}

// Cause tags why a selection changed
type Cause int

const (
	// CauseProgrammatic is a selection set by code, including the scroll engine
	CauseProgrammatic Cause = iota
	// CauseKeyboard is caret movement from key presses
	CauseKeyboard
	// CausePointer is a click or drag with a pointing device
	CausePointer
)

func (c Cause) String() string {
	switch c {
	case CauseProgrammatic:
		return "programmatic"
	case CauseKeyboard:
		return "keyboard"
	case CausePointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// OriginUser marks edits typed by the user
const OriginUser = ""

// TextChange is emitted after a document's text changed. Origin is the token
// passed to InsertText or DeleteLine.
type TextChange struct {
	DocumentID string
	Line       int
	Origin     string
}

// SelectionChange is emitted after a caret moved
type SelectionChange struct {
	DocumentID string
	Caret      Position
	Cause      Cause
}

// DocumentInfo describes the focused document
type DocumentInfo struct {
	ID        string
	Name      string
	LineCount int
	Caret     Position
}

// Disposable unregisters a listener. Dispose may be called more than once.
type Disposable interface {
	Dispose()
}

// Host is the editor the scroll engine operates on. Implementations must not
// invoke listeners while holding their own locks.
type Host interface {
	// ActiveDocument returns the focused document, if any
	ActiveDocument() (DocumentInfo, bool)
	LineText(docID string, line int) (string, error)
	SetCaret(docID string, pos Position, cause Cause) error
	// RevealLine scrolls the viewport so line is at the top
	RevealLine(docID string, line int) error
	InsertText(docID string, pos Position, text, origin string) error
	DeleteLine(docID string, line int, origin string) error
	// NextDocument moves focus to the next open document, wrapping around
	NextDocument() error
	OnTextChange(fn func(TextChange)) Disposable
	OnSelectionChange(fn func(SelectionChange)) Disposable
}

// DisposableFunc adapts a function to Disposable
type DisposableFunc func()

// Dispose calls f
func (f DisposableFunc) Dispose() {
	f()
}
