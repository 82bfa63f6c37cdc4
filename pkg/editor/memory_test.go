package editor

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoscroll/pkg/errors"
)

func TestMemoryHostActiveDocument(t *testing.T) {
	host := NewMemoryHost()
	_, ok := host.ActiveDocument()
	assert.False(t, ok)

	first := host.Open("a.go", "one\ntwo\nthree")
	second := host.Open("b.py", "x")

	doc, ok := host.ActiveDocument()
	require.True(t, ok)
	assert.Equal(t, second, doc.ID)
	assert.Equal(t, 1, doc.LineCount)

	require.NoError(t, host.NextDocument())
	doc, _ = host.ActiveDocument()
	assert.Equal(t, first, doc.ID)
	assert.Equal(t, 3, doc.LineCount)

	require.NoError(t, host.NextDocument())
	doc, _ = host.ActiveDocument()
	assert.Equal(t, second, doc.ID, "focus wraps around")
}

func TestMemoryHostNextDocumentWithoutDocuments(t *testing.T) {
	err := NewMemoryHost().NextDocument()
	assert.True(t, stderrors.Is(err, errors.ErrNoActiveDocument))
}

func TestMemoryHostClose(t *testing.T) {
	host := NewMemoryHost()
	first := host.Open("a", "")
	second := host.Open("b", "")

	require.NoError(t, host.Close(second))
	doc, ok := host.ActiveDocument()
	require.True(t, ok)
	assert.Equal(t, first, doc.ID)

	require.NoError(t, host.Close(first))
	_, ok = host.ActiveDocument()
	assert.False(t, ok)

	assert.Error(t, host.Close(first))
}

func TestMemoryHostInsertText(t *testing.T) {
	host := NewMemoryHost()
	id := host.Open("a.go", "alpha\nbeta")

	require.NoError(t, host.InsertText(id, Position{Line: 1, Column: 0}, "\n", OriginUser))
	require.NoError(t, host.InsertText(id, Position{Line: 1, Column: 0}, "/", OriginUser))
	require.NoError(t, host.InsertText(id, Position{Line: 1, Column: 1}, "/", OriginUser))
	require.NoError(t, host.InsertText(id, Position{Line: 0, Column: 99}, "!", OriginUser))

	view, ok := host.Document(id)
	require.True(t, ok)
	assert.Equal(t, []string{"alpha!", "//", "beta"}, view.Lines)

	assert.Error(t, host.InsertText(id, Position{Line: 3}, "x", OriginUser))
}

func TestMemoryHostInsertShiftsCaret(t *testing.T) {
	host := NewMemoryHost()
	id := host.Open("a", "a\nb\nc")
	require.NoError(t, host.SetCaret(id, Position{Line: 2}, CauseKeyboard))

	require.NoError(t, host.InsertText(id, Position{Line: 1}, "\n", "origin"))

	doc, _ := host.ActiveDocument()
	assert.Equal(t, 3, doc.Caret.Line)
}

func TestMemoryHostDeleteLine(t *testing.T) {
	host := NewMemoryHost()
	id := host.Open("a", "a\nb\nc")
	require.NoError(t, host.SetCaret(id, Position{Line: 2, Column: 1}, CauseKeyboard))

	require.NoError(t, host.DeleteLine(id, 0, OriginUser))
	view, _ := host.Document(id)
	assert.Equal(t, []string{"b", "c"}, view.Lines)
	assert.Equal(t, Position{Line: 1, Column: 1}, view.Caret)

	require.NoError(t, host.DeleteLine(id, 1, OriginUser))
	require.NoError(t, host.DeleteLine(id, 0, OriginUser))
	view, _ = host.Document(id)
	assert.Equal(t, []string{""}, view.Lines, "last line is emptied, not removed")

	assert.Error(t, host.DeleteLine(id, 5, OriginUser))
}

func TestMemoryHostErrorInjection(t *testing.T) {
	host := NewMemoryHost()
	id := host.Open("a", "a")
	host.InsertError = stderrors.New("read-only")
	host.DeleteError = stderrors.New("read-only")

	assert.EqualError(t, host.InsertText(id, Position{}, "x", OriginUser), "read-only")
	assert.EqualError(t, host.DeleteLine(id, 0, OriginUser), "read-only")
}

func TestMemoryHostNotifications(t *testing.T) {
	host := NewMemoryHost()
	id := host.Open("a", "a\nb\nc")

	var texts []TextChange
	var selections []SelectionChange
	textSub := host.OnTextChange(func(c TextChange) { texts = append(texts, c) })
	selSub := host.OnSelectionChange(func(c SelectionChange) { selections = append(selections, c) })
	assert.Equal(t, 2, host.ListenerCount())

	require.NoError(t, host.SetCaret(id, Position{Line: 9}, CausePointer))
	require.NoError(t, host.InsertText(id, Position{Line: 0}, "x", "engine"))

	require.Len(t, selections, 1)
	assert.Equal(t, SelectionChange{DocumentID: id, Caret: Position{Line: 2}, Cause: CausePointer}, selections[0])
	require.Len(t, texts, 1)
	assert.Equal(t, TextChange{DocumentID: id, Line: 0, Origin: "engine"}, texts[0])

	textSub.Dispose()
	selSub.Dispose()
	selSub.Dispose()
	assert.Equal(t, 0, host.ListenerCount())

	require.NoError(t, host.SetCaret(id, Position{}, CauseKeyboard))
	assert.Len(t, selections, 1)
}

func TestMemoryHostListenerMayCallBack(t *testing.T) {
	host := NewMemoryHost()
	id := host.Open("a", "a\nb")

	var seen string
	host.OnSelectionChange(func(c SelectionChange) {
		seen, _ = host.LineText(c.DocumentID, c.Caret.Line)
	})
	require.NoError(t, host.SetCaret(id, Position{Line: 1}, CausePointer))
	assert.Equal(t, "b", seen)
}

func TestMemoryHostRevealAndScroll(t *testing.T) {
	host := NewMemoryHost()
	id := host.Open("a", "1\n2\n3\n4")

	require.NoError(t, host.RevealLine(id, 2))
	view, _ := host.Document(id)
	assert.Equal(t, 2, view.Top)

	require.NoError(t, host.ScrollBy(id, 10))
	view, _ = host.Document(id)
	assert.Equal(t, 3, view.Top)

	require.NoError(t, host.ScrollBy(id, -10))
	view, _ = host.Document(id)
	assert.Equal(t, 0, view.Top)
}

func TestDocumentsSnapshotIsCopy(t *testing.T) {
	host := NewMemoryHost()
	host.Open("a", "a")
	host.Open("b", "b")

	views, active := host.Documents()
	require.Len(t, views, 2)
	assert.Equal(t, 1, active)

	views[0].Lines[0] = "mutated"
	again, _ := host.Documents()
	assert.Equal(t, "a", again[0].Lines[0])
}

func TestCauseString(t *testing.T) {
	assert.Equal(t, "pointer", CausePointer.String())
	assert.Equal(t, "keyboard", CauseKeyboard.String())
	assert.Equal(t, "programmatic", CauseProgrammatic.String())
}
