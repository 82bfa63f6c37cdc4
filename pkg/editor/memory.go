package editor

import (
	"fmt"
	"strings"
	"sync"

	"autoscroll/pkg/errors"
)

// DocumentView is a read-only snapshot of an open document
type DocumentView struct {
	ID    string
	Name  string
	Lines []string
	Caret Position
	Top   int
}

type document struct {
	id    string
	name  string
	lines []string
	caret Position
	top   int
}

// MemoryHost is a Host that keeps its documents in memory. It backs the
// terminal viewer and the engine tests.
type MemoryHost struct {
	mu     sync.RWMutex
	docs   []*document
	active int
	nextID int

	listenerID         int
	textListeners      map[int]func(TextChange)
	selectionListeners map[int]func(SelectionChange)

	// Error injection for testing
	InsertError error
	DeleteError error
}

// NewMemoryHost creates a host with no open documents
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		active:             -1,
		textListeners:      make(map[int]func(TextChange)),
		selectionListeners: make(map[int]func(SelectionChange)),
	}
}

// Open adds a document and focuses it. It returns the document ID.
func (h *MemoryHost) Open(name, content string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	doc := &document{
		id:    fmt.Sprintf("doc-%d", h.nextID),
		name:  name,
		lines: strings.Split(content, "\n"),
	}
	h.docs = append(h.docs, doc)
	h.active = len(h.docs) - 1
	return doc.id
}

// Close removes a document. Focus moves to the previous document.
func (h *MemoryHost) Close(docID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := h.indexOf(docID)
	if idx < 0 {
		return errors.New(errors.ErrorTypeNotFound, "document "+docID)
	}
	h.docs = append(h.docs[:idx], h.docs[idx+1:]...)
	switch {
	case len(h.docs) == 0:
		h.active = -1
	case h.active >= idx && h.active > 0:
		h.active--
	}
	return nil
}

// Focus makes docID the active document
func (h *MemoryHost) Focus(docID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := h.indexOf(docID)
	if idx < 0 {
		return errors.New(errors.ErrorTypeNotFound, "document "+docID)
	}
	h.active = idx
	return nil
}

// ActiveDocument returns the focused document
func (h *MemoryHost) ActiveDocument() (DocumentInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.active < 0 {
		return DocumentInfo{}, false
	}
	doc := h.docs[h.active]
	return DocumentInfo{
		ID:        doc.id,
		Name:      doc.name,
		LineCount: len(doc.lines),
		Caret:     doc.caret,
	}, true
}

// LineText returns the text of one line
func (h *MemoryHost) LineText(docID string, line int) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	doc, err := h.lookup(docID)
	if err != nil {
		return "", err
	}
	if line < 0 || line >= len(doc.lines) {
		return "", fmt.Errorf("line %d out of range [0, %d)", line, len(doc.lines))
	}
	return doc.lines[line], nil
}

// SetCaret moves the caret, clamped to the document, and notifies listeners
func (h *MemoryHost) SetCaret(docID string, pos Position, cause Cause) error {
	h.mu.Lock()
	doc, err := h.lookup(docID)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	doc.caret = clampPosition(doc.lines, pos)
	change := SelectionChange{DocumentID: doc.id, Caret: doc.caret, Cause: cause}
	listeners := h.selectionSnapshot()
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
	return nil
}

// RevealLine scrolls so that line is the first visible line
func (h *MemoryHost) RevealLine(docID string, line int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, err := h.lookup(docID)
	if err != nil {
		return err
	}
	doc.top = clamp(line, 0, len(doc.lines)-1)
	return nil
}

// ScrollBy moves the viewport without touching the caret
func (h *MemoryHost) ScrollBy(docID string, delta int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, err := h.lookup(docID)
	if err != nil {
		return err
	}
	doc.top = clamp(doc.top+delta, 0, len(doc.lines)-1)
	return nil
}

// InsertText inserts text at pos. Text may span several lines.
func (h *MemoryHost) InsertText(docID string, pos Position, text, origin string) error {
	h.mu.Lock()
	if h.InsertError != nil {
		h.mu.Unlock()
		return h.InsertError
	}
	doc, err := h.lookup(docID)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	if pos.Line < 0 || pos.Line >= len(doc.lines) {
		h.mu.Unlock()
		return fmt.Errorf("insert at line %d out of range [0, %d)", pos.Line, len(doc.lines))
	}

	current := []rune(doc.lines[pos.Line])
	col := clamp(pos.Column, 0, len(current))
	head, tail := string(current[:col]), string(current[col:])

	parts := strings.Split(text, "\n")
	parts[0] = head + parts[0]
	parts[len(parts)-1] += tail

	lines := make([]string, 0, len(doc.lines)+len(parts)-1)
	lines = append(lines, doc.lines[:pos.Line]...)
	lines = append(lines, parts...)
	lines = append(lines, doc.lines[pos.Line+1:]...)
	doc.lines = lines

	if added := len(parts) - 1; added > 0 {
		if doc.caret.Line > pos.Line || (doc.caret.Line == pos.Line && doc.caret.Column >= col) {
			doc.caret.Line += added
		}
	}

	change := TextChange{DocumentID: doc.id, Line: pos.Line, Origin: origin}
	listeners := h.textSnapshot()
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
	return nil
}

// DeleteLine removes a whole line. The last remaining line is emptied instead.
func (h *MemoryHost) DeleteLine(docID string, line int, origin string) error {
	h.mu.Lock()
	if h.DeleteError != nil {
		h.mu.Unlock()
		return h.DeleteError
	}
	doc, err := h.lookup(docID)
	if err != nil {
		h.mu.Unlock()
		return err
	}
	if line < 0 || line >= len(doc.lines) {
		h.mu.Unlock()
		return fmt.Errorf("delete line %d out of range [0, %d)", line, len(doc.lines))
	}

	if len(doc.lines) == 1 {
		doc.lines[0] = ""
	} else {
		doc.lines = append(doc.lines[:line], doc.lines[line+1:]...)
	}
	if doc.caret.Line > line {
		doc.caret.Line--
	}
	doc.caret = clampPosition(doc.lines, doc.caret)
	doc.top = clamp(doc.top, 0, len(doc.lines)-1)

	change := TextChange{DocumentID: doc.id, Line: line, Origin: origin}
	listeners := h.textSnapshot()
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(change)
	}
	return nil
}

// NextDocument focuses the next open document
func (h *MemoryHost) NextDocument() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.docs) == 0 {
		return errors.ErrNoActiveDocument
	}
	h.active = (h.active + 1) % len(h.docs)
	return nil
}

// OnTextChange registers a text change listener
func (h *MemoryHost) OnTextChange(fn func(TextChange)) Disposable {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.listenerID++
	id := h.listenerID
	h.textListeners[id] = fn
	return DisposableFunc(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.textListeners, id)
	})
}

// OnSelectionChange registers a selection change listener
func (h *MemoryHost) OnSelectionChange(fn func(SelectionChange)) Disposable {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.listenerID++
	id := h.listenerID
	h.selectionListeners[id] = fn
	return DisposableFunc(func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.selectionListeners, id)
	})
}

// ListenerCount returns the number of registered listeners
func (h *MemoryHost) ListenerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.textListeners) + len(h.selectionListeners)
}

// Documents returns snapshots of all open documents and the active index
func (h *MemoryHost) Documents() ([]DocumentView, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	views := make([]DocumentView, len(h.docs))
	for i, doc := range h.docs {
		views[i] = viewOf(doc)
	}
	return views, h.active
}

// Document returns a snapshot of one document
func (h *MemoryHost) Document(docID string) (DocumentView, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	doc, err := h.lookup(docID)
	if err != nil {
		return DocumentView{}, false
	}
	return viewOf(doc), true
}

func viewOf(doc *document) DocumentView {
	lines := make([]string, len(doc.lines))
	copy(lines, doc.lines)
	return DocumentView{
		ID:    doc.id,
		Name:  doc.name,
		Lines: lines,
		Caret: doc.caret,
		Top:   doc.top,
	}
}

func (h *MemoryHost) indexOf(docID string) int {
	for i, doc := range h.docs {
		if doc.id == docID {
			return i
		}
	}
	return -1
}

func (h *MemoryHost) lookup(docID string) (*document, error) {
	idx := h.indexOf(docID)
	if idx < 0 {
		return nil, errors.New(errors.ErrorTypeNotFound, "document "+docID)
	}
	return h.docs[idx], nil
}

// textSnapshot copies the listeners in registration order. Caller holds mu.
func (h *MemoryHost) textSnapshot() []func(TextChange) {
	fns := make([]func(TextChange), 0, len(h.textListeners))
	for id := 1; id <= h.listenerID; id++ {
		if fn, ok := h.textListeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (h *MemoryHost) selectionSnapshot() []func(SelectionChange) {
	fns := make([]func(SelectionChange), 0, len(h.selectionListeners))
	for id := 1; id <= h.listenerID; id++ {
		if fn, ok := h.selectionListeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func clampPosition(lines []string, pos Position) Position {
	line := clamp(pos.Line, 0, len(lines)-1)
	col := clamp(pos.Column, 0, len([]rune(lines[line])))
	return Position{Line: line, Column: col}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
