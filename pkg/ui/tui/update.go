package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"autoscroll/pkg/editor"
	"autoscroll/pkg/errors"
	"autoscroll/pkg/release"
)

// Message types for the TUI

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

// UpdateResultMsg carries the outcome of a release check. Manual is set for
// checks the user asked for; their failures are reported.
type UpdateResultMsg struct {
	Result release.Result
	Err    error
	Manual bool
}

// TickMsg is sent periodically to update the UI
type TickMsg time.Time

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		// The engine moves the document from its own timers; redraw
		return m, tickCmd()

	case UpdateResultMsg:
		m.handleUpdateResult(msg)
		return m, nil

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.insertMode {
		return m.handleInsertKey(msg)
	}

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.scroller.Stop()
		return m, tea.Quit

	case "s", "S":
		m.startScrolling()

	case "x", "X":
		if m.scroller.Status().Active {
			m.scroller.Stop()
			m.AddLogMessage("INFO", "Auto-scroll stopped")
		}

	case "c", "C":
		m.insertCheckpoint()

	case "u", "U":
		return m, m.checkUpdatesCmd()

	case "d", "D":
		m.dismissOffer()

	case "tab":
		if err := m.host.NextDocument(); err != nil {
			m.AddLogMessage("WARN", "No document to switch to")
		}

	case "i":
		if _, ok := m.host.ActiveDocument(); ok {
			m.insertMode = true
		}

	case "up", "k":
		m.moveCaret(-1)
	case "down", "j":
		m.moveCaret(1)
	case "pgup":
		m.moveCaret(-m.documentRows())
	case "pgdown":
		m.moveCaret(m.documentRows())
	case "home", "g":
		m.moveCaretTo(0)
	case "end", "G":
		m.moveCaretTo(-1)

	case "?":
		m.showHelp = !m.showHelp

	case "ctrl+l":
		// Clear logs
		m.logMessages = []LogMessage{}
	}

	return m, nil
}

// handleInsertKey edits the focused document as the user
func (m *Model) handleInsertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.scroller.Stop()
		return m, tea.Quit
	case tea.KeyEsc:
		m.insertMode = false
	case tea.KeyEnter:
		m.insertText("\n")
	case tea.KeyTab:
		m.insertText("\t")
	case tea.KeySpace:
		m.insertText(" ")
	case tea.KeyRunes:
		m.insertText(string(msg.Runes))
	case tea.KeyUp:
		m.moveCaret(-1)
	case tea.KeyDown:
		m.moveCaret(1)
	}
	return m, nil
}

// handleMouse maps clicks in the document pane to caret moves
func (m *Model) handleMouse(msg tea.MouseMsg) {
	doc, ok := m.host.ActiveDocument()
	if !ok || msg.Action != tea.MouseActionPress {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		_ = m.host.ScrollBy(doc.ID, -3)
	case tea.MouseButtonWheelDown:
		_ = m.host.ScrollBy(doc.ID, 3)
	case tea.MouseButtonLeft:
		row := msg.Y - headerRows
		if row < 0 || row >= m.documentRows() {
			return
		}
		view, ok := m.host.Document(doc.ID)
		if !ok {
			return
		}
		line := view.Top + row
		if line >= len(view.Lines) {
			return
		}
		col := msg.X - gutterWidth
		if col < 0 {
			col = 0
		}
		_ = m.host.SetCaret(doc.ID, editor.Position{Line: line, Column: col}, editor.CausePointer)
	}
}

func (m *Model) startScrolling() {
	if err := m.scroller.Start(); err != nil {
		if stderrors.Is(err, errors.ErrNoActiveDocument) {
			m.AddLogMessage("WARN", "Open a document before starting auto-scroll")
		} else {
			m.AddLogMessage("ERROR", "Failed to start auto-scroll: "+err.Error())
		}
		return
	}
	status := m.scroller.Status()
	m.AddLogMessage("INFO", fmt.Sprintf("Auto-scroll started at line %d", status.CurrentLine+1))
}

func (m *Model) insertCheckpoint() {
	err := m.scroller.InsertCheckpoint()
	switch {
	case err == nil:
	case stderrors.Is(err, errors.ErrNotRunning):
		m.AddLogMessage("WARN", "Start auto-scroll before inserting a checkpoint")
	case stderrors.Is(err, errors.ErrNoActiveDocument):
		m.AddLogMessage("WARN", "Focus a document before inserting a checkpoint")
	default:
		m.AddLogMessage("ERROR", "Failed to insert checkpoint: "+err.Error())
	}
}

func (m *Model) moveCaret(delta int) {
	doc, ok := m.host.ActiveDocument()
	if !ok {
		return
	}
	m.setCaretLine(doc, doc.Caret.Line+delta)
}

// moveCaretTo moves to a line; negative lines count from the end
func (m *Model) moveCaretTo(line int) {
	doc, ok := m.host.ActiveDocument()
	if !ok {
		return
	}
	if line < 0 {
		line = doc.LineCount + line
	}
	m.setCaretLine(doc, line)
}

func (m *Model) setCaretLine(doc editor.DocumentInfo, line int) {
	line = max(0, min(line, doc.LineCount-1))
	pos := editor.Position{Line: line, Column: doc.Caret.Column}
	if err := m.host.SetCaret(doc.ID, pos, editor.CauseKeyboard); err != nil {
		return
	}
	m.keepVisible(doc.ID, line)
}

// keepVisible scrolls the viewport just enough to show line
func (m *Model) keepVisible(docID string, line int) {
	view, ok := m.host.Document(docID)
	if !ok {
		return
	}
	rows := m.documentRows()
	switch {
	case line < view.Top:
		_ = m.host.RevealLine(docID, line)
	case line >= view.Top+rows:
		_ = m.host.RevealLine(docID, line-rows+1)
	}
}

func (m *Model) insertText(text string) {
	doc, ok := m.host.ActiveDocument()
	if !ok {
		m.insertMode = false
		return
	}
	if err := m.host.InsertText(doc.ID, doc.Caret, text, editor.OriginUser); err != nil {
		m.AddLogMessage("ERROR", "Edit failed: "+err.Error())
		return
	}
	next := advancePosition(doc.Caret, text)
	_ = m.host.SetCaret(doc.ID, next, editor.CauseKeyboard)
	m.keepVisible(doc.ID, next.Line)
}

// advancePosition returns the position just after text inserted at pos
func advancePosition(pos editor.Position, text string) editor.Position {
	if n := strings.Count(text, "\n"); n > 0 {
		tail := text[strings.LastIndex(text, "\n")+1:]
		return editor.Position{Line: pos.Line + n, Column: utf8.RuneCountInString(tail)}
	}
	return editor.Position{Line: pos.Line, Column: pos.Column + utf8.RuneCountInString(text)}
}

func (m *Model) handleUpdateResult(msg UpdateResultMsg) {
	if msg.Err != nil {
		if msg.Manual {
			m.AddLogMessage("ERROR", "Update check failed: "+msg.Err.Error())
		}
		return
	}

	result := msg.Result
	if !result.Available {
		if msg.Manual {
			m.offer = nil
			m.AddLogMessage("INFO", fmt.Sprintf("autoscroll %s is up to date", result.Current))
		}
		return
	}

	if !msg.Manual {
		if m.state != nil && !release.ShouldOffer(result, m.state.DismissedVersion()) {
			return
		}
		if m.offer != nil && m.offer.Latest == result.Latest {
			return
		}
	}

	m.offer = &result
	m.AddLogMessage("SUCCESS", fmt.Sprintf("Update available: %s (current %s)", result.Latest, result.Current))
}

func (m *Model) dismissOffer() {
	if m.offer == nil {
		return
	}
	latest := m.offer.Latest
	if m.state != nil {
		if err := m.state.DismissVersion(latest); err != nil {
			m.AddLogMessage("ERROR", "Failed to remember dismissed version: "+err.Error())
		}
	}
	m.offer = nil
	m.AddLogMessage("INFO", "Dismissed update "+latest)
}

// Commands

// checkUpdatesCmd runs a manual release check, bypassing the cache
func (m *Model) checkUpdatesCmd() tea.Cmd {
	if m.updates == nil {
		m.AddLogMessage("WARN", "Update checks are disabled")
		return nil
	}
	m.AddLogMessage("INFO", "Checking for updates...")

	updates, version, timeout := m.updates, m.version, m.checkTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		updates.Invalidate()
		result, err := updates.Check(ctx, version)
		return UpdateResultMsg{Result: result, Err: err, Manual: true}
	}
}

// tickCmd returns a command that sends a tick message
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
