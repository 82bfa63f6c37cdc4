package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"autoscroll/pkg/editor"
	"autoscroll/pkg/scroller"
)

// View renders the entire TUI
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	docs, active := m.host.Documents()

	var sections []string
	sections = append(sections, m.renderTabs(docs, active, width))

	if m.showHelp {
		sections = append(sections, m.renderHelp(m.documentRows()))
	} else if active < 0 {
		sections = append(sections, m.renderEmpty(m.documentRows()))
	} else {
		sections = append(sections, m.renderDocument(docs[active]))
	}

	if m.offer != nil {
		sections = append(sections, m.renderOffer(width))
	}
	sections = append(sections, m.renderStatus(docs, active, width))
	sections = append(sections, m.renderLogs(width))

	if m.showHelp {
		sections = append(sections, helpStyle.Render("Press ? to close help"))
	} else {
		sections = append(sections, helpStyle.Render("s start  x stop  c checkpoint  i insert  tab next  u updates  ? help  q quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTabs renders the title and one tab per open document
func (m *Model) renderTabs(docs []editor.DocumentView, active, width int) string {
	parts := []string{titleStyle.Render("AUTOSCROLL")}
	for i, doc := range docs {
		if i == active {
			parts = append(parts, tabActiveStyle.Render(doc.Name))
		} else {
			parts = append(parts, tabStyle.Render(doc.Name))
		}
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// renderDocument renders the visible lines of a document with a gutter
func (m *Model) renderDocument(doc editor.DocumentView) string {
	rows := m.documentRows()
	textWidth := m.documentWidth()

	end := min(doc.Top+rows, len(doc.Lines))
	visible := make([]string, 0, rows)
	for _, line := range doc.Lines[doc.Top:end] {
		line = strings.ReplaceAll(line, "\t", "    ")
		visible = append(visible, runewidth.Truncate(line, textWidth, "…"))
	}
	colored := m.highlighter.Lines(doc.Name, visible)

	out := make([]string, rows)
	for i := range out {
		line := doc.Top + i
		if line >= len(doc.Lines) {
			out[i] = gutterStyle.Render(fmt.Sprintf("%*s", gutterWidth-1, "~"))
			continue
		}
		var gutter string
		if line == doc.Caret.Line {
			gutter = gutterCaretStyle.Render(fmt.Sprintf("%5d▶ ", line+1))
		} else {
			gutter = gutterStyle.Render(fmt.Sprintf("%5d│ ", line+1))
		}
		out[i] = gutter + colored[i]
	}
	return strings.Join(out, "\n")
}

// renderEmpty fills the document pane when nothing is open
func (m *Model) renderEmpty(rows int) string {
	msg := emptyStyle.Render("No documents open. Pass files on the command line to read them.")
	return lipgloss.NewStyle().Height(rows).Render(msg)
}

// renderOffer renders the update banner
func (m *Model) renderOffer(width int) string {
	text := fmt.Sprintf("Update available: %s (you have %s). Press d to dismiss.", m.offer.Latest, m.offer.Current)
	return offerStyle.MaxWidth(width).Render(text)
}

// renderStatus renders the engine state line
func (m *Model) renderStatus(docs []editor.DocumentView, active, width int) string {
	status := m.scroller.Status()

	var state string
	switch {
	case !status.Active:
		state = stoppedStyle.Render("■ STOPPED")
	case status.Paused:
		state = pausedStyle.Render("⏸ PAUSED")
	default:
		state = scrollingStyle.Render(m.spinner.View() + " SCROLLING")
	}

	parts := []string{state}
	if status.Active {
		parts = append(parts,
			statusLabelStyle.Render("mode ")+statusValueStyle.Render(formatMode(status)),
			statusLabelStyle.Render("scrolled ")+statusValueStyle.Render(fmt.Sprintf("%d", status.ScrolledLines)),
			statusLabelStyle.Render("cycles ")+statusValueStyle.Render(fmt.Sprintf("%d", status.Cycles)),
		)
	}
	if active >= 0 {
		doc := docs[active]
		parts = append(parts, statusLabelStyle.Render("line ")+
			statusValueStyle.Render(fmt.Sprintf("%d/%d", doc.Caret.Line+1, len(doc.Lines))))
	}
	if status.Annotating {
		parts = append(parts, insertStyle.Render("✎ checkpoint"))
	}
	if m.insertMode {
		parts = append(parts, insertStyle.Render("-- INSERT --"))
	}

	return statusBarStyle.Width(width).MaxWidth(width).Render(" " + strings.Join(parts, "  "))
}

// formatMode describes the scroll mode and current direction
func formatMode(status scroller.Status) string {
	arrow := "↓"
	if status.Direction == scroller.Up {
		arrow = "↑"
	}
	return status.Mode.String() + " " + arrow
}

// renderLogs renders the most recent log lines
func (m *Model) renderLogs(width int) string {
	start := max(len(m.logMessages)-logRows, 0)

	logs := make([]string, 0, logRows)
	for _, log := range m.logMessages[start:] {
		timestamp := logTimestampStyle.Render(log.Time.Format("15:04:05"))
		level := lipgloss.NewStyle().Foreground(log.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", log.Level))
		message := logMessageStyle.Render(runewidth.Truncate(log.Message, max(width-20, 10), "…"))
		logs = append(logs, fmt.Sprintf("%s %s %s", timestamp, level, message))
	}
	for len(logs) < logRows {
		logs = append(logs, "")
	}
	return strings.Join(logs, "\n")
}

// renderHelp renders the help panel in place of the document
func (m *Model) renderHelp(rows int) string {
	help := `  Scrolling:
    s        - Start auto-scroll from the caret (restarts when running)
    x        - Stop auto-scroll
    c        - Type a checkpoint comment at the current line

  Reading:
    ↑/↓ j/k  - Move the caret
    pgup/dn  - Move the caret a page
    click    - Move the caret and pause scrolling
    tab      - Focus the next document
    i / esc  - Enter and leave insert mode; edits pause scrolling

  Updates:
    u        - Check for a newer release now
    d        - Dismiss the offered release

  ctrl+l clears the log, q quits.`

	return lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(help)
}
