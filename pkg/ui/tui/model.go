package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autoscroll/pkg/editor"
	"autoscroll/pkg/release"
	"autoscroll/pkg/scroller"
)

// Scroller is the part of the scroll engine the viewer drives
type Scroller interface {
	Start() error
	Stop()
	InsertCheckpoint() error
	Status() scroller.Status
}

// UpdateChecker looks up newer releases
type UpdateChecker interface {
	Check(ctx context.Context, current string) (release.Result, error)
	Invalidate()
}

// VersionStore remembers the release the user dismissed
type VersionStore interface {
	DismissedVersion() string
	DismissVersion(version string) error
}

// Options configures the viewer model. Host and Scroller are required.
type Options struct {
	Host     *editor.MemoryHost
	Scroller Scroller
	Updates  UpdateChecker
	State    VersionStore
	Version  string
	// CheckTimeout bounds a manual update check
	CheckTimeout time.Duration
	// Style is the chroma style name used for syntax colors
	Style string
}

// Model represents the TUI model
type Model struct {
	// UI components
	spinner     spinner.Model
	highlighter *Highlighter

	// Collaborators
	host         *editor.MemoryHost
	scroller     Scroller
	updates      UpdateChecker
	state        VersionStore
	version      string
	checkTimeout time.Duration

	// Release offer shown in the banner, nil when there is none
	offer *release.Result

	// UI state
	width          int
	height         int
	showHelp       bool
	insertMode     bool
	logMessages    []LogMessage
	maxLogMessages int
}

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// NewModel creates a new TUI model
func NewModel(opts Options) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(neonCyan)

	timeout := opts.CheckTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Model{
		spinner:        s,
		highlighter:    NewHighlighter(opts.Style),
		host:           opts.Host,
		scroller:       opts.Scroller,
		updates:        opts.Updates,
		state:          opts.State,
		version:        opts.Version,
		checkTimeout:   timeout,
		logMessages:    []LogMessage{},
		maxLogMessages: 50,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

// AddLogMessage adds a log message
func (m *Model) AddLogMessage(level, message string) {
	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   levelColor(level),
	})

	// Keep only the last N messages
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// Offer returns the release currently offered, if any
func (m *Model) Offer() (release.Result, bool) {
	if m.offer == nil {
		return release.Result{}, false
	}
	return *m.offer, true
}

// InsertMode reports whether typed keys edit the document
func (m *Model) InsertMode() bool {
	return m.insertMode
}

// Layout rows around the document pane
const (
	headerRows  = 1
	statusRows  = 1
	helpRows    = 1
	logRows     = 3
	gutterWidth = 7
)

// documentRows returns how many document lines fit on screen
func (m *Model) documentRows() int {
	height := m.height
	if height <= 0 {
		height = 24
	}
	rows := height - headerRows - statusRows - helpRows - logRows
	if m.offer != nil {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// documentWidth returns the width available for line text
func (m *Model) documentWidth() int {
	width := m.width
	if width <= 0 {
		width = 80
	}
	if width-gutterWidth < 10 {
		return 10
	}
	return width - gutterWidth
}
