package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"autoscroll/pkg/release"
)

// BackgroundChecker runs periodic release checks
type BackgroundChecker interface {
	Run(ctx context.Context, interval time.Duration, current string, onResult func(release.Result))
}

// TUI represents the terminal user interface
type TUI struct {
	program    *tea.Program
	model      *Model
	background BackgroundChecker
	interval   time.Duration
}

// NewTUI creates a new TUI instance. With a background checker, releases
// are looked up every interval while the viewer runs.
func NewTUI(opts Options, background BackgroundChecker, interval time.Duration) *TUI {
	model := NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	return &TUI{
		program:    program,
		model:      model,
		background: background,
		interval:   interval,
	}
}

// Start runs the TUI until the user quits
func (t *TUI) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if t.background != nil {
		version := t.model.version
		go func() {
			t.LogInfo("Checking for updates every %s", t.interval)
			t.background.Run(ctx, t.interval, version, func(result release.Result) {
				t.Send(UpdateResultMsg{Result: result})
			})
		}()
	}

	_, err := t.program.Run()
	return err
}

// Stop stops the TUI gracefully
func (t *TUI) Stop() {
	t.program.Quit()
}

// Send sends a message to the TUI
func (t *TUI) Send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// Log sends a log message to the TUI
func (t *TUI) Log(level, format string, args ...interface{}) {
	t.Send(LogMsg{Level: level, Message: fmt.Sprintf(format, args...)})
}

// LogInfo logs an info message
func (t *TUI) LogInfo(format string, args ...interface{}) {
	t.Log("INFO", format, args...)
}
