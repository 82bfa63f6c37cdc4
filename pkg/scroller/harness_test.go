package scroller

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"autoscroll/pkg/clock"
	"autoscroll/pkg/editor"
	"autoscroll/pkg/logger"
)

const testTypingDelay = 10 * time.Millisecond

type harness struct {
	t        *testing.T
	host     *editor.MemoryHost
	clock    *clock.Manual
	log      *logger.TestLogger
	settings Settings
	engine   *Engine
}

func testSettings() Settings {
	return Settings{
		Delay:       time.Second,
		Mode:        ModeBidirectional,
		Step:        1,
		AutoSwitch:  false,
		IdleTimeout: 30 * time.Second,
		AutoResume:  true,
		Checkpoint: CheckpointSettings{
			Frequency:    50,
			Duration:     2 * time.Second,
			Text:         "// cp",
			AdaptComment: true,
		},
	}
}

func newHarness(t *testing.T, settings Settings) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		host:     editor.NewMemoryHost(),
		clock:    clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		log:      logger.NewTestLogger(),
		settings: settings,
	}
	h.engine = New(Options{
		Host:        h.host,
		Settings:    func() Settings { return h.settings },
		Clock:       h.clock,
		Logger:      h.log,
		TypingDelay: func() time.Duration { return testTypingDelay },
	})
	return h
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line%d", i)
	}
	return strings.Join(lines, "\n")
}

func (h *harness) open(name string, lines int) string {
	return h.host.Open(name, numberedLines(lines))
}

func (h *harness) start() {
	h.t.Helper()
	require.NoError(h.t, h.engine.Start())
}

// tick advances the clock by n tick intervals
func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.clock.Advance(h.settings.Delay)
	}
}

func (h *harness) caretLine() int {
	doc, ok := h.host.ActiveDocument()
	require.True(h.t, ok)
	return doc.Caret.Line
}

func (h *harness) activeID() string {
	doc, ok := h.host.ActiveDocument()
	require.True(h.t, ok)
	return doc.ID
}

func (h *harness) lines(docID string) []string {
	view, ok := h.host.Document(docID)
	require.True(h.t, ok)
	return view.Lines
}

func (h *harness) click(line int) {
	h.t.Helper()
	require.NoError(h.t, h.host.SetCaret(h.activeID(), editor.Position{Line: line}, editor.CausePointer))
}
