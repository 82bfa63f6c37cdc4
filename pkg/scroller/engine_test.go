package scroller

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoscroll/pkg/clock"
	"autoscroll/pkg/config"
	"autoscroll/pkg/editor"
	"autoscroll/pkg/errors"
)

func TestStartWithoutDocument(t *testing.T) {
	h := newHarness(t, testSettings())

	err := h.engine.Start()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNoActiveDocument))
	assert.False(t, h.engine.Active())
	assert.Equal(t, 0, h.host.ListenerCount())
	assert.Equal(t, 0, h.clock.Pending())
}

func TestStartFromCaretLine(t *testing.T) {
	h := newHarness(t, testSettings())
	id := h.open("a.txt", 20)
	require.NoError(t, h.host.SetCaret(id, editor.Position{Line: 7}, editor.CauseKeyboard))

	h.start()
	status := h.engine.Status()
	assert.True(t, status.Active)
	assert.Equal(t, 7, status.CurrentLine)
	assert.Equal(t, 7, status.StartLine)
	assert.Equal(t, 2, h.host.ListenerCount())

	h.tick(1)
	assert.Equal(t, 8, h.caretLine())
	view, _ := h.host.Document(id)
	assert.Equal(t, 8, view.Top, "revealed line is at the top of the viewport")
}

func TestLinesStayInBounds(t *testing.T) {
	for _, mode := range []Mode{ModeBidirectional, ModeDownOnly, ModeUpOnly} {
		for _, step := range []int{1, 2, 3, 7} {
			for _, n := range []int{1, 2, 5, 10} {
				for _, budget := range []int{0, 4} {
					name := fmt.Sprintf("%s/step=%d/lines=%d/budget=%d", mode, step, n, budget)
					t.Run(name, func(t *testing.T) {
						settings := testSettings()
						settings.Mode = mode
						settings.Step = step
						settings.MaxLines = budget
						h := newHarness(t, settings)
						h.open("a.txt", n)
						h.start()

						for i := 0; i < 60; i++ {
							h.tick(1)
							status := h.engine.Status()
							require.GreaterOrEqual(t, status.CurrentLine, 0)
							require.Less(t, status.CurrentLine, n)
							require.Less(t, h.caretLine(), n)
						}
					})
				}
			}
		}
	}
}

func TestBidirectionalCycleTakesEighteenTicks(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 10)
	h.start()

	h.tick(9)
	status := h.engine.Status()
	assert.Equal(t, 9, status.CurrentLine)
	assert.Equal(t, Up, status.Direction)
	assert.Equal(t, 0, status.Cycles)

	h.tick(8)
	assert.Equal(t, 1, h.engine.Status().CurrentLine)
	assert.Equal(t, 0, h.engine.Status().Cycles)

	h.tick(1)
	status = h.engine.Status()
	assert.Equal(t, 0, status.CurrentLine)
	assert.Equal(t, Down, status.Direction)
	assert.Equal(t, 1, status.Cycles)

	h.tick(18)
	assert.Equal(t, 2, h.engine.Status().Cycles)
}

func TestBudgetResetsToStartLine(t *testing.T) {
	settings := testSettings()
	settings.MaxLines = 5
	settings.Step = 2
	h := newHarness(t, settings)
	id := h.open("a.txt", 20)
	require.NoError(t, h.host.SetCaret(id, editor.Position{Line: 3}, editor.CauseKeyboard))
	h.start()

	h.tick(3)
	status := h.engine.Status()
	assert.Equal(t, 9, status.CurrentLine)
	assert.Equal(t, 6, status.ScrolledLines)

	h.tick(1)
	status = h.engine.Status()
	assert.Equal(t, 3, status.CurrentLine)
	assert.Equal(t, 0, status.ScrolledLines)
	assert.Equal(t, Down, status.Direction)
	assert.Equal(t, 9, h.caretLine(), "a budget reset does not reveal")

	h.tick(1)
	assert.Equal(t, 5, h.caretLine())
}

func TestBudgetTakesPriorityOverCycle(t *testing.T) {
	settings := testSettings()
	settings.MaxLines = 5
	settings.Step = 2
	h := newHarness(t, settings)
	h.open("a.txt", 5)
	h.start()

	h.tick(3)
	status := h.engine.Status()
	require.Equal(t, 2, status.CurrentLine)
	require.Equal(t, Up, status.Direction)

	// Stepping would reach line 0 and complete a cycle; the budget wins
	h.tick(1)
	status = h.engine.Status()
	assert.Equal(t, 0, status.CurrentLine)
	assert.Equal(t, 0, status.Cycles)
	assert.Equal(t, Down, status.Direction)
	assert.Equal(t, 0, status.ScrolledLines)
}

func TestBudgetSwitchesDocument(t *testing.T) {
	settings := testSettings()
	settings.MaxLines = 5
	settings.Step = 2
	settings.AutoSwitch = true
	h := newHarness(t, settings)
	first := h.open("a.txt", 30)
	second := h.open("b.txt", 30)
	require.NoError(t, h.host.Focus(first))
	h.start()

	h.tick(3)
	assert.Equal(t, first, h.activeID())

	h.tick(1)
	assert.Equal(t, second, h.activeID())
	assert.Equal(t, 0, h.engine.Status().CurrentLine)

	h.tick(1)
	assert.Equal(t, 2, h.caretLine(), "the engine follows focus")
}

func TestDownOnlySwitchesTabOnThirdTick(t *testing.T) {
	settings := testSettings()
	settings.Mode = ModeDownOnly
	settings.AutoSwitch = true
	h := newHarness(t, settings)
	first := h.open("a.txt", 3)
	second := h.open("b.txt", 3)
	require.NoError(t, h.host.Focus(first))
	h.start()

	h.tick(1)
	assert.Equal(t, 1, h.caretLine())
	h.tick(1)
	assert.Equal(t, 2, h.caretLine())
	assert.Equal(t, first, h.activeID())

	h.tick(1)
	assert.Equal(t, second, h.activeID())
	status := h.engine.Status()
	assert.Equal(t, 0, status.CurrentLine)
	assert.Equal(t, 1, status.Cycles)
	assert.Equal(t, 0, status.ScrolledLines)
}

func TestDownOnlyWrapsWithoutAutoSwitch(t *testing.T) {
	settings := testSettings()
	settings.Mode = ModeDownOnly
	h := newHarness(t, settings)
	h.open("a.txt", 3)
	h.start()

	var visited []int
	for i := 0; i < 6; i++ {
		h.tick(1)
		visited = append(visited, h.caretLine())
	}
	assert.Equal(t, []int{1, 2, 0, 1, 2, 0}, visited)
	assert.Equal(t, 2, h.engine.Status().Cycles)
}

func TestUpOnlyWraps(t *testing.T) {
	settings := testSettings()
	settings.Mode = ModeUpOnly
	h := newHarness(t, settings)
	h.open("a.txt", 4)
	h.start()

	var visited []int
	for i := 0; i < 5; i++ {
		h.tick(1)
		visited = append(visited, h.caretLine())
	}
	assert.Equal(t, []int{3, 2, 1, 0, 3}, visited)
	assert.Equal(t, 2, h.engine.Status().Cycles)
}

func TestSingleLineDocumentStaysAtZero(t *testing.T) {
	h := newHarness(t, testSettings())
	h.host.Open("empty.txt", "")
	h.start()

	h.tick(3)
	assert.Equal(t, 0, h.caretLine())
	assert.True(t, h.engine.Active())
}

func TestNonPositiveDelayUsesMinimum(t *testing.T) {
	settings := testSettings()
	settings.Delay = 0
	h := newHarness(t, settings)
	h.open("a.txt", 10)
	h.start()

	h.clock.Advance(MinDelay - time.Millisecond)
	assert.Equal(t, 0, h.caretLine())
	h.clock.Advance(time.Millisecond)
	assert.Equal(t, 1, h.caretLine())
}

func TestStopIsIdempotent(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 10)

	h.engine.Stop()
	h.start()
	h.tick(2)

	h.engine.Stop()
	h.engine.Stop()

	assert.False(t, h.engine.Active())
	assert.Equal(t, 0, h.host.ListenerCount())
	assert.Equal(t, 0, h.clock.Pending())

	h.tick(3)
	assert.Equal(t, 2, h.caretLine(), "no ticks after stop")
}

func TestStartWhileRunningRestarts(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 20)
	h.start()
	h.tick(4)

	h.settings.Step = 3
	h.start()

	status := h.engine.Status()
	assert.Equal(t, 4, status.StartLine)
	assert.Equal(t, 0, status.ScrolledLines)
	assert.Equal(t, 2, h.host.ListenerCount())
	assert.Equal(t, 1, h.clock.Pending())

	h.tick(1)
	assert.Equal(t, 7, h.caretLine(), "restart reads fresh settings")
}

func TestRestartReadsSettings(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 20)
	h.start()

	h.settings.Mode = ModeUpOnly
	require.NoError(t, h.engine.Restart())
	assert.Equal(t, ModeUpOnly, h.engine.Status().Mode)
}

func TestIdleStatusDoesNotReadSettings(t *testing.T) {
	reads := 0
	settings := testSettings()
	settings.Mode = ModeUpOnly
	host := editor.NewMemoryHost()
	engine := New(Options{
		Host: host,
		Settings: func() Settings {
			reads++
			return settings
		},
		Clock: clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	})

	for i := 0; i < 100; i++ {
		engine.Status()
	}
	assert.Equal(t, 0, reads)
	assert.Equal(t, ModeBidirectional, engine.Status().Mode)

	host.Open("a.txt", numberedLines(5))
	require.NoError(t, engine.Start())
	engine.Stop()
	assert.Equal(t, 1, reads)
	assert.Equal(t, ModeUpOnly, engine.Status().Mode, "idle status keeps the last started mode")
	assert.Equal(t, 1, reads)
}

func TestStatusWhenIdle(t *testing.T) {
	h := newHarness(t, testSettings())
	status := h.engine.Status()
	assert.False(t, status.Active)
	assert.Equal(t, ModeBidirectional, status.Mode)
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		line      int
		dir       Direction
		step      int
		maxLine   int
		wantLine  int
		wantDir   Direction
		wantCycle bool
	}{
		{"down step", ModeBidirectional, 3, Down, 2, 9, 5, Down, false},
		{"down flips at bottom", ModeBidirectional, 8, Down, 3, 9, 9, Up, false},
		{"up completes cycle", ModeBidirectional, 1, Up, 2, 9, 0, Down, true},
		{"down only clamps", ModeDownOnly, 8, Down, 3, 9, 9, Down, false},
		{"down only wraps", ModeDownOnly, 9, Down, 3, 9, 0, Down, true},
		{"up only clamps", ModeUpOnly, 1, Up, 3, 9, 0, Up, false},
		{"up only wraps", ModeUpOnly, 0, Up, 3, 9, 9, Up, true},
		{"single line", ModeBidirectional, 0, Up, 1, 0, 0, Down, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, dir, cycle := advance(tt.mode, tt.line, tt.dir, tt.step, tt.maxLine)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantDir, dir)
			assert.Equal(t, tt.wantCycle, cycle)
		})
	}
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scroll.Direction = config.DirectionUpOnly
	cfg.Scroll.DelayMs = 250
	cfg.Checkpoint.CommentStyle = config.CommentStyleNone

	s := SettingsFromConfig(cfg)
	assert.Equal(t, 250*time.Millisecond, s.Delay)
	assert.Equal(t, ModeUpOnly, s.Mode)
	assert.Equal(t, 30*time.Second, s.IdleTimeout)
	assert.Equal(t, 3*time.Second, s.Checkpoint.Duration)
	assert.False(t, s.Checkpoint.AdaptComment)

	assert.Equal(t, ModeBidirectional, ParseMode("sideways"))
	assert.Equal(t, config.DirectionDownOnly, ModeDownOnly.String())
}

func TestRandomTypingDelayRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		d := randomTypingDelay()
		assert.GreaterOrEqual(t, d, MinTypingDelay)
		assert.Less(t, d, MaxTypingDelay)
	}
}
