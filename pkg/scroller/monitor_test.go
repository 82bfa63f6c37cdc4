package scroller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoscroll/pkg/editor"
)

func TestPauseIsIdempotent(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 20)
	h.start()
	h.tick(2)

	h.engine.Pause()
	once := h.engine.Status()
	pendingOnce := h.clock.Pending()

	h.engine.Pause()
	assert.Equal(t, once, h.engine.Status())
	assert.Equal(t, pendingOnce, h.clock.Pending(), "idle timer is re-armed, not duplicated")
	assert.Equal(t, 2, h.clock.Pending())
}

func TestPauseStopsTicks(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 20)
	h.start()
	h.tick(2)

	h.engine.Pause()
	h.tick(5)
	assert.Equal(t, 2, h.caretLine())
	assert.True(t, h.engine.Status().Paused)
}

func TestPointerSelectionPausesAndResumesFromCaret(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 20)
	h.start()
	h.tick(3)

	h.click(10)
	status := h.engine.Status()
	assert.True(t, status.Paused)
	assert.Equal(t, 10, status.CurrentLine)

	h.clock.Advance(30 * time.Second)
	status = h.engine.Status()
	assert.False(t, status.Paused)
	assert.Equal(t, 10, status.StartLine, "idle resume restarts from the caret")

	h.tick(1)
	assert.Equal(t, 11, h.caretLine())
	assert.True(t, h.log.HasMessage("Idle timeout reached"))
}

func TestPointerSelectionWhilePausedIsIgnored(t *testing.T) {
	h := newHarness(t, testSettings())
	h.open("a.txt", 20)
	h.start()

	h.click(5)
	h.clock.Advance(20 * time.Second)
	h.click(12)
	assert.Equal(t, 5, h.engine.Status().CurrentLine)

	// The idle timer still fires 30s after the first click
	h.clock.Advance(10 * time.Second)
	assert.False(t, h.engine.Status().Paused)
}

func TestProgrammaticAndKeyboardSelectionsDoNotPause(t *testing.T) {
	h := newHarness(t, testSettings())
	id := h.open("a.txt", 20)
	h.start()

	require.NoError(t, h.host.SetCaret(id, editor.Position{Line: 4}, editor.CauseProgrammatic))
	require.NoError(t, h.host.SetCaret(id, editor.Position{Line: 6}, editor.CauseKeyboard))
	assert.False(t, h.engine.Status().Paused)

	h.tick(5)
	assert.False(t, h.engine.Status().Paused, "the engine's own caret moves never pause it")
}

func TestUserEditPauses(t *testing.T) {
	h := newHarness(t, testSettings())
	id := h.open("a.txt", 20)
	h.start()
	h.tick(1)

	require.NoError(t, h.host.InsertText(id, editor.Position{Line: 8}, "x", editor.OriginUser))
	assert.True(t, h.engine.Status().Paused)
}

func TestEditWithEngineOriginDoesNotPause(t *testing.T) {
	h := newHarness(t, testSettings())
	id := h.open("a.txt", 20)
	h.start()

	require.NoError(t, h.host.InsertText(id, editor.Position{Line: 8}, "x", h.engine.Origin()))
	assert.False(t, h.engine.Status().Paused)
}

func TestRepeatedEditsExtendIdle(t *testing.T) {
	h := newHarness(t, testSettings())
	id := h.open("a.txt", 20)
	h.start()

	require.NoError(t, h.host.InsertText(id, editor.Position{}, "a", editor.OriginUser))
	h.clock.Advance(20 * time.Second)
	require.NoError(t, h.host.InsertText(id, editor.Position{}, "b", editor.OriginUser))
	h.clock.Advance(20 * time.Second)
	assert.True(t, h.engine.Status().Paused)

	h.clock.Advance(10 * time.Second)
	assert.False(t, h.engine.Status().Paused)
}

func TestNoAutoResume(t *testing.T) {
	settings := testSettings()
	settings.AutoResume = false
	h := newHarness(t, settings)
	h.open("a.txt", 20)
	h.start()

	h.click(3)
	assert.Equal(t, 1, h.clock.Pending(), "only the tick is scheduled")

	h.clock.Advance(5 * time.Minute)
	assert.True(t, h.engine.Status().Paused)
}

func TestListenersFromStoppedSessionAreInert(t *testing.T) {
	h := newHarness(t, testSettings())
	id := h.open("a.txt", 20)
	h.start()
	h.engine.Stop()

	require.NoError(t, h.host.InsertText(id, editor.Position{}, "x", editor.OriginUser))
	h.click(2)
	assert.False(t, h.engine.Active())

	h.start()
	assert.False(t, h.engine.Status().Paused)
	assert.Equal(t, 2, h.host.ListenerCount())
}

func TestResumeWithoutDocumentStops(t *testing.T) {
	h := newHarness(t, testSettings())
	id := h.open("a.txt", 20)
	h.start()
	h.click(2)

	require.NoError(t, h.host.Close(id))
	h.clock.Advance(30 * time.Second)

	assert.False(t, h.engine.Active())
	assert.True(t, h.log.HasMessage("Failed to resume auto-scroll"))
}
