// Package scroller drives automatic scrolling through the focused document of
// an editor.Host.
//
// An Engine owns at most one Session. While a session is active a repeating
// tick advances the caret by the configured step, sweeping down, up, or both,
// and reveals the new line at the top of the viewport. At the end of a cycle
// the engine can move focus to the next document. Pointer selections and any
// text edit not made by the engine pause the session; with auto-resume the
// session restarts after the idle timeout.
//
// With checkpoints enabled the engine periodically types a comment line into
// the document and removes it again after a few seconds. Scrolling is paused
// while the annotation is shown.
//
// All engine state is guarded by one mutex. Timers come from a clock.Clock,
// so tests drive the engine with clock.Manual.
package scroller
