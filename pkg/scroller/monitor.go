package scroller

import "autoscroll/pkg/editor"

// onTextChange pauses on any edit the engine did not make itself. The origin
// check runs before taking the lock, since the engine's own edits are
// reported while it holds the lock.
func (e *Engine) onTextChange(sess *Session, change editor.TextChange) {
	if change.Origin == e.origin {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != sess {
		return
	}
	e.pauseLocked(sess)
}

// onSelectionChange pauses on pointer selections only. Keyboard navigation
// and programmatic caret moves, including the engine's own, never pause. A
// click while an annotation holds the session paused still counts as a user
// pause, so removing the annotation does not resume over it.
func (e *Engine) onSelectionChange(sess *Session, change editor.SelectionChange) {
	if change.Cause != editor.CausePointer {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != sess {
		return
	}
	if sess.Paused && (e.annotation == nil || e.annotation.restorePaused) {
		return
	}
	e.pauseLocked(sess)
}

// pauseLocked suspends the session, continues later from the caret line, and
// re-arms the idle timer when auto-resume is on.
func (e *Engine) pauseLocked(sess *Session) {
	sess.Paused = true
	if doc, ok := e.host.ActiveDocument(); ok {
		sess.CurrentLine = clamp(doc.Caret.Line, 0, doc.LineCount-1)
	}
	if e.annotation != nil {
		// the annotation must not unpause what the user paused
		e.annotation.restorePaused = true
	}

	cancel(&sess.idle)
	if sess.settings.AutoResume {
		e.schedule(sess, &sess.idle, sess.settings.IdleTimeout, func() {
			e.logger.Debug("Idle timeout reached, resuming auto-scroll")
			if err := e.restartLocked(); err != nil {
				e.logger.WithError(err).Warn("Failed to resume auto-scroll")
			}
		})
	}

	e.logger.DebugWithFields("Auto-scroll paused", map[string]interface{}{
		"line":        sess.CurrentLine,
		"auto_resume": sess.settings.AutoResume,
	})
}
