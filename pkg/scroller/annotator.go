package scroller

import (
	"strings"

	"autoscroll/pkg/editor"
	"autoscroll/pkg/errors"
)

// annotation is a checkpoint comment line currently in a document
type annotation struct {
	docID string
	line  int
	text  []rune
	// typed is the number of runes already inserted
	typed    int
	inserted bool
	// restorePaused is the pause state to return to on removal
	restorePaused bool
}

// InsertCheckpoint types a checkpoint annotation at the current line now,
// replacing any annotation still shown.
func (e *Engine) InsertCheckpoint() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.session
	if sess == nil {
		return errors.ErrNotRunning
	}
	doc, ok := e.host.ActiveDocument()
	if !ok {
		return errors.ErrNoActiveDocument
	}
	e.insertAnnotationLocked(sess, doc, clamp(sess.CurrentLine, 0, doc.LineCount-1))
	return nil
}

func (e *Engine) insertAnnotationLocked(sess *Session, doc editor.DocumentInfo, line int) {
	if prev := e.removeAnnotationLocked(sess); prev != nil {
		sess.Paused = prev.restorePaused
	}

	text := sess.settings.Checkpoint.Text
	if sess.settings.Checkpoint.AdaptComment {
		text = editor.AdaptComment(text, e.commentToken(doc))
	}

	a := &annotation{
		docID:         doc.ID,
		line:          line,
		text:          []rune(text),
		restorePaused: sess.Paused,
	}
	e.annotation = a
	sess.Paused = true

	if err := e.host.InsertText(a.docID, editor.Position{Line: line}, "\n", e.origin); err != nil {
		e.annotationFailed(sess, a, err)
		return
	}
	a.inserted = true

	e.logger.DebugWithFields("Checkpoint annotation inserted", map[string]interface{}{
		"document": doc.Name,
		"line":     line,
	})
	e.typeNext(sess, a)
}

// typeNext schedules the next character, or the removal once all are typed
func (e *Engine) typeNext(sess *Session, a *annotation) {
	if a.typed >= len(a.text) {
		e.scheduleRemoval(sess, a)
		return
	}

	e.schedule(sess, &sess.typing, e.typingDelay(), func() {
		if e.annotation != a {
			return
		}
		pos := editor.Position{Line: a.line, Column: a.typed}
		if err := e.host.InsertText(a.docID, pos, string(a.text[a.typed]), e.origin); err != nil {
			e.annotationFailed(sess, a, err)
			return
		}
		a.typed++
		e.typeNext(sess, a)
	})
}

func (e *Engine) scheduleRemoval(sess *Session, a *annotation) {
	e.schedule(sess, &sess.removal, sess.settings.Checkpoint.Duration, func() {
		if e.annotation != a {
			return
		}
		e.deleteAnnotationLine(a)
		e.annotation = nil
		sess.Paused = a.restorePaused
	})
}

// annotationFailed logs the failure and still arms the removal so that the
// pause state is restored.
func (e *Engine) annotationFailed(sess *Session, a *annotation, err error) {
	e.logger.WithError(errors.Wrap(errors.ErrorTypeAnnotationIO, err, "checkpoint annotation")).
		WarnWithFields("Checkpoint annotation failed", map[string]interface{}{
			"line":  a.line,
			"typed": a.typed,
		})
	cancel(&sess.typing)
	e.scheduleRemoval(sess, a)
}

// removeAnnotationLocked synchronously removes the current annotation and
// cancels its pending tasks. It returns the removed annotation.
func (e *Engine) removeAnnotationLocked(sess *Session) *annotation {
	a := e.annotation
	if a == nil {
		return nil
	}
	cancel(&sess.typing)
	cancel(&sess.removal)
	e.deleteAnnotationLine(a)
	e.annotation = nil
	return a
}

// deleteAnnotationLine deletes the annotation line if it still holds what was
// typed, leaving user-modified lines alone.
func (e *Engine) deleteAnnotationLine(a *annotation) {
	if !a.inserted {
		return
	}

	content, err := e.host.LineText(a.docID, a.line)
	if err != nil {
		e.logger.WithError(errors.Wrap(errors.ErrorTypeAnnotationIO, err, "read annotation line")).
			Warn("Checkpoint annotation could not be removed")
		return
	}

	typed := string(a.text[:a.typed])
	if (typed == "" && content != "") || !strings.Contains(content, typed) {
		e.logger.DebugWithFields("Checkpoint line was modified, leaving it in place", map[string]interface{}{
			"line": a.line,
		})
		return
	}

	if err := e.host.DeleteLine(a.docID, a.line, e.origin); err != nil {
		e.logger.WithError(errors.Wrap(errors.ErrorTypeAnnotationIO, err, "delete annotation line")).
			Warn("Checkpoint annotation could not be removed")
	}
}
