package scroller

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"autoscroll/pkg/clock"
	"autoscroll/pkg/editor"
	"autoscroll/pkg/errors"
	"autoscroll/pkg/logger"
)

// Typing delay bounds between annotation characters
const (
	MinTypingDelay = 30 * time.Millisecond
	MaxTypingDelay = 80 * time.Millisecond
)

// Options configures an Engine. Only Host is required.
type Options struct {
	Host editor.Host
	// Settings is read on every start and restart
	Settings func() Settings
	Clock    clock.Clock
	Logger   logger.Logger
	// TypingDelay returns the pause before each annotation character
	TypingDelay func() time.Duration
	// CommentToken returns the line-comment token of a document
	CommentToken func(doc editor.DocumentInfo) string
}

// Status is a snapshot of the engine state
type Status struct {
	Active        bool
	Paused        bool
	Mode          Mode
	Direction     Direction
	CurrentLine   int
	StartLine     int
	ScrolledLines int
	Cycles        int
	Annotating    bool
}

// Engine scrolls the focused document of a host
type Engine struct {
	mu sync.Mutex

	host         editor.Host
	settings     func() Settings
	clock        clock.Clock
	logger       logger.Logger
	typingDelay  func() time.Duration
	commentToken func(doc editor.DocumentInfo) string

	// origin tags every edit the engine makes
	origin string

	session    *Session
	annotation *annotation
	listeners  []editor.Disposable

	// lastMode is the mode of the most recent start, reported while idle
	lastMode Mode
}

// New creates an idle engine
func New(opts Options) *Engine {
	e := &Engine{
		host:         opts.Host,
		settings:     opts.Settings,
		clock:        opts.Clock,
		logger:       opts.Logger,
		typingDelay:  opts.TypingDelay,
		commentToken: opts.CommentToken,
		origin:       "autoscroll-" + uuid.NewString(),
		lastMode:     DefaultSettings().Mode,
	}
	if e.settings == nil {
		e.settings = DefaultSettings
	}
	if e.clock == nil {
		e.clock = clock.New()
	}
	if e.logger == nil {
		e.logger = logger.GetLogger()
	}
	if e.typingDelay == nil {
		e.typingDelay = randomTypingDelay
	}
	if e.commentToken == nil {
		e.commentToken = func(doc editor.DocumentInfo) string {
			return editor.CommentToken(doc.Name, nil)
		}
	}
	return e
}

func randomTypingDelay() time.Duration {
	return MinTypingDelay + rand.N(MaxTypingDelay-MinTypingDelay)
}

// Origin returns the token attached to the engine's own edits
func (e *Engine) Origin() string {
	return e.origin
}

// Start begins scrolling the focused document from its caret line. A running
// session is replaced. Without a focused document it returns an error
// matching errors.ErrNoActiveDocument and leaves nothing running.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked()
}

// Stop ends the session and cancels every pending task. It is safe to call
// when nothing is running.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

// Restart stops the session and starts a new one with fresh settings
func (e *Engine) Restart() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.restartLocked()
}

// Pause suspends scrolling as if the user had interacted with the document
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.pauseLocked(e.session)
	}
}

// Active reports whether a session is running
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

// Status returns a snapshot of the engine state
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.session
	if sess == nil {
		return Status{Mode: e.lastMode}
	}
	return Status{
		Active:        true,
		Paused:        sess.Paused,
		Mode:          sess.settings.Mode,
		Direction:     sess.Direction,
		CurrentLine:   sess.CurrentLine,
		StartLine:     sess.StartLine,
		ScrolledLines: sess.ScrolledLines,
		Cycles:        sess.Cycles,
		Annotating:    e.annotation != nil,
	}
}

func (e *Engine) startLocked() error {
	e.stopLocked()

	doc, ok := e.host.ActiveDocument()
	if !ok {
		e.logger.Warn("Auto-scroll needs a focused document")
		return errors.New(errors.ErrorTypeNoActiveDocument, "open a document before starting auto-scroll")
	}

	settings := e.settings().normalized()
	e.lastMode = settings.Mode
	line := clamp(doc.Caret.Line, 0, doc.LineCount-1)
	sess := &Session{
		CurrentLine: line,
		StartLine:   line,
		Direction:   Down,
		settings:    settings,
	}
	e.session = sess
	e.listeners = []editor.Disposable{
		e.host.OnTextChange(func(change editor.TextChange) { e.onTextChange(sess, change) }),
		e.host.OnSelectionChange(func(change editor.SelectionChange) { e.onSelectionChange(sess, change) }),
	}
	e.scheduleTick(sess)

	e.logger.InfoWithFields("Auto-scroll started", map[string]interface{}{
		"document":   doc.Name,
		"line":       line,
		"mode":       settings.Mode.String(),
		"delay_ms":   settings.Delay.Milliseconds(),
		"step":       settings.Step,
		"max_lines":  settings.MaxLines,
		"checkpoint": settings.Checkpoint.Enabled,
	})
	return nil
}

func (e *Engine) stopLocked() {
	sess := e.session
	if sess == nil {
		return
	}

	sess.cancelTasks()
	e.removeAnnotationLocked(sess)
	for _, d := range e.listeners {
		d.Dispose()
	}
	e.listeners = nil
	sess.Paused = false
	e.session = nil

	e.logger.InfoWithFields("Auto-scroll stopped", map[string]interface{}{
		"line":   sess.CurrentLine,
		"cycles": sess.Cycles,
	})
}

func (e *Engine) restartLocked() error {
	e.stopLocked()
	return e.startLocked()
}

// schedule arms fn on slot after d, replacing whatever the slot held. fn runs
// under the engine lock and only while slot still holds this timer within the
// same session.
func (e *Engine) schedule(sess *Session, slot *clock.Timer, d time.Duration, fn func()) {
	cancel(slot)

	var t clock.Timer
	t = e.clock.AfterFunc(d, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.session != sess || *slot != t {
			return
		}
		*slot = nil
		fn()
	})
	*slot = t
}

func (e *Engine) scheduleTick(sess *Session) {
	e.schedule(sess, &sess.tick, sess.settings.Delay, func() {
		e.scheduleTick(sess)
		e.step(sess)
	})
}

// step performs one tick of the session
func (e *Engine) step(sess *Session) {
	if sess.Paused {
		return
	}

	doc, ok := e.host.ActiveDocument()
	if !ok {
		return
	}
	maxLine := doc.LineCount - 1
	if maxLine < 0 {
		return
	}

	s := sess.settings
	sess.CycleCompleted = false

	if s.MaxLines > 0 && sess.ScrolledLines >= s.MaxLines {
		if s.AutoSwitch {
			e.nextDocument()
			sess.CurrentLine = 0
		} else {
			sess.CurrentLine = sess.StartLine
		}
		sess.ScrolledLines = 0
		sess.Direction = Down
		e.logger.DebugWithFields("Line budget reached", map[string]interface{}{
			"budget":      s.MaxLines,
			"auto_switch": s.AutoSwitch,
		})
		return
	}

	sess.CurrentLine, sess.Direction, sess.CycleCompleted = advance(
		s.Mode, clamp(sess.CurrentLine, 0, maxLine), sess.Direction, s.Step, maxLine)
	sess.ScrolledLines += s.Step

	if sess.CycleCompleted {
		sess.Cycles++
		if s.AutoSwitch && s.MaxLines == 0 {
			e.nextDocument()
			sess.CurrentLine = 0
			sess.Direction = Down
			sess.ScrolledLines = 0
			return
		}
	}

	if s.Checkpoint.Enabled {
		sess.stepsSinceCheckpoint += s.Step
		if sess.stepsSinceCheckpoint >= s.Checkpoint.Frequency {
			sess.stepsSinceCheckpoint = 0
			e.insertAnnotationLocked(sess, doc, sess.CurrentLine)
		}
	}

	e.reveal(doc.ID, sess.CurrentLine)
}

// advance computes the next line for one step
func advance(mode Mode, line int, dir Direction, step, maxLine int) (int, Direction, bool) {
	cycle := false

	switch mode {
	case ModeDownOnly:
		if line >= maxLine {
			line = 0
			cycle = true
		} else {
			line += step
		}
		dir = Down
	case ModeUpOnly:
		if line <= 0 {
			line = maxLine
			cycle = true
		} else {
			line -= step
		}
		dir = Up
	default:
		if dir == Down {
			line += step
			if line >= maxLine {
				line = maxLine
				dir = Up
			}
		} else {
			line -= step
			if line <= 0 {
				line = 0
				dir = Down
				cycle = true
			}
		}
	}

	return clamp(line, 0, maxLine), dir, cycle
}

func (e *Engine) reveal(docID string, line int) {
	if err := e.host.SetCaret(docID, editor.Position{Line: line}, editor.CauseProgrammatic); err != nil {
		e.logger.WithError(err).Debug("Failed to move caret")
	}
	if err := e.host.RevealLine(docID, line); err != nil {
		e.logger.WithError(err).Debug("Failed to reveal line")
	}
}

func (e *Engine) nextDocument() {
	if err := e.host.NextDocument(); err != nil {
		e.logger.WithError(err).Warn("Failed to switch document")
		return
	}
	e.logger.Debug("Switched to next document")
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
