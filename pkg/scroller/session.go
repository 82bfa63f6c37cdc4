package scroller

import "autoscroll/pkg/clock"

// Session is the state of one active scrolling run
type Session struct {
	// CurrentLine is the line revealed by the last tick
	CurrentLine int
	// StartLine is where the session began, used when the line budget resets
	StartLine     int
	Direction     Direction
	ScrolledLines int
	Paused        bool
	// CycleCompleted is set on the tick that finished a cycle
	CycleCompleted bool
	Cycles         int

	settings             Settings
	stepsSinceCheckpoint int

	tick    clock.Timer
	idle    clock.Timer
	typing  clock.Timer
	removal clock.Timer
}

// cancelTasks stops every scheduled task of the session
func (s *Session) cancelTasks() {
	for _, slot := range []*clock.Timer{&s.tick, &s.idle, &s.typing, &s.removal} {
		cancel(slot)
	}
}

func cancel(slot *clock.Timer) {
	if *slot != nil {
		(*slot).Stop()
		*slot = nil
	}
}
