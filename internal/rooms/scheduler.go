package rooms

import (
	"time"
)

// DebounceDelay is the settle window between a membership-changing
// transition and its recount. The transport may still report a
// just-closed connection as a member during teardown; recounting after
// a short fixed delay avoids broadcasting an off-by-one count.
const DebounceDelay = 50 * time.Millisecond

// Task is one pending scheduled broadcast.
type Task struct {
	timer *time.Timer
}

// Cancel stops the task if it has not fired yet and reports whether it
// was stopped. Pending tasks are cheap and idempotent, so callers are
// not required to cancel them.
func (t *Task) Cancel() bool {
	return t.timer.Stop()
}

// Scheduler runs functions after a fixed delay.
type Scheduler struct {
	delay time.Duration
}

func NewScheduler(delay time.Duration) *Scheduler {
	return &Scheduler{delay: delay}
}

// After schedules fn to run once the delay elapses.
func (s *Scheduler) After(fn func()) *Task {
	return &Task{timer: time.AfterFunc(s.delay, fn)}
}
