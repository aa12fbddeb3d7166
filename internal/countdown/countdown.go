package countdown

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Severity classifies how much time is left, for display styling.
type Severity string

const (
	SeverityNormal  Severity = "normal"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Remaining-time thresholds for severity escalation.
const (
	warningThreshold = 15 * time.Minute
	dangerThreshold  = 5 * time.Minute
)

var ErrAlreadyStarted = errors.New("countdown already started")

// Countdown is a one-shot exam timer. Start arms it once; reaching zero
// invokes the expiry callback exactly once. Stop disarms it and is
// idempotent. Remaining time is derived from the deadline, so reads are
// cheap and never drift from the wall clock.
type Countdown struct {
	mu       sync.Mutex
	duration time.Duration
	expireFn func()
	now      func() time.Time

	started  bool
	stopped  bool
	deadline time.Time
	timer    *time.Timer
}

// New creates an unstarted countdown. onExpire may be nil.
func New(duration time.Duration, onExpire func()) *Countdown {
	return &Countdown{
		duration: duration,
		expireFn: onExpire,
		now:      time.Now,
	}
}

// Start arms the countdown. Calling it again is a no-op and returns
// ErrAlreadyStarted.
func (c *Countdown) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return ErrAlreadyStarted
	}

	c.started = true
	c.deadline = c.now().Add(c.duration)
	c.timer = time.AfterFunc(c.duration, c.fire)
	return nil
}

// Stop disarms the countdown. Safe to call multiple times and safe to call
// on a countdown that already expired.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.stopped {
		return
	}
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
	}
}

// fire runs on the timer goroutine when the deadline passes. The stopped
// flag guarantees the expiry callback cannot run after Stop and cannot run
// twice.
func (c *Countdown) fire() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	fn := c.expireFn
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Remaining returns the whole seconds left, never negative. Before Start it
// reports the full duration.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return int(c.duration / time.Second)
	}
	left := c.deadline.Sub(c.now())
	if left <= 0 {
		return 0
	}
	// Round up so the display doesn't show 00:00 while time remains.
	return int((left + time.Second - 1) / time.Second)
}

// Display formats the remaining time as MM:SS. Minutes may exceed 59 for
// long exams.
func (c *Countdown) Display() string {
	r := c.Remaining()
	return fmt.Sprintf("%02d:%02d", r/60, r%60)
}

// SeverityLevel maps the remaining time to a display severity.
func (c *Countdown) SeverityLevel() Severity {
	r := time.Duration(c.Remaining()) * time.Second
	switch {
	case r <= dangerThreshold:
		return SeverityDanger
	case r <= warningThreshold:
		return SeverityWarning
	default:
		return SeverityNormal
	}
}

// Deadline returns the zero time before Start.
func (c *Countdown) Deadline() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deadline
}
