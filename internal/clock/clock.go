// Package clock provides the discrete frame counter that drives wave animation.
package clock

import "fmt"

// DefaultCeiling is the highest frame number before the counter wraps.
const DefaultCeiling = 100000

// State reports whether the next tick advances or wraps the counter.
type State int

const (
	Running State = iota
	WrapPending
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case WrapPending:
		return "wrap-pending"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Clock counts frames from 0 up to its ceiling, then restarts at 0.
// It is not wall-clock time.
type Clock struct {
	frame   int
	ceiling int
}

// New returns a clock at frame 0.
func New(ceiling int) *Clock {
	if ceiling < 1 {
		panic(fmt.Sprintf("clock: ceiling must be positive, got %d", ceiling))
	}
	return &Clock{ceiling: ceiling}
}

// Tick advances the clock and returns the new frame.
func (c *Clock) Tick() int {
	if c.frame < c.ceiling {
		c.frame++
	} else {
		c.frame = 0
	}
	return c.frame
}

// Frame returns the current frame.
func (c *Clock) Frame() int {
	return c.frame
}

// Ceiling returns the wrap point.
func (c *Clock) Ceiling() int {
	return c.ceiling
}

// State returns Running or WrapPending.
func (c *Clock) State() State {
	if c.frame >= c.ceiling {
		return WrapPending
	}
	return Running
}

// Reset returns the clock to frame 0.
func (c *Clock) Reset() {
	c.frame = 0
}
