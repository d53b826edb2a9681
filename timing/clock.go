package timing

import "time"

// Clock is the time source used by a Recorder. Instants returned by Now must
// carry a monotonic reading (or be synthetic) so that Sub is immune to wall
// clock adjustments.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock. time.Now includes the monotonic reading.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock is a manually driven Clock for deterministic tests.
type FakeClock struct {
	now time.Time
}

// NewFakeClock returns a FakeClock positioned at start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set positions the clock at t.
func (c *FakeClock) Set(t time.Time) {
	c.now = t
}
