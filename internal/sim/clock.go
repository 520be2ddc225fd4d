package sim

import "time"

// Clock maps a completed step count to elapsed simulation time. Plunger
// activation is driven by it.
type Clock interface {
	Elapsed(tick uint64) time.Duration
}

// StepClock derives elapsed time from the step count, so runs replay
// identically regardless of host speed.
type StepClock struct {
	Frame time.Duration
}

// Elapsed returns tick * Frame.
func (c StepClock) Elapsed(tick uint64) time.Duration {
	return time.Duration(tick) * c.Frame //#nosec G115 -- tick counts stay far below MaxInt64
}

// WallClock reports real time since it was started. Runs driven by it are
// not reproducible.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Elapsed ignores tick and returns the monotonic time since start.
func (c *WallClock) Elapsed(uint64) time.Duration {
	return time.Since(c.start)
}

// Restart resets the start time to now.
func (c *WallClock) Restart() {
	c.start = time.Now()
}
