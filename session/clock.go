package session

import (
	"sync"
	"time"
)

// Clock tells the session what time it is. A session reads the clock once
// when it is created and once per tick.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// SteppedClock moves forward by a fixed step every time it is read. Headless
// runs use it so that a timed session ends after a known number of ticks
// instead of after a wall clock delay.
type SteppedClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewSteppedClock returns a clock whose first reading is start.
func NewSteppedClock(start time.Time, step time.Duration) *SteppedClock {
	return &SteppedClock{now: start, step: step}
}

// Now implements Clock.
func (c *SteppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Add moves the clock forward.
func (c *ManualClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
