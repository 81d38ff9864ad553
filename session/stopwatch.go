package session

import (
	"time"

	"github.com/wrapsnake/engine/rules"
)

// Stopwatch is the time budget of a timed session. It is restarted every
// time the snake eats.
type Stopwatch struct {
	limit   time.Duration
	started time.Time
}

// NewStopwatch starts a stopwatch with the given budget. A zero budget never
// runs out.
func NewStopwatch(limit time.Duration, now time.Time) Stopwatch {
	return Stopwatch{limit: limit, started: now}
}

// Timed reports whether the stopwatch has a budget.
func (w *Stopwatch) Timed() bool { return w.limit > 0 }

// Reset restarts the budget from now.
func (w *Stopwatch) Reset(now time.Time) { w.started = now }

// Elapsed is the time since the last reset.
func (w *Stopwatch) Elapsed(now time.Time) time.Duration { return now.Sub(w.started) }

// Remaining is max(0, limit - elapsed).
func (w *Stopwatch) Remaining(now time.Time) time.Duration {
	return rules.Remaining(w.limit, w.Elapsed(now))
}
