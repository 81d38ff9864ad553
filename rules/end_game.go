package rules

import (
	"time"

	"github.com/wrapsnake/engine/board"
)

// CheckForGameOver checks if the session has ended after a tick. A snake
// that died ends the session, as does a timed session with no time left.
func CheckForGameOver(frame *board.Frame, out Outcome) (EndReason, bool) {
	if out.Death != "" {
		return EndReason(out.Death), true
	}
	if frame.Timed && frame.Remaining <= 0 {
		return EndReasonTimeout, true
	}
	return "", false
}

// Remaining is the time budget left, never negative. A zero limit means the
// session is not timed.
func Remaining(limit, elapsed time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	if elapsed >= limit {
		return 0
	}
	return limit - elapsed
}
