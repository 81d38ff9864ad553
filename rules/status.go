package rules

// GameStatus is the state of a session. Running is the only non-terminal
// state.
type GameStatus string

const (
	// GameStatusRunning represents a running session
	GameStatusRunning GameStatus = "running"
	// GameStatusEnded represents a session that is done
	GameStatusEnded GameStatus = "ended"
)

// EndReason explains why a session moved to GameStatusEnded.
type EndReason string

const (
	// EndReasonTimeout is set when the time budget ran out.
	EndReasonTimeout EndReason = "timeout"
	// EndReasonQuit is set when the player or the owner of the session quit.
	EndReasonQuit EndReason = "quit"
	// EndReasonSelfCollision is set when the snake ran into itself and self
	// collision is enabled.
	EndReasonSelfCollision EndReason = EndReason(DeathCauseSnakeSelfCollision)
)
