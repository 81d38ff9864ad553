package rules

const (
	// DeathCauseSnakeSelfCollision is the death reason when the head lands on
	// the snake's own body
	DeathCauseSnakeSelfCollision = "self-collision"
)
