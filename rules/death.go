package rules

import "github.com/wrapsnake/engine/board"

// checkForDeath looks at the snake after it moved. Self collision is the only
// way to die and only when the settings enable it; otherwise the snake passes
// through itself.
func checkForDeath(settings Settings, s *board.Snake) string {
	if !settings.SelfCollision {
		return ""
	}
	head, ok := s.Head()
	if !ok {
		return ""
	}
	if deathByBodyCollision(head, s) {
		return DeathCauseSnakeSelfCollision
	}
	return ""
}

func deathByBodyCollision(head board.Point, s *board.Snake) bool {
	return s.Covers(head, 1)
}
