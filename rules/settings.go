package rules

import (
	"time"

	"github.com/pkg/errors"
	"github.com/wrapsnake/engine/board"
)

// Boundary decides what happens when the snake reaches the edge of the board.
type Boundary string

const (
	// BoundaryWrap re-enters the board from the opposite edge.
	BoundaryWrap Boundary = "wrap"
	// BoundaryWall refuses the move; the snake waits at the edge until it is
	// steered away.
	BoundaryWall Boundary = "wall"
)

// ParseBoundary converts a flag value into a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch b := Boundary(s); b {
	case BoundaryWrap, BoundaryWall:
		return b, nil
	}
	return "", errors.Errorf("rules: unknown boundary %q, expected wrap or wall", s)
}

// Settings are the rules of a session. They do not change once the session
// has started.
type Settings struct {
	Layout        board.Layout  `json:"layout"`
	Boundary      Boundary      `json:"boundary"`
	SelfCollision bool          `json:"self_collision"`
	TimeLimit     time.Duration `json:"time_limit"`
	StartHeading  board.Heading `json:"start_heading"`
}

// DefaultSettings is an 800x500 board with a 20 pixel unit, wraparound
// edges, no self collision and no time limit.
func DefaultSettings() Settings {
	return Settings{
		Layout:       board.Layout{Width: 800, Height: 500, Unit: 20},
		Boundary:     BoundaryWrap,
		StartHeading: board.Right,
	}
}

// Grid returns the board in cells.
func (s Settings) Grid() board.Grid {
	return s.Layout.Grid()
}

// Validate checks the settings can be used to create a session.
func (s Settings) Validate() error {
	if err := s.Layout.Validate(); err != nil {
		return err
	}
	if _, err := ParseBoundary(string(s.Boundary)); err != nil {
		return err
	}
	if !s.StartHeading.Valid() {
		return errors.New("rules: start heading is not set")
	}
	if s.TimeLimit < 0 {
		return errors.Errorf("rules: negative time limit %v", s.TimeLimit)
	}
	return nil
}
