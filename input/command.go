// Package input holds the closed set of player commands. Front ends decode
// their own key events into a Command once, at the boundary, so the session
// never sees framework specific key codes.
package input

import "github.com/wrapsnake/engine/board"

// Command is a decoded player action.
type Command int

// Commands. None is what every unmapped key decodes to and is ignored.
// Restart only means something once a session has ended, a running session
// ignores it.
const (
	None Command = iota
	Up
	Down
	Left
	Right
	Quit
	Restart
)

// Heading returns the heading a directional command asks for.
func (c Command) Heading() (board.Heading, bool) {
	switch c {
	case Up:
		return board.Up, true
	case Down:
		return board.Down, true
	case Left:
		return board.Left, true
	case Right:
		return board.Right, true
	}
	return 0, false
}

func (c Command) String() string {
	switch c {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Quit:
		return "quit"
	case Restart:
		return "restart"
	}
	return "none"
}
