package rules

import "github.com/wrapsnake/engine/board"

// Turn applies a requested heading change. A request for the exact reverse
// of the current heading is rejected and the current heading is kept, as is
// any request that is not a heading at all.
func Turn(current, requested board.Heading) (board.Heading, bool) {
	if !requested.Valid() {
		return current, false
	}
	if current.Valid() && requested == current.Reverse() {
		return current, false
	}
	return requested, true
}

// NextHead computes where the head lands after one step. The second result
// is false when the move is refused by a wall.
func NextHead(grid board.Grid, head board.Point, heading board.Heading, boundary Boundary) (board.Point, bool) {
	next := head.Add(heading.Delta())
	if boundary == BoundaryWall {
		if !grid.Contains(next) {
			return head, false
		}
		return next, true
	}
	return grid.Wrap(next), true
}
