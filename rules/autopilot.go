package rules

import "github.com/wrapsnake/engine/board"

// Pilot steers a session that has no player attached.
type Pilot interface {
	Next(settings Settings, frame *board.Frame) board.Heading
}

// Greedy heads for the apple along the shortest route, never reverses and
// avoids cells covered by the body when another move is available. It keeps
// its current heading on ties.
type Greedy struct{}

// Next implements Pilot.
func (Greedy) Next(settings Settings, frame *board.Frame) board.Heading {
	current := frame.Heading
	head, ok := frame.Snake.Head()
	if !ok {
		return current
	}
	grid := settings.Grid()

	best := board.Heading(0)
	bestDist := int32(-1)
	for _, h := range candidateHeadings(current) {
		next, ok := NextHead(grid, head, h, settings.Boundary)
		if !ok || blocksSnake(&frame.Snake, next) {
			continue
		}
		d := distance(grid, settings.Boundary, next, frame.Apple)
		if bestDist < 0 || d < bestDist {
			best, bestDist = h, d
		}
	}
	if best == 0 {
		return current
	}
	return best
}

// candidateHeadings lists the current heading first, then the two turns.
func candidateHeadings(current board.Heading) []board.Heading {
	hs := []board.Heading{}
	if current.Valid() {
		hs = append(hs, current)
	}
	for _, h := range []board.Heading{board.Up, board.Down, board.Left, board.Right} {
		if h == current || (current.Valid() && h == current.Reverse()) {
			continue
		}
		hs = append(hs, h)
	}
	return hs
}

// blocksSnake ignores the tail, it moves out of the way on the same tick.
func blocksSnake(s *board.Snake, p board.Point) bool {
	n := s.Len()
	for i := 1; i < n-1; i++ {
		if s.Body[i].Equal(p) {
			return true
		}
	}
	return false
}

func distance(grid board.Grid, boundary Boundary, a, b board.Point) int32 {
	return axisDistance(a.X, b.X, grid.Width, boundary) + axisDistance(a.Y, b.Y, grid.Height, boundary)
}

func axisDistance(a, b, size int32, boundary Boundary) int32 {
	d := a - b
	if d < 0 {
		d = -d
	}
	if boundary == BoundaryWrap && size-d < d {
		return size - d
	}
	return d
}
