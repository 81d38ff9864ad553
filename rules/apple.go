package rules

import (
	"github.com/pkg/errors"
	"github.com/wrapsnake/engine/board"
	"golang.org/x/exp/rand"
)

// ErrNoSpace is returned when every cell of the board is covered by the
// snake. It is not fatal, the apple simply stays where it was.
var ErrNoSpace = errors.New("rules: no space left for the apple")

// PlaceApple picks a free cell for the apple. Cells in the half of the board
// the snake is heading into are preferred so that the next apple shows up
// ahead of the snake; when that half is full every free cell on the board is
// a candidate. The pick is uniform over the candidates.
func PlaceApple(rng *rand.Rand, grid board.Grid, occupied board.Occupied, heading board.Heading) (board.Point, error) {
	if p, ok := getUnoccupiedPoint(rng, grid.Half(heading), occupied); ok {
		return p, nil
	}
	if p, ok := getUnoccupiedPoint(rng, grid.Bounds(), occupied); ok {
		return p, nil
	}
	return board.Point{}, ErrNoSpace
}

func getUnoccupiedPoint(rng *rand.Rand, region board.Region, occupied board.Occupied) (board.Point, bool) {
	openPoints := getUnoccupiedPoints(region, occupied)

	if len(openPoints) == 0 {
		return board.Point{}, false
	}

	return openPoints[rng.Intn(len(openPoints))], true
}

func getUnoccupiedPoints(region board.Region, occupied board.Occupied) []board.Point {
	candidatePoints := make([]board.Point, 0, region.Area())

	for x := region.MinX; x < region.MaxX; x++ {
		for y := region.MinY; y < region.MaxY; y++ {
			p := board.Point{X: x, Y: y}
			if !occupied.Has(p) {
				candidatePoints = append(candidatePoints, p)
			}
		}
	}

	return candidatePoints
}
