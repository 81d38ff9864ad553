package board

import "github.com/pkg/errors"

// Layout describes the board in pixels. Every entity is a Unit x Unit square
// and moves Unit pixels per tick. Pixel coordinates only exist at the render
// boundary; the rules operate on cells.
type Layout struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
	Unit   int32 `json:"unit"`
}

// Validate checks that the layout describes a non-empty grid of whole cells.
func (l Layout) Validate() error {
	if l.Unit <= 0 {
		return errors.Errorf("board: grid unit must be positive, got %d", l.Unit)
	}
	if l.Width < l.Unit || l.Height < l.Unit {
		return errors.Errorf("board: %dx%d is smaller than one %d pixel cell", l.Width, l.Height, l.Unit)
	}
	if l.Width%l.Unit != 0 || l.Height%l.Unit != 0 {
		return errors.Errorf("board: %dx%d is not a multiple of the %d pixel unit", l.Width, l.Height, l.Unit)
	}
	return nil
}

// Grid returns the cell dimensions of the layout.
func (l Layout) Grid() Grid {
	if l.Unit <= 0 {
		return Grid{}
	}
	return Grid{Width: l.Width / l.Unit, Height: l.Height / l.Unit}
}

// ToPixels returns the top-left pixel of the cell.
func (l Layout) ToPixels(p Point) (x, y int32) {
	return p.X * l.Unit, p.Y * l.Unit
}

// FromPixels converts a pixel coordinate into a cell. The coordinate must be
// aligned to the grid unit and lie on the board.
func (l Layout) FromPixels(x, y int32) (Point, error) {
	if l.Unit <= 0 {
		return Point{}, errors.New("board: layout has no grid unit")
	}
	if x%l.Unit != 0 || y%l.Unit != 0 {
		return Point{}, errors.Errorf("board: pixel (%d, %d) is not aligned to %d", x, y, l.Unit)
	}
	p := Point{X: x / l.Unit, Y: y / l.Unit}
	if !l.Grid().Contains(p) {
		return Point{}, errors.Errorf("board: pixel (%d, %d) is off the board", x, y)
	}
	return p, nil
}
