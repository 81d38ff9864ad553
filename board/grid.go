package board

// Grid is a fixed-size board measured in cells. Points outside of
// [0,Width) x [0,Height) are off the board.
type Grid struct {
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// Region is a half-open rectangle of cells: MinX <= x < MaxX and
// MinY <= y < MaxY.
type Region struct {
	MinX, MaxX int32
	MinY, MaxY int32
}

// Contains checks if the point lies inside the region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Area is the number of cells in the region.
func (r Region) Area() int {
	if r.MaxX <= r.MinX || r.MaxY <= r.MinY {
		return 0
	}
	return int(r.MaxX-r.MinX) * int(r.MaxY-r.MinY)
}

// Bounds returns the region covering the whole grid.
func (g Grid) Bounds() Region {
	return Region{MaxX: g.Width, MaxY: g.Height}
}

// Cells is the total number of cells on the grid.
func (g Grid) Cells() int {
	return g.Bounds().Area()
}

// Contains checks if the point is on the board.
func (g Grid) Contains(p Point) bool {
	return g.Bounds().Contains(p)
}

// Wrap maps any point back onto the board so that leaving one edge enters
// from the opposite one.
func (g Grid) Wrap(p Point) Point {
	return Point{X: wrap(p.X, g.Width), Y: wrap(p.Y, g.Height)}
}

// Go's % keeps the sign of the dividend, so negative results are shifted
// back into [0,size).
func wrap(v, size int32) int32 {
	if size <= 0 {
		return 0
	}
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// Half returns the half of the board that the heading points into. The
// split is at Width/2 (or Height/2) so odd sizes give the extra column or
// row to the right (or bottom) half.
func (g Grid) Half(h Heading) Region {
	r := g.Bounds()
	switch h {
	case Right:
		r.MinX = g.Width / 2
	case Left:
		r.MaxX = g.Width / 2
	case Down:
		r.MinY = g.Height / 2
	case Up:
		r.MaxY = g.Height / 2
	}
	return r
}

// Center is the cell in the middle of the board, rounding down.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}
