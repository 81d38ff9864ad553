package board

// Occupied is a set of cells that are not available for the apple.
type Occupied map[Point]struct{}

// Add marks p as occupied.
func (o Occupied) Add(p Point) { o[p] = struct{}{} }

// Has checks if p is occupied.
func (o Occupied) Has(p Point) bool {
	_, ok := o[p]
	return ok
}
