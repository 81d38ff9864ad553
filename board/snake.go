package board

// Snake is an ordered run of cells, head first and tail last.
type Snake struct {
	Body []Point `json:"body"`
}

// NewSnake returns a snake with a single segment at start.
func NewSnake(start Point) Snake {
	return Snake{Body: []Point{start}}
}

// Head returns the first point in the body
func (s *Snake) Head() (Point, bool) {
	if len(s.Body) == 0 {
		return Point{}, false
	}
	return s.Body[0], true
}

// Tail returns the last point in the body
func (s *Snake) Tail() (Point, bool) {
	if len(s.Body) == 0 {
		return Point{}, false
	}
	return s.Body[len(s.Body)-1], true
}

// Len is the number of segments.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Push inserts a new head. Push does not remove the tail, that is done with
// DropTail after checking whether the snake ate.
func (s *Snake) Push(head Point) {
	s.Body = append(s.Body, Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = head
}

// DropTail removes the last segment. A single segment snake is never emptied.
func (s *Snake) DropTail() {
	if len(s.Body) <= 1 {
		return
	}
	s.Body = s.Body[:len(s.Body)-1]
}

// Covers checks if any segment starting at index from sits on p.
func (s *Snake) Covers(p Point, from int) bool {
	for i := from; i < len(s.Body); i++ {
		if s.Body[i].Equal(p) {
			return true
		}
	}
	return false
}

// Occupied returns the set of cells covered by the body.
func (s *Snake) Occupied() Occupied {
	o := make(Occupied, len(s.Body))
	for _, p := range s.Body {
		o.Add(p)
	}
	return o
}

// Clone returns a deep copy of the snake.
func (s Snake) Clone() Snake {
	body := make([]Point, len(s.Body))
	copy(body, s.Body)
	return Snake{Body: body}
}
