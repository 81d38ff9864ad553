package board

import (
	"strings"

	"github.com/pkg/errors"
)

// Heading is the direction the snake travels, one cell per tick.
type Heading int

// Headings. The zero value is not a valid heading.
const (
	Up Heading = iota + 1
	Down
	Left
	Right
)

var headingNames = map[Heading]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

// ParseHeading converts the text form of a heading ("up", "down", "left",
// "right") into a Heading.
func ParseHeading(s string) (Heading, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for h, n := range headingNames {
		if n == name {
			return h, nil
		}
	}
	return 0, errors.Errorf("board: unknown heading %q", s)
}

// Valid reports whether h is one of the four headings.
func (h Heading) Valid() bool {
	_, ok := headingNames[h]
	return ok
}

// Delta is the unit displacement of the heading in cells. Rows grow
// downwards.
func (h Heading) Delta() Point {
	switch h {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	return Point{}
}

// Reverse returns the opposite heading.
func (h Heading) Reverse() Heading {
	switch h {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return h
}

func (h Heading) String() string {
	if n, ok := headingNames[h]; ok {
		return n
	}
	return "none"
}

// MarshalText implements encoding.TextMarshaler.
func (h Heading) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
