package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrid_WrapClosure(t *testing.T) {
	g := Grid{Width: 40, Height: 25}
	for x := int32(0); x < g.Width; x++ {
		for y := int32(0); y < g.Height; y++ {
			for _, h := range []Heading{Up, Down, Left, Right} {
				p := g.Wrap(Point{X: x, Y: y}.Add(h.Delta()))
				require.True(t, g.Contains(p), "%v + %s wrapped to %v", Point{X: x, Y: y}, h, p)
			}
		}
	}
}

func TestGrid_Wrap(t *testing.T) {
	g := Grid{Width: 40, Height: 25}
	tests := []struct {
		In       Point
		Expected Point
	}{
		{In: Point{X: 40, Y: 5}, Expected: Point{X: 0, Y: 5}},
		{In: Point{X: -1, Y: 5}, Expected: Point{X: 39, Y: 5}},
		{In: Point{X: 3, Y: 25}, Expected: Point{X: 3, Y: 0}},
		{In: Point{X: 3, Y: -1}, Expected: Point{X: 3, Y: 24}},
		{In: Point{X: -81, Y: -51}, Expected: Point{X: 39, Y: 24}},
		{In: Point{X: 12, Y: 7}, Expected: Point{X: 12, Y: 7}},
	}
	for _, test := range tests {
		require.Equal(t, test.Expected, g.Wrap(test.In), "In: %v", test.In)
	}
}

func TestGrid_Half(t *testing.T) {
	g := Grid{Width: 40, Height: 25}
	tests := []struct {
		Heading  Heading
		Expected Region
	}{
		{Heading: Right, Expected: Region{MinX: 20, MaxX: 40, MinY: 0, MaxY: 25}},
		{Heading: Left, Expected: Region{MinX: 0, MaxX: 20, MinY: 0, MaxY: 25}},
		{Heading: Down, Expected: Region{MinX: 0, MaxX: 40, MinY: 12, MaxY: 25}},
		{Heading: Up, Expected: Region{MinX: 0, MaxX: 40, MinY: 0, MaxY: 12}},
	}
	for _, test := range tests {
		require.Equal(t, test.Expected, g.Half(test.Heading), "Heading: %s", test.Heading)
	}
	require.Equal(t, g.Cells(), g.Half(Up).Area()+g.Half(Down).Area())
	require.Equal(t, g.Cells(), g.Half(Left).Area()+g.Half(Right).Area())
}

func TestGrid_Center(t *testing.T) {
	g := Layout{Width: 800, Height: 500, Unit: 20}.Grid()
	require.Equal(t, Point{X: 20, Y: 12}, g.Center())
}
