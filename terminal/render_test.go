package terminal

import (
	"strings"
	"testing"
	"time"

	termbox "github.com/nsf/termbox-go"
	"github.com/stretchr/testify/require"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/rules"
)

type cell struct {
	ch     rune
	fg, bg termbox.Attribute
}

type fakeScreen struct {
	cells   map[[2]int]cell
	flushed int
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{cells: map[[2]int]cell{}}
}

func (s *fakeScreen) Clear(fg, bg termbox.Attribute) error {
	s.cells = map[[2]int]cell{}
	return nil
}

func (s *fakeScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	s.cells[[2]int{x, y}] = cell{ch: ch, fg: fg, bg: bg}
}

func (s *fakeScreen) Size() (int, int) { return 120, 40 }

func (s *fakeScreen) Flush() error {
	s.flushed++
	return nil
}

func (s *fakeScreen) row(y int) string {
	b := strings.Builder{}
	for x := 0; x < 120; x++ {
		c, ok := s.cells[[2]int{x, y}]
		if !ok || c.ch == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.ch)
	}
	return b.String()
}

func (s *fakeScreen) at(p board.Point) cell {
	return s.cells[[2]int{left + int(p.X)*cellWidth, top + 1 + int(p.Y)}]
}

func testFrame() *board.Frame {
	return &board.Frame{
		Turn:    7,
		Heading: board.Right,
		Snake: board.Snake{Body: []board.Point{
			{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2},
		}},
		Apple:  board.Point{X: 8, Y: 4},
		Score:  2,
		Status: string(rules.GameStatusRunning),
	}
}

func TestRender(t *testing.T) {
	screen := newFakeScreen()
	r := NewRenderer(screen, DefaultTheme(), board.Grid{Width: 10, Height: 6})

	require.NoError(t, r.Render(testFrame()))
	require.Equal(t, 1, screen.flushed)

	require.Contains(t, screen.row(top-1), "Score 2")
	require.Contains(t, screen.row(top-1), "Turn 7")
	require.NotContains(t, screen.row(top-1), "Time")

	require.Equal(t, termbox.ColorYellow, screen.at(board.Point{X: 3, Y: 2}).bg)
	require.Equal(t, termbox.ColorGreen, screen.at(board.Point{X: 2, Y: 2}).bg)
	require.Equal(t, termbox.ColorGreen, screen.at(board.Point{X: 1, Y: 2}).bg)

	apple := screen.at(board.Point{X: 8, Y: 4})
	require.Equal(t, '(', apple.ch)
	require.Equal(t, termbox.ColorRed, apple.fg)

	// Corners of the border.
	require.Equal(t, '┌', screen.cells[[2]int{left - 1, top}].ch)
	require.Equal(t, '┘', screen.cells[[2]int{left + 20, top + 7}].ch)
}

func TestRender_Timer(t *testing.T) {
	screen := newFakeScreen()
	r := NewRenderer(screen, DefaultTheme(), board.Grid{Width: 10, Height: 6})

	f := testFrame()
	f.Timed = true
	f.Remaining = 2500 * time.Millisecond
	require.NoError(t, r.Render(f))
	require.Contains(t, screen.row(top-1), "Time 2.5s")
}

func TestRender_Ended(t *testing.T) {
	screen := newFakeScreen()
	r := NewRenderer(screen, DefaultTheme(), board.Grid{Width: 10, Height: 6})
	r.Footer = "press any key"

	f := testFrame()
	f.Status = string(rules.GameStatusEnded)
	f.Reason = string(rules.EndReasonTimeout)
	require.NoError(t, r.Render(f))
	require.Contains(t, screen.row(top+8), "Game over (timeout)")
	require.Contains(t, screen.row(top+9), "press any key")
}

func TestRender_NilFrame(t *testing.T) {
	r := NewRenderer(newFakeScreen(), DefaultTheme(), board.Grid{Width: 10, Height: 6})
	require.Error(t, r.Render(nil))
}

func TestCellText(t *testing.T) {
	require.Equal(t, "  ", cellText(""))
	require.Equal(t, "x ", cellText("x"))
	require.Equal(t, "ab", cellText("abc"))
}
