package terminal

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/rules"
)

const (
	cellWidth = 2
	left      = 2
	top       = 2
)

// Renderer draws frames onto a screen.
type Renderer struct {
	Screen Screen
	Theme  Theme
	Grid   board.Grid
	// Footer is printed under the board.
	Footer string
}

// NewRenderer returns a renderer for a board of the given size.
func NewRenderer(screen Screen, theme Theme, grid board.Grid) *Renderer {
	return &Renderer{Screen: screen, Theme: theme, Grid: grid}
}

// Render draws a frame and flushes the screen.
func (r *Renderer) Render(frame *board.Frame) error {
	if frame == nil {
		return errors.New("terminal: received nil frame")
	}
	bg := color(r.Theme.Background.Bg)
	if err := r.Screen.Clear(termbox.ColorDefault, bg); err != nil {
		return err
	}

	var (
		width  = int(r.Grid.Width) * cellWidth
		height = int(r.Grid.Height)
		text   = color(r.Theme.Text)
	)

	r.renderTitle(frame, text)
	r.renderBorder(width, height)
	r.renderBackground()
	for i, p := range frame.Snake.Body {
		g := r.Theme.Body
		if i == 0 {
			g = r.Theme.Head
		}
		r.renderCell(p, g)
	}
	r.renderCell(frame.Apple, r.Theme.Apple)
	r.renderFooter(frame, height, text)

	return r.Screen.Flush()
}

func (r *Renderer) renderTitle(frame *board.Frame, fg termbox.Attribute) {
	title := fmt.Sprintf("Snake - Score %d - Turn %d", frame.Score, frame.Turn)
	if frame.Timed {
		title = fmt.Sprintf("%s - Time %s", title, formatRemaining(frame.Remaining))
	}
	r.print(left, top-1, fg, termbox.ColorDefault, title)
}

func (r *Renderer) renderFooter(frame *board.Frame, height int, fg termbox.Attribute) {
	y := top + height + 2
	if rules.GameStatus(frame.Status) == rules.GameStatusEnded {
		r.print(left, y, fg, termbox.ColorDefault, fmt.Sprintf("Game over (%s) - final score %d", frame.Reason, frame.Score))
		y++
	}
	if r.Footer != "" {
		r.print(left, y, fg, termbox.ColorDefault, r.Footer)
	}
}

func (r *Renderer) renderBorder(width, height int) {
	fg := color(r.Theme.Border)
	bg := termbox.ColorDefault
	bottom := top + height + 1
	for y := top + 1; y < bottom; y++ {
		r.Screen.SetCell(left-1, y, '│', fg, bg)
		r.Screen.SetCell(left+width, y, '│', fg, bg)
	}

	r.Screen.SetCell(left-1, top, '┌', fg, bg)
	r.Screen.SetCell(left-1, bottom, '└', fg, bg)
	r.Screen.SetCell(left+width, top, '┐', fg, bg)
	r.Screen.SetCell(left+width, bottom, '┘', fg, bg)

	r.fill(left, top, width, 1, termbox.Cell{Ch: '─', Fg: fg, Bg: bg})
	r.fill(left, bottom, width, 1, termbox.Cell{Ch: '─', Fg: fg, Bg: bg})
}

func (r *Renderer) renderBackground() {
	g := r.Theme.Background
	for x := int32(0); x < r.Grid.Width; x++ {
		for y := int32(0); y < r.Grid.Height; y++ {
			r.renderCell(board.Point{X: x, Y: y}, g)
		}
	}
}

// renderCell draws a board cell, which is two screen columns wide.
func (r *Renderer) renderCell(p board.Point, g Glyph) {
	if !r.Grid.Contains(p) {
		return
	}
	x := left + int(p.X)*cellWidth
	y := top + 1 + int(p.Y)
	r.print(x, y, color(g.Fg), color(g.Bg), cellText(g.Text))
}

// cellText pads or truncates text to exactly one cell.
func cellText(text string) string {
	out := []rune{}
	w := 0
	for _, c := range text {
		cw := runewidth.RuneWidth(c)
		if w+cw > cellWidth {
			break
		}
		out = append(out, c)
		w += cw
	}
	for ; w < cellWidth; w++ {
		out = append(out, ' ')
	}
	return string(out)
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func (r *Renderer) fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			r.Screen.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func (r *Renderer) print(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		r.Screen.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
