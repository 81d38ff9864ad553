// Package terminal is the terminal front end: it draws frames with termbox
// and decodes key presses into input commands.
package terminal

import termbox "github.com/nsf/termbox-go"

// Screen is a grid of character cells.
type Screen interface {
	Clear(fg, bg termbox.Attribute) error
	SetCell(x, y int, ch rune, fg, bg termbox.Attribute)
	Size() (width, height int)
	Flush() error
}

// Termbox returns the screen backed by the termbox terminal. termbox.Init
// must have been called.
func Termbox() Screen { return termboxScreen{} }

type termboxScreen struct{}

func (termboxScreen) Clear(fg, bg termbox.Attribute) error { return termbox.Clear(fg, bg) }

func (termboxScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	termbox.SetCell(x, y, ch, fg, bg)
}

func (termboxScreen) Size() (int, int) { return termbox.Size() }

func (termboxScreen) Flush() error { return termbox.Flush() }
