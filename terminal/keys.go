package terminal

import (
	termbox "github.com/nsf/termbox-go"
	"github.com/wrapsnake/engine/input"
)

var keys = map[termbox.Key]input.Command{
	termbox.KeyArrowUp:    input.Up,
	termbox.KeyArrowDown:  input.Down,
	termbox.KeyArrowLeft:  input.Left,
	termbox.KeyArrowRight: input.Right,
	termbox.KeyEsc:        input.Quit,
	termbox.KeyCtrlC:      input.Quit,
	termbox.KeySpace:      input.Restart,
}

var chars = map[rune]input.Command{
	'w': input.Up,
	's': input.Down,
	'a': input.Left,
	'd': input.Right,
	'q': input.Quit,
	'r': input.Restart,
}

// Decode turns a termbox event into a command. Everything that is not a
// known key decodes to input.None.
func Decode(ev termbox.Event) input.Command {
	if ev.Type != termbox.EventKey {
		return input.None
	}
	if ev.Ch != 0 {
		return chars[ev.Ch]
	}
	return keys[ev.Key]
}

// PollCommands feeds decoded key presses into a channel until stop is
// closed. Unknown keys are dropped. termbox.Interrupt unblocks the poll.
func PollCommands(stop <-chan struct{}) <-chan input.Command {
	out := make(chan input.Command, 8)
	go func() {
		defer close(out)
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt || ev.Type == termbox.EventError {
				return
			}
			cmd := Decode(ev)
			if cmd == input.None {
				continue
			}
			select {
			case out <- cmd:
			case <-stop:
				return
			}
		}
	}()
	return out
}
