package commands

import (
	"sync"

	"github.com/wrapsnake/engine/board"
)

// frameHolder collects frames arriving from a socket while they are being
// replayed. The first frame is also handed out on a channel so the replay
// can start as soon as it arrives.
type frameHolder struct {
	sync.RWMutex
	frames []*board.Frame
	ffc    chan *board.Frame
	once   sync.Once
}

func (fh *frameHolder) init() {
	fh.once.Do(func() { fh.ffc = make(chan *board.Frame, 1) })
}

func (fh *frameHolder) append(frame *board.Frame) {
	fh.init()
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		fh.ffc <- frame
		close(fh.ffc)
	}
	fh.frames = append(fh.frames, frame)
}

func (fh *frameHolder) get(index int) *board.Frame {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}
	return fh.frames[index]
}

func (fh *frameHolder) initialFrame() <-chan *board.Frame {
	fh.init()
	return fh.ffc
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}
