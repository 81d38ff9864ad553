package board

import "time"

// Frame is the state of a session after a tick. Frames handed out by a
// session are copies and safe to keep.
type Frame struct {
	SessionID string        `json:"session_id"`
	Turn      int64         `json:"turn"`
	Heading   Heading       `json:"heading"`
	Snake     Snake         `json:"snake"`
	Apple     Point         `json:"apple"`
	Score     int64         `json:"score"`
	Remaining time.Duration `json:"remaining"`
	Timed     bool          `json:"timed"`
	Status    string        `json:"status"`
	Reason    string        `json:"reason,omitempty"`
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	if f == nil {
		return nil
	}
	c := *f
	c.Snake = f.Snake.Clone()
	return &c
}
