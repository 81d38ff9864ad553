package controller

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/rules"
)

var (
	// ErrNotFound is returned when a session is not found.
	ErrNotFound = errors.New("controller: session not found")
	// ErrExists is returned when a session id is already recorded.
	ErrExists = errors.New("controller: session already exists")
	// ErrEnded is returned when pushing a frame to an ended session.
	ErrEnded = errors.New("controller: session has ended")
)

// Summary describes a recorded session without its frames.
type Summary struct {
	ID       string           `json:"id"`
	Settings rules.Settings   `json:"settings"`
	Status   rules.GameStatus `json:"status"`
	Reason   rules.EndReason  `json:"reason,omitempty"`
	Turn     int64            `json:"turn"`
	Score    int64            `json:"score"`
	Frames   int              `json:"frames"`
	Created  time.Time        `json:"created"`
	Updated  time.Time        `json:"updated"`
}

// Ended reports whether the summarised session is over.
func (s *Summary) Ended() bool { return s.Status == rules.GameStatusEnded }

// Store records sessions and their frames so they can be watched while they
// are played. Nothing is kept across restarts.
type Store interface {
	// CreateSession records a new session starting at the given frame.
	CreateSession(ctx context.Context, settings rules.Settings, first *board.Frame) error
	// PushFrame appends a frame. A frame for the same turn as the latest one
	// replaces it, which is how a session quit between two ticks records its
	// final status. A frame with an ended status closes the session for
	// further writes.
	PushFrame(ctx context.Context, id string, f *board.Frame) error
	// ListFrames returns up to limit frames starting at offset. A negative
	// offset counts back from the latest frame.
	ListFrames(ctx context.Context, id string, limit, offset int) ([]*board.Frame, error)
	// GetSession returns the summary of a session.
	GetSession(ctx context.Context, id string) (*Summary, error)
	// ListSessions returns all retained sessions, oldest first.
	ListSessions(ctx context.Context) ([]*Summary, error)
}

// InMemStore returns an in memory implementation of the Store interface.
// Once more than retain sessions are recorded the oldest ended sessions are
// evicted. Running sessions are never evicted. A retain below 1 keeps
// everything.
func InMemStore(retain int) Store {
	return &inmem{
		retain:   retain,
		sessions: map[string]*record{},
		now:      time.Now,
	}
}

type record struct {
	summary Summary
	frames  []*board.Frame
}

type inmem struct {
	retain   int
	sessions map[string]*record
	order    []string
	now      func() time.Time
	lock     sync.Mutex
}

func (in *inmem) CreateSession(ctx context.Context, settings rules.Settings, first *board.Frame) error {
	if first == nil || first.SessionID == "" {
		return errors.New("controller: first frame must carry a session id")
	}

	in.lock.Lock()
	defer in.lock.Unlock()

	if _, ok := in.sessions[first.SessionID]; ok {
		return ErrExists
	}
	t := in.now()
	r := &record{
		summary: Summary{
			ID:       first.SessionID,
			Settings: settings,
			Status:   rules.GameStatusRunning,
			Created:  t,
		},
	}
	r.push(first.Clone(), t)
	in.sessions[first.SessionID] = r
	in.order = append(in.order, first.SessionID)
	in.evict()
	return nil
}

func (in *inmem) PushFrame(ctx context.Context, id string, f *board.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	r, err := in.require(id)
	if err != nil {
		return err
	}
	if r.summary.Ended() {
		return ErrEnded
	}
	r.push(f.Clone(), in.now())
	if r.summary.Ended() {
		in.evict()
	}
	return nil
}

func (in *inmem) ListFrames(ctx context.Context, id string, limit, offset int) ([]*board.Frame, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	r, err := in.require(id)
	if err != nil {
		return nil, err
	}
	frames := r.frames

	if offset < 0 {
		offset = len(frames) + offset
		if offset < 0 {
			offset = 0
		}
	}
	if len(frames) == 0 || offset >= len(frames) || limit <= 0 {
		return nil, nil
	}
	if offset+limit >= len(frames) {
		limit = len(frames) - offset
	}

	out := make([]*board.Frame, 0, limit)
	for _, f := range frames[offset : offset+limit] {
		out = append(out, f.Clone())
	}
	return out, nil
}

func (in *inmem) GetSession(ctx context.Context, id string) (*Summary, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	r, err := in.require(id)
	if err != nil {
		return nil, err
	}
	s := r.summary
	return &s, nil
}

func (in *inmem) ListSessions(ctx context.Context) ([]*Summary, error) {
	in.lock.Lock()
	defer in.lock.Unlock()

	out := make([]*Summary, 0, len(in.order))
	for _, id := range in.order {
		s := in.sessions[id].summary
		out = append(out, &s)
	}
	return out, nil
}

func (in *inmem) require(id string) (*record, error) {
	r, ok := in.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// evict drops the oldest ended sessions while over the retention limit.
func (in *inmem) evict() {
	if in.retain < 1 {
		return
	}
	for i := 0; len(in.order) > in.retain && i < len(in.order); {
		id := in.order[i]
		if !in.sessions[id].summary.Ended() {
			i++
			continue
		}
		delete(in.sessions, id)
		in.order = append(in.order[:i], in.order[i+1:]...)
	}
}

func (r *record) push(f *board.Frame, t time.Time) {
	if n := len(r.frames); n > 0 && r.frames[n-1].Turn == f.Turn {
		r.frames[n-1] = f
	} else {
		r.frames = append(r.frames, f)
	}
	r.summary.Turn = f.Turn
	r.summary.Score = f.Score
	r.summary.Frames = len(r.frames)
	r.summary.Updated = t
	if rules.GameStatus(f.Status) == rules.GameStatusEnded {
		r.summary.Status = rules.GameStatusEnded
		r.summary.Reason = rules.EndReason(f.Reason)
	}
}
