// Package session owns the state of a single game of snake: the snake, the
// apple, the score, the heading and the time budget. A session is not safe
// for concurrent use; it belongs to the loop that ticks it.
package session

import (
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/input"
	"github.com/wrapsnake/engine/rules"
	"golang.org/x/exp/rand"
)

// ErrClosed is returned when ticking a session after Close.
var ErrClosed = errors.New("session: closed")

// Option configures a new session.
type Option func(*Session)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithSeed makes apple placement reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(uint64(seed))) }
}

// WithID sets the session id instead of generating one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session is a running or finished game.
type Session struct {
	id       string
	settings rules.Settings
	rng      *rand.Rand
	clock    Clock
	watch    Stopwatch

	frame   *board.Frame
	heading board.Heading
	status  rules.GameStatus
	reason  rules.EndReason
	closed  bool
}

// New creates a running session with the snake in the middle of the board
// and the first apple placed.
func New(settings rules.Settings, opts ...Option) (*Session, error) {
	s := &Session{
		settings: settings,
		clock:    SystemClock,
		status:   rules.GameStatusRunning,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewV4().String()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	frame, err := rules.CreateInitialFrame(settings, s.rng, s.id)
	if err != nil {
		return nil, errors.Wrap(err, "session: unable to create initial frame")
	}
	s.frame = frame
	s.heading = frame.Heading
	s.watch = NewStopwatch(settings.TimeLimit, s.clock.Now())

	log.WithFields(log.Fields{
		"SessionID":     s.id,
		"Layout":        settings.Layout,
		"Boundary":      settings.Boundary,
		"SelfCollision": settings.SelfCollision,
		"TimeLimit":     settings.TimeLimit,
	}).Info("session created")
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Settings returns the rules the session was created with.
func (s *Session) Settings() rules.Settings { return s.settings }

// Heading is the heading the next tick will use.
func (s *Session) Heading() board.Heading { return s.heading }

// Status returns the current state.
func (s *Session) Status() rules.GameStatus { return s.status }

// Reason returns why the session ended, empty while it is running.
func (s *Session) Reason() rules.EndReason { return s.reason }

// Ended reports whether the session reached its terminal state.
func (s *Session) Ended() bool { return s.status == rules.GameStatusEnded }

// Frame returns a copy of the latest frame.
func (s *Session) Frame() *board.Frame { return s.frame.Clone() }

// Steer requests a heading change for the next tick. Reversing into the
// snake is ignored and reported as false. Requests are checked against the
// heading of the last move, not against an earlier request for the same
// tick, and the latest accepted request wins.
func (s *Session) Steer(h board.Heading) bool {
	if s.Ended() {
		return false
	}
	next, ok := rules.Turn(s.frame.Heading, h)
	if ok {
		s.heading = next
	}
	return ok
}

// Apply handles a decoded player command. Unknown commands are ignored.
func (s *Session) Apply(cmd input.Command) {
	if cmd == input.Quit {
		s.Quit()
		return
	}
	if h, ok := cmd.Heading(); ok {
		s.Steer(h)
	}
}

// Tick advances the session by one step. Ticking an ended session returns
// the final frame unchanged.
func (s *Session) Tick() (*board.Frame, rules.Outcome, error) {
	if s.closed {
		return nil, rules.Outcome{}, ErrClosed
	}
	if s.Ended() {
		return s.frame.Clone(), rules.Outcome{}, nil
	}

	now := s.clock.Now()
	next, out, err := rules.GameTick(s.settings, s.rng, s.frame, s.heading)
	if err != nil {
		return nil, out, err
	}
	if out.Ate {
		s.watch.Reset(now)
	}
	next.Remaining = s.watch.Remaining(now)
	s.frame = next

	if reason, over := rules.CheckForGameOver(next, out); over {
		s.end(reason)
	}
	return s.frame.Clone(), out, nil
}

// Quit ends a running session.
func (s *Session) Quit() {
	if s.Ended() {
		return
	}
	s.end(rules.EndReasonQuit)
}

// Close tears the session down. A running session is ended as if the player
// quit. Close is safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.Quit()
	s.closed = true
}

func (s *Session) end(reason rules.EndReason) {
	s.status = rules.GameStatusEnded
	s.reason = reason
	s.frame.Status = string(s.status)
	s.frame.Reason = string(reason)

	log.WithFields(log.Fields{
		"SessionID": s.id,
		"Turn":      s.frame.Turn,
		"Score":     s.frame.Score,
		"Reason":    reason,
	}).Info("session ended")
}
