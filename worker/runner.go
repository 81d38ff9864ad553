package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/controller"
	"github.com/wrapsnake/engine/input"
	"github.com/wrapsnake/engine/rules"
	"github.com/wrapsnake/engine/session"
	"golang.org/x/time/rate"
)

// Renderer draws frames as they are produced.
type Renderer interface {
	Render(f *board.Frame) error
}

// Runner plays an individual session to completion. Every loop drains the
// pending player commands, asks the pilot for a heading, ticks the session
// and hands the frame to the renderer and the store.
type Runner struct {
	Session *session.Session

	// Input carries decoded player commands. Optional.
	Input <-chan input.Command
	// Pilot steers when set. Player commands are applied first.
	Pilot rules.Pilot
	// Limiter paces the ticks. A nil limiter ticks as fast as possible.
	Limiter *rate.Limiter
	// Renderer and Store are both optional.
	Renderer Renderer
	Store    controller.Store
	// MaxTurns quits the session once reached. Zero means no limit.
	MaxTurns int64
}

// NewLimiter returns a limiter that allows one tick at a time at r ticks
// per second.
func NewLimiter(r rate.Limit) *rate.Limiter {
	return rate.NewLimiter(r, 1)
}

// Run blocks until the session ends or the context is cancelled and returns
// the last frame. A cancelled context quits the session.
func (r *Runner) Run(ctx context.Context) (*board.Frame, error) {
	s := r.Session
	if s == nil {
		return nil, errors.New("worker: runner has no session")
	}
	id := s.ID()

	frame := s.Frame()
	if r.Store != nil {
		if err := r.Store.CreateSession(ctx, s.Settings(), frame); err != nil {
			return nil, errors.Wrap(err, "worker: unable to record session")
		}
	}
	if err := r.render(frame); err != nil {
		return frame, err
	}

	for {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx); err != nil {
				return r.stop(err)
			}
		}
		select {
		case <-ctx.Done():
			return r.stop(ctx.Err())
		default:
		}

		r.drainInput()
		if s.Ended() {
			frame = s.Frame()
			observeEnd(s.Reason())
			return frame, r.emit(ctx, frame)
		}

		if r.Pilot != nil {
			s.Steer(r.Pilot.Next(s.Settings(), s.Frame()))
		}

		start := time.Now()
		next, out, err := s.Tick()
		if err != nil {
			log.WithError(err).
				WithField("SessionID", id).
				Error("ending session due to fatal error")
			return frame, err
		}
		observeTick(out, time.Since(start))
		frame = next

		if !s.Ended() && r.MaxTurns > 0 && frame.Turn >= r.MaxTurns {
			log.WithFields(log.Fields{
				"SessionID": id,
				"Turn":      frame.Turn,
			}).Info("turn limit reached")
			s.Quit()
			frame = s.Frame()
		}

		if err := r.emit(ctx, frame); err != nil {
			return frame, err
		}
		if s.Ended() {
			observeEnd(s.Reason())
			return frame, nil
		}
	}
}

// drainInput applies every command already waiting without blocking.
func (r *Runner) drainInput() {
	for r.Input != nil {
		select {
		case cmd, ok := <-r.Input:
			if !ok {
				r.Input = nil
				return
			}
			r.Session.Apply(cmd)
		default:
			return
		}
	}
}

// stop quits the session after the loop was interrupted and records the
// final frame. The store write is not tied to the cancelled context.
func (r *Runner) stop(cause error) (*board.Frame, error) {
	r.Session.Quit()
	frame := r.Session.Frame()
	observeEnd(r.Session.Reason())
	if err := r.emit(context.Background(), frame); err != nil {
		log.WithError(err).
			WithField("SessionID", r.Session.ID()).
			Warn("unable to record final frame")
	}
	return frame, cause
}

func (r *Runner) emit(ctx context.Context, f *board.Frame) error {
	if err := r.render(f); err != nil {
		return err
	}
	if r.Store == nil {
		return nil
	}
	if err := r.Store.PushFrame(ctx, f.SessionID, f); err != nil {
		return errors.Wrap(err, "worker: unable to record frame")
	}
	return nil
}

func (r *Runner) render(f *board.Frame) error {
	if r.Renderer == nil {
		return nil
	}
	return errors.Wrap(r.Renderer.Render(f), "worker: render failed")
}
