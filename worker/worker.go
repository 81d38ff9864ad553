// Package worker drives sessions. A Runner plays one session to completion,
// pacing ticks and handing frames to a renderer and the controller store. A
// Worker keeps playing autopilot sessions into the store for spectators.
package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wrapsnake/engine/controller"
	"github.com/wrapsnake/engine/rules"
	"github.com/wrapsnake/engine/session"
	"golang.org/x/time/rate"
)

// Worker plays autopilot sessions one after another and records them in the
// store.
type Worker struct {
	started int64 // atomic, first for alignment

	Store        controller.Store
	Settings     rules.Settings
	Pilot        rules.Pilot
	TickRate     rate.Limit
	MaxTurns     int64
	PollInterval time.Duration
	// Seed makes apple placement reproducible when set. Sessions get
	// consecutive seeds in the order they start.
	Seed int64
}

// Run will run the worker in a loop until the context is cancelled.
func (w *Worker) Run(ctx context.Context, workerID int) {
	for {
		if err := w.run(ctx, workerID); err != nil && errors.Cause(err) != context.Canceled {
			log.WithError(err).
				WithField("Worker", workerID).
				Error("run failed")
		}

		select {
		case <-time.After(w.PollInterval):
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) run(ctx context.Context, workerID int) error {
	if w.Store == nil {
		return errors.New("worker: no store")
	}
	var opts []session.Option
	n := atomic.AddInt64(&w.started, 1) - 1
	if w.Seed != 0 {
		opts = append(opts, session.WithSeed(w.Seed+n))
	}
	s, err := session.New(w.Settings, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	pilot := w.Pilot
	if pilot == nil {
		pilot = rules.Greedy{}
	}
	r := &Runner{
		Session:  s,
		Pilot:    pilot,
		Limiter:  NewLimiter(w.TickRate),
		Store:    w.Store,
		MaxTurns: w.MaxTurns,
	}

	log.WithFields(log.Fields{
		"Worker":    workerID,
		"SessionID": s.ID(),
	}).Info("playing session")

	frame, err := r.Run(ctx)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"Worker":    workerID,
		"SessionID": s.ID(),
		"Turn":      frame.Turn,
		"Score":     frame.Score,
		"Reason":    frame.Reason,
	}).Info("session finished")
	return nil
}
