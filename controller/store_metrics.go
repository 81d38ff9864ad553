package controller

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/rules"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "store",
			Name:      "calls",
			Help:      "Calls processed by the store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return t.ObserveDuration
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) CreateSession(c context.Context, settings rules.Settings, first *board.Frame) error {
	defer instrument("CreateSession")()
	return m.s.CreateSession(c, settings, first)
}

func (m *metrics) PushFrame(c context.Context, id string, f *board.Frame) error {
	defer instrument("PushFrame")()
	return m.s.PushFrame(c, id, f)
}

func (m *metrics) ListFrames(c context.Context, id string, limit, offset int) ([]*board.Frame, error) {
	defer instrument("ListFrames")()
	return m.s.ListFrames(c, id, limit, offset)
}

func (m *metrics) GetSession(c context.Context, id string) (*Summary, error) {
	defer instrument("GetSession")()
	return m.s.GetSession(c, id)
}

func (m *metrics) ListSessions(c context.Context) ([]*Summary, error) {
	defer instrument("ListSessions")()
	return m.s.ListSessions(c)
}
