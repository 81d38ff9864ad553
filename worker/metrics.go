package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wrapsnake/engine/rules"
)

var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "ticks_total",
			Help:      "Ticks played across all sessions.",
		},
	)
	applesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "apples_total",
			Help:      "Apples eaten across all sessions.",
		},
	)
	noSpaceTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "no_space_total",
			Help:      "Apples that could not be placed because the board was full.",
		},
	)
	sessionsEnded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "sessions_ended_total",
			Help:      "Sessions ended, by reason.",
		},
		[]string{"reason"},
	)
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "snake",
			Subsystem: "worker",
			Name:      "tick_duration_seconds",
			Help:      "Time spent computing a tick.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
)

func init() {
	prometheus.MustRegister(ticksTotal, applesTotal, noSpaceTotal, sessionsEnded, tickDuration)
}

func observeTick(out rules.Outcome, took time.Duration) {
	ticksTotal.Inc()
	tickDuration.Observe(took.Seconds())
	if out.Ate {
		applesTotal.Inc()
	}
	if out.NoSpace {
		noSpaceTotal.Inc()
	}
}

func observeEnd(reason rules.EndReason) {
	sessionsEnded.WithLabelValues(string(reason)).Inc()
}
