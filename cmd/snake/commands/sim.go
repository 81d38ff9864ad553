package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wrapsnake/engine/config"
	"github.com/wrapsnake/engine/rules"
	"github.com/wrapsnake/engine/session"
	"github.com/wrapsnake/engine/worker"
	"golang.org/x/time/rate"
)

var (
	simFlags    = newSettingsFlags(config.TimeLimit)
	simSessions = 10
	simMaxTurns = config.MaxTurns
	simTPS      = float64(config.TickRate)
)

func init() {
	simFlags.register(simCmd.Flags())
	simCmd.Flags().IntVarP(&simSessions, "sessions", "n", simSessions, "number of sessions to play")
	simCmd.Flags().IntVar(&simMaxTurns, "max-turns", simMaxTurns, "quit a session after this many turns, 0 for no limit")
	simCmd.Flags().Float64Var(&simTPS, "tps", simTPS, "simulated ticks per second, sets how much time passes per tick")
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "plays autopilot sessions headless on a simulated clock",
	RunE: func(c *cobra.Command, args []string) error {
		settings, err := simFlags.settings()
		if err != nil {
			return err
		}
		results, err := runSim(context.Background(), settings, simFlags, simSessions, int64(simMaxTurns), rate.Limit(simTPS))
		if err != nil {
			return err
		}
		return printSim(c.OutOrStdout(), results)
	},
}

type simResult struct {
	ID     string
	Turns  int64
	Score  int64
	Length int
	Reason string
}

// runSim plays sessions one after another as fast as possible. Each tick
// advances the session clock by one tick interval so timers behave as they
// would at the given rate.
func runSim(ctx context.Context, settings rules.Settings, flags *settingsFlags, n int, maxTurns int64, tps rate.Limit) ([]simResult, error) {
	if n < 1 {
		return nil, errors.New("at least one session is required")
	}
	interval := config.TickInterval(tps)
	if settings.TimeLimit > 0 && interval == 0 {
		return nil, errors.New("a timed simulation needs a finite tick rate")
	}
	if settings.TimeLimit == 0 && maxTurns == 0 {
		return nil, errors.New("an untimed simulation needs a turn limit")
	}

	results := make([]simResult, 0, n)
	for i := 0; i < n; i++ {
		opts := append(flags.options(int64(i)), session.WithClock(session.NewSteppedClock(time.Unix(0, 0), interval)))
		s, err := session.New(settings, opts...)
		if err != nil {
			return results, err
		}

		r := &worker.Runner{
			Session:  s,
			Pilot:    rules.Greedy{},
			MaxTurns: maxTurns,
		}
		frame, err := r.Run(ctx)
		s.Close()
		if err != nil {
			return results, err
		}

		res := simResult{
			ID:     s.ID(),
			Turns:  frame.Turn,
			Score:  frame.Score,
			Length: frame.Snake.Len(),
			Reason: frame.Reason,
		}
		log.WithFields(log.Fields{
			"SessionID": res.ID,
			"Turn":      res.Turns,
			"Score":     res.Score,
			"Reason":    res.Reason,
		}).Debug("simulated session")
		results = append(results, res)
	}
	return results, nil
}

func printSim(w io.Writer, results []simResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tTURNS\tSCORE\tLENGTH\tREASON")
	var total int64
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", r.ID, r.Turns, r.Score, r.Length, r.Reason)
		total += r.Score
	}
	if len(results) > 0 {
		fmt.Fprintf(tw, "\t\tavg %.2f\t\t\n", float64(total)/float64(len(results)))
	}
	return tw.Flush()
}
