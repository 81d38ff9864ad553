package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wrapsnake/engine/api"
	"github.com/wrapsnake/engine/config"
	"github.com/wrapsnake/engine/controller"
	"github.com/wrapsnake/engine/rules"
	"github.com/wrapsnake/engine/worker"
	"golang.org/x/time/rate"
)

var (
	serveFlags         = newSettingsFlags(config.ServeTimeLimit)
	apiListen          = ":3005"
	workerThreads      = config.Workers
	workerPollInterval = config.PollInterval
	serveTPS           = float64(config.TickRate)
	serveMaxTurns      = config.MaxTurns
	retainSessions     = config.RetainSessions
	serveQR            = false
)

func init() {
	serveFlags.register(serveCmd.Flags())
	serveCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	serveCmd.Flags().IntVarP(&workerThreads, "threads", "t", workerThreads, "worker threads, this is the amount of concurrent sessions played")
	serveCmd.Flags().DurationVarP(&workerPollInterval, "poll-interval", "p", workerPollInterval, "pause between sessions on a worker")
	serveCmd.Flags().Float64Var(&serveTPS, "tps", serveTPS, "ticks per second")
	serveCmd.Flags().IntVar(&serveMaxTurns, "max-turns", serveMaxTurns, "quit a session after this many turns, 0 for no limit")
	serveCmd.Flags().IntVar(&retainSessions, "retain", retainSessions, "finished sessions kept in memory")
	serveCmd.Flags().BoolVar(&serveQR, "qr", serveQR, "print a qr code of the spectator address")
	serveCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	serveCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
}

var serveCmd = &cobra.Command{
	Use:    "serve",
	Short:  "plays autopilot sessions and serves them to spectators",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	RunE: func(c *cobra.Command, args []string) error {
		settings, err := serveFlags.settings()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			log.Info("shutting down")
			cancel()
		}()

		store := controller.InstrumentStore(controller.InMemStore(retainSessions))
		srv := api.New(apiListen, store)
		go srv.WaitForExit()
		if serveQR {
			if err := printQR(c.OutOrStdout(), spectatorURL(apiListen)); err != nil {
				log.WithError(err).Warn("unable to print qr code")
			}
		}

		runWorkers(ctx, &worker.Worker{
			Store:        store,
			Settings:     settings,
			Pilot:        rules.Greedy{},
			TickRate:     rate.Limit(serveTPS),
			MaxTurns:     int64(serveMaxTurns),
			PollInterval: workerPollInterval,
			Seed:         serveFlags.seed,
		}, workerThreads)

		shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return srv.Shutdown(shutdown)
	},
}

func runWorkers(ctx context.Context, w *worker.Worker, threads int) {
	wg := &sync.WaitGroup{}
	wg.Add(threads)

	for i := 0; i < threads; i++ {
		go func(i int) {
			log.WithField("worker", i).Info("snake worker starting")
			w.Run(ctx, i)
			wg.Done()
		}(i)
	}
	wg.Wait()
}
