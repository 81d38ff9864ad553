package commands

import (
	"context"
	"io/ioutil"
	"os"

	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wrapsnake/engine/config"
	"github.com/wrapsnake/engine/input"
	"github.com/wrapsnake/engine/rules"
	"github.com/wrapsnake/engine/session"
	"github.com/wrapsnake/engine/terminal"
	"github.com/wrapsnake/engine/worker"
	"golang.org/x/time/rate"
)

var (
	playFlags = newSettingsFlags(config.TimeLimit)
	playTPS   = float64(config.TickRate)
	themeFile = config.ThemeFile
	logFile   string
)

func init() {
	playFlags.register(playCmd.Flags())
	playCmd.Flags().Float64Var(&playTPS, "tps", playTPS, "ticks per second")
	playCmd.Flags().StringVar(&themeFile, "theme", themeFile, "JSON theme file")
	playCmd.Flags().StringVar(&logFile, "log-file", logFile, "write logs to this file, logs are discarded otherwise")
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play snake in the terminal",
	RunE: func(c *cobra.Command, args []string) error {
		return play()
	},
}

const (
	playFooter     = "arrows or wasd to steer, esc or q to quit"
	gameOverFooter = "space or r to play again, esc or q to exit"
)

func play() error {
	settings, err := playFlags.settings()
	if err != nil {
		return err
	}
	if playTPS <= 0 {
		return errors.New("tps must be positive")
	}

	closeLog, err := redirectLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	if err = termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to start terminal")
	}
	defer termbox.Close()

	stop := make(chan struct{})
	commands := terminal.PollCommands(stop)
	defer func() {
		close(stop)
		termbox.Interrupt()
	}()

	renderer := terminal.NewRenderer(terminal.Termbox(), terminal.LoadTheme(themeFile), settings.Grid())
	return playSessions(context.Background(), settings, playFlags.options, commands,
		worker.NewLimiter(rate.Limit(playTPS)), renderer)
}

// playSessions plays one session after another until the player quits. A
// session that ends on its own stays on screen until the player restarts or
// quits, a restart tears it down and starts a fresh one.
func playSessions(
	ctx context.Context,
	settings rules.Settings,
	options func(n int64) []session.Option,
	commands <-chan input.Command,
	limiter *rate.Limiter,
	renderer *terminal.Renderer,
) error {
	for n := int64(0); ; n++ {
		s, err := session.New(settings, options(n)...)
		if err != nil {
			return err
		}

		renderer.Footer = playFooter
		r := &worker.Runner{
			Session:  s,
			Input:    commands,
			Limiter:  limiter,
			Renderer: renderer,
		}
		frame, err := r.Run(ctx)
		s.Close()
		if err != nil {
			return err
		}
		if frame.Reason == string(rules.EndReasonQuit) {
			return nil
		}

		renderer.Footer = gameOverFooter
		if err := renderer.Render(frame); err != nil {
			return err
		}
		if !waitForRestart(commands) {
			return nil
		}
		log.WithFields(log.Fields{
			"SessionID": s.ID(),
			"Score":     frame.Score,
		}).Info("restarting")
	}
}

// waitForRestart blocks until the player restarts or quits. Steering keys
// are ignored.
func waitForRestart(commands <-chan input.Command) bool {
	for cmd := range commands {
		switch cmd {
		case input.Restart:
			return true
		case input.Quit:
			return false
		}
	}
	return false
}

// redirectLog keeps log lines off the terminal while it is drawn on.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.SetOutput(ioutil.Discard)
		return func() { log.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open log file")
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
