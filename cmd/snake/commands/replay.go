package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/config"
	"github.com/wrapsnake/engine/controller"
	"github.com/wrapsnake/engine/terminal"
)

var replaySpeed = 200 * time.Millisecond

func init() {
	replayCmd.Flags().StringVarP(&sessionID, "session-id", "s", "", "the id of the session to replay")
	replayCmd.Flags().StringVar(&apiAddr, "api-addr", apiAddr, "address of the api server")
	replayCmd.Flags().DurationVar(&replaySpeed, "speed", replaySpeed, "time between frames")
	replayCmd.Flags().StringVar(&themeFile, "theme", themeFile, "JSON theme file")
	replayCmd.Flags().StringVar(&logFile, "log-file", logFile, "write logs to this file, logs are discarded otherwise")
}

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "replays a session from a snake server",
	Args: func(c *cobra.Command, args []string) error {
		if len(sessionID) == 0 {
			return errors.New("session id is required")
		}
		return nil
	},
	RunE: func(*cobra.Command, []string) error {
		return replaySession()
	},
}

// moveFrameForwards returns the next frame, or nil when it has not arrived.
func moveFrameForwards(frameIndex int, frames *frameHolder) (int, *board.Frame) {
	if frameIndex+1 >= frames.count() {
		return frameIndex, nil
	}
	return frameIndex + 1, frames.get(frameIndex + 1)
}

func moveFrameBackwards(frameIndex int, frames *frameHolder) (int, *board.Frame) {
	frameIndex--
	if frameIndex <= 0 {
		frameIndex = 0
	}
	return frameIndex, frames.get(frameIndex)
}

func socketURL(addr, id string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(addr, "http://"), "https://")
	scheme := "ws"
	if strings.HasPrefix(addr, "https://") {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: host, Path: fmt.Sprintf("/socket/%s", id)}
	return u.String()
}

// loadSession fetches the session summary and starts collecting its frames.
// The returned channel is closed once the server closes the stream.
func loadSession(addr, id string) (*controller.Summary, *frameHolder, <-chan struct{}, error) {
	sr, err := getStatus(addr, id)
	if err != nil {
		return nil, nil, nil, err
	}

	u := socketURL(addr, id)
	log.WithField("url", u).Info("connecting")
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "dial")
	}

	frames := &frameHolder{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if err := c.Close(); err != nil {
				log.WithError(err).Warn("failure to close websocket connection")
			}
		}()

		for {
			mt, message, err := c.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.WithError(err).Warn("read")
				}
				return
			}

			switch mt {
			case websocket.TextMessage:
				frame := &board.Frame{}
				if err := json.Unmarshal(message, frame); err != nil {
					log.WithError(err).Warn("unmarshal frame")
					return
				}
				frames.append(frame)
			default:
				log.WithField("type", mt).Warn("unhandled message type")
			}
		}
	}()

	return sr.Session, frames, done, nil
}

func replaySession() error {
	closeLog, err := redirectLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	summary, frames, _, err := loadSession(apiAddr, sessionID)
	if err != nil {
		return err
	}

	var currentFrame *board.Frame
	select {
	case currentFrame = <-frames.initialFrame():
	case <-time.After(config.PollInterval + time.Second):
		return errors.New("unable to find initial frame for session")
	}

	if err = termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to start terminal")
	}
	defer termbox.Close()

	renderer := terminal.NewRenderer(terminal.Termbox(), terminal.LoadTheme(themeFile), summary.Settings.Grid())
	renderer.Footer = "space to pause, arrows to step, esc to exit"

	eventQueue := setupEventQueue()
	cycle := time.NewTicker(replaySpeed)
	defer cycle.Stop()
	frameIndex := 0
	paused := false

	for {
		select {
		case ev := <-eventQueue:
			if ev.Type != termbox.EventKey {
				continue
			}
			switch ev.Key {
			case termbox.KeyEsc, termbox.KeyCtrlC:
				return nil
			case termbox.KeySpace:
				paused = !paused
			case termbox.KeyArrowLeft:
				paused = true
				frameIndex, currentFrame = moveFrameBackwards(frameIndex, frames)
				if err = renderer.Render(currentFrame); err != nil {
					return err
				}
			case termbox.KeyArrowRight:
				paused = true
				if next, f := moveFrameForwards(frameIndex, frames); f != nil {
					frameIndex, currentFrame = next, f
				}
				if err = renderer.Render(currentFrame); err != nil {
					return err
				}
			}
		case <-cycle.C:
			if paused {
				continue
			}
			if err = renderer.Render(currentFrame); err != nil {
				return err
			}
			// Frames of a live session keep arriving, hold the last one
			// until the next shows up.
			if next, f := moveFrameForwards(frameIndex, frames); f != nil {
				frameIndex, currentFrame = next, f
			}
		}
	}
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
