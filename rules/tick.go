package rules

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wrapsnake/engine/board"
	"golang.org/x/exp/rand"
)

// Outcome describes what happened during a tick.
type Outcome struct {
	Ate     bool
	Blocked bool
	NoSpace bool
	Death   string
}

// CreateInitialFrame builds turn 0 of a session: a one segment snake in the
// middle of the board and an apple placed ahead of it.
func CreateInitialFrame(settings Settings, rng *rand.Rand, sessionID string) (*board.Frame, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	grid := settings.Grid()
	snake := board.NewSnake(grid.Center())
	frame := &board.Frame{
		SessionID: sessionID,
		Heading:   settings.StartHeading,
		Snake:     snake,
		Apple:     grid.Center(),
		Remaining: settings.TimeLimit,
		Timed:     settings.TimeLimit > 0,
		Status:    string(GameStatusRunning),
	}
	apple, err := PlaceApple(rng, grid, snake.Occupied(), settings.StartHeading)
	if err != nil {
		log.WithField("SessionID", sessionID).
			WithError(err).
			Warn("unable to place first apple")
		return frame, nil
	}
	frame.Apple = apple
	return frame, nil
}

// GameTick runs the session one tick and returns the next frame. The last
// frame is not modified.
func GameTick(settings Settings, rng *rand.Rand, lastFrame *board.Frame, heading board.Heading) (*board.Frame, Outcome, error) {
	var out Outcome
	if lastFrame == nil {
		return nil, out, errors.New("rules: invalid state, previous frame is nil")
	}
	head, ok := lastFrame.Snake.Head()
	if !ok {
		return nil, out, errors.New("rules: invalid state, snake has no body")
	}
	if !heading.Valid() {
		heading = lastFrame.Heading
	}

	nextFrame := lastFrame.Clone()
	nextFrame.Turn = lastFrame.Turn + 1

	// The frame heading is the heading of the last move, a blocked move
	// keeps the previous one.
	grid := settings.Grid()
	newHead, ok := NextHead(grid, head, heading, settings.Boundary)
	if !ok {
		out.Blocked = true
		log.WithFields(log.Fields{
			"SessionID": lastFrame.SessionID,
			"Turn":      nextFrame.Turn,
			"Heading":   heading,
		}).Debug("move blocked by wall")
		return nextFrame, out, nil
	}
	nextFrame.Heading = heading

	// 1. move the head, the tail follows unless the apple is eaten
	out.Ate = newHead.Equal(lastFrame.Apple)
	nextFrame.Snake.Push(newHead)
	if !out.Ate {
		nextFrame.Snake.DropTail()
	}

	// 2. check for death
	out.Death = checkForDeath(settings, &nextFrame.Snake)

	// 3. score and replace the eaten apple
	if out.Ate {
		nextFrame.Score++
		log.WithFields(log.Fields{
			"SessionID": lastFrame.SessionID,
			"Turn":      nextFrame.Turn,
			"Apple":     lastFrame.Apple,
			"Score":     nextFrame.Score,
		}).Info("snake ate")

		apple, err := PlaceApple(rng, grid, nextFrame.Snake.Occupied(), heading)
		if err != nil {
			out.NoSpace = true
			log.WithFields(log.Fields{
				"SessionID": lastFrame.SessionID,
				"Turn":      nextFrame.Turn,
			}).WithError(err).Warn("apple not moved")
		} else {
			nextFrame.Apple = apple
		}
	}
	return nextFrame, out, nil
}
