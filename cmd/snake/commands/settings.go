package commands

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/config"
	"github.com/wrapsnake/engine/rules"
	"github.com/wrapsnake/engine/session"
)

// settingsFlags are the session rules shared by the commands that create
// sessions.
type settingsFlags struct {
	width         int
	height        int
	unit          int
	boundary      string
	heading       string
	selfCollision bool
	timeLimit     time.Duration
	seed          int64
}

func newSettingsFlags(timeLimit time.Duration) *settingsFlags {
	return &settingsFlags{
		width:         config.BoardWidth,
		height:        config.BoardHeight,
		unit:          config.GridUnit,
		boundary:      config.Boundary,
		heading:       config.Heading,
		selfCollision: config.SelfCollision,
		timeLimit:     timeLimit,
	}
}

func (f *settingsFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&f.width, "width", f.width, "board width in pixels")
	fs.IntVar(&f.height, "height", f.height, "board height in pixels")
	fs.IntVar(&f.unit, "unit", f.unit, "size of a cell in pixels")
	fs.StringVar(&f.boundary, "boundary", f.boundary, "what happens at the edge: wrap or wall")
	fs.StringVar(&f.heading, "heading", f.heading, "starting heading")
	fs.BoolVar(&f.selfCollision, "self-collision", f.selfCollision, "end the game when the snake runs into itself")
	fs.DurationVar(&f.timeLimit, "time-limit", f.timeLimit, "time to reach the next apple, 0 disables the timer")
	fs.Int64Var(&f.seed, "seed", f.seed, "seed for apple placement, 0 picks a random seed")
}

func (f *settingsFlags) settings() (rules.Settings, error) {
	boundary, err := rules.ParseBoundary(f.boundary)
	if err != nil {
		return rules.Settings{}, err
	}
	heading, err := board.ParseHeading(f.heading)
	if err != nil {
		return rules.Settings{}, err
	}
	width, err := flagInt32("width", f.width)
	if err != nil {
		return rules.Settings{}, err
	}
	height, err := flagInt32("height", f.height)
	if err != nil {
		return rules.Settings{}, err
	}
	unit, err := flagInt32("unit", f.unit)
	if err != nil {
		return rules.Settings{}, err
	}
	s := rules.Settings{
		Layout: board.Layout{
			Width:  width,
			Height: height,
			Unit:   unit,
		},
		Boundary:      boundary,
		SelfCollision: f.selfCollision,
		TimeLimit:     f.timeLimit,
		StartHeading:  heading,
	}
	return s, s.Validate()
}

func flagInt32(name string, v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errors.Errorf("--%s %d is out of range", name, v)
	}
	return int32(v), nil
}

// options returns the session options for the n-th session created from
// these flags. A fixed seed gives every session its own reproducible seed.
func (f *settingsFlags) options(n int64) []session.Option {
	if f.seed == 0 {
		return nil
	}
	return []session.Option{session.WithSeed(f.seed + n)}
}
