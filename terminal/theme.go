package terminal

import (
	"encoding/json"
	"io/ioutil"
	"strings"

	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Glyph is how one board cell is drawn. Text is padded or cut to the two
// columns a cell takes on screen.
type Glyph struct {
	Text string `json:"text"`
	Fg   string `json:"fg"`
	Bg   string `json:"bg"`
}

// Theme describes the look of the board.
type Theme struct {
	Head       Glyph  `json:"head"`
	Body       Glyph  `json:"body"`
	Apple      Glyph  `json:"apple"`
	Background Glyph  `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
}

// DefaultTheme is used when no theme file is given or it cannot be read.
func DefaultTheme() Theme {
	return Theme{
		Head:       Glyph{Text: "  ", Bg: "yellow"},
		Body:       Glyph{Text: "  ", Bg: "green"},
		Apple:      Glyph{Text: "()", Fg: "red"},
		Background: Glyph{Text: "  "},
		Border:     "default",
		Text:       "default",
	}
}

// LoadTheme reads a JSON theme. Fields missing from the file keep their
// default. Any problem with the file falls back to the default theme.
func LoadTheme(path string) Theme {
	theme := DefaultTheme()
	if path == "" {
		log.Debug("no theme file, using default theme")
		return theme
	}
	t, err := readTheme(path, theme)
	if err != nil {
		log.WithError(err).
			WithField("Path", path).
			Warn("theme not loaded, using default theme")
		return theme
	}
	return t
}

func readTheme(path string, base Theme) (Theme, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(err, "read theme")
	}
	t := base
	if err := json.Unmarshal(b, &t); err != nil {
		return base, errors.Wrap(err, "decode theme")
	}
	return t, nil
}

var colors = map[string]termbox.Attribute{
	"":        termbox.ColorDefault,
	"default": termbox.ColorDefault,
	"black":   termbox.ColorBlack,
	"red":     termbox.ColorRed,
	"green":   termbox.ColorGreen,
	"yellow":  termbox.ColorYellow,
	"blue":    termbox.ColorBlue,
	"magenta": termbox.ColorMagenta,
	"cyan":    termbox.ColorCyan,
	"white":   termbox.ColorWhite,
}

// color maps a colour name to a termbox attribute. Unknown names are the
// terminal default.
func color(name string) termbox.Attribute {
	if c, ok := colors[strings.ToLower(name)]; ok {
		return c
	}
	return termbox.ColorDefault
}
