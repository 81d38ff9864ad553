package commands

import (
	"bytes"
	"context"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	termbox "github.com/nsf/termbox-go"
	"github.com/stretchr/testify/require"
	"github.com/wrapsnake/engine/api"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/controller"
	"github.com/wrapsnake/engine/input"
	"github.com/wrapsnake/engine/rules"
	"github.com/wrapsnake/engine/session"
	"github.com/wrapsnake/engine/terminal"
	"github.com/wrapsnake/engine/worker"
	"golang.org/x/time/rate"
)

func TestSettingsFlags(t *testing.T) {
	f := newSettingsFlags(0)
	f.boundary = "wall"
	f.heading = "up"
	f.selfCollision = true

	s, err := f.settings()
	require.NoError(t, err)
	require.Equal(t, rules.BoundaryWall, s.Boundary)
	require.Equal(t, board.Up, s.StartHeading)
	require.True(t, s.SelfCollision)
	require.Nil(t, f.options(0))

	f.seed = 7
	require.Len(t, f.options(3), 1)

	f.unit = 30
	_, err = f.settings()
	require.Error(t, err)

	f = newSettingsFlags(0)
	f.boundary = "bounce"
	_, err = f.settings()
	require.Error(t, err)

	f = newSettingsFlags(0)
	f.heading = "sideways"
	_, err = f.settings()
	require.Error(t, err)

	// 2^32 + 800 must not wrap around to a valid 800.
	wide := int64(math.MaxUint32) + 801
	f = newSettingsFlags(0)
	f.width = int(wide)
	_, err = f.settings()
	require.Error(t, err)
	require.Contains(t, err.Error(), "width")

	f = newSettingsFlags(0)
	f.unit = int(wide - 800 - math.MaxInt32)
	_, err = f.settings()
	require.Error(t, err)
}

func TestRunSim_TurnLimit(t *testing.T) {
	f := newSettingsFlags(0)
	f.seed = 42
	settings, err := f.settings()
	require.NoError(t, err)

	results, err := runSim(context.Background(), settings, f, 3, 100, rate.Limit(10))
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		require.Equal(t, int64(100), r.Turns)
		require.Equal(t, string(rules.EndReasonQuit), r.Reason)
		require.Equal(t, int(r.Score)+1, r.Length)
	}

	// Same seed, same games.
	again, err := runSim(context.Background(), settings, f, 3, 100, rate.Limit(10))
	require.NoError(t, err)
	for i := range results {
		require.Equal(t, results[i].Score, again[i].Score)
	}

	buf := &bytes.Buffer{}
	require.NoError(t, printSim(buf, results))
	require.Contains(t, buf.String(), "SCORE")
	require.Contains(t, buf.String(), results[0].ID)
}

func TestRunSim_Timed(t *testing.T) {
	f := newSettingsFlags(time.Second)
	f.seed = 1
	settings, err := f.settings()
	require.NoError(t, err)

	// One 100ms step per tick gives ten ticks per apple, sooner or later
	// an apple is placed further away than that.
	results, err := runSim(context.Background(), settings, f, 1, 0, rate.Limit(10))
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, string(rules.EndReasonTimeout), results[0].Reason)
}

func TestRunSim_Invalid(t *testing.T) {
	f := newSettingsFlags(0)
	settings, err := f.settings()
	require.NoError(t, err)

	_, err = runSim(context.Background(), settings, f, 0, 10, rate.Limit(10))
	require.Error(t, err)

	_, err = runSim(context.Background(), settings, f, 1, 0, rate.Limit(10))
	require.Error(t, err)

	settings.TimeLimit = time.Second
	_, err = runSim(context.Background(), settings, f, 1, 10, rate.Inf)
	require.Error(t, err)
}

func TestFrameHolder(t *testing.T) {
	fh := &frameHolder{}
	require.Equal(t, 0, fh.count())
	require.Nil(t, fh.get(0))

	first := &board.Frame{Turn: 0}
	fh.append(first)
	fh.append(&board.Frame{Turn: 1})
	require.Equal(t, 2, fh.count())
	require.Equal(t, first, <-fh.initialFrame())

	i, f := moveFrameForwards(0, fh)
	require.Equal(t, 1, i)
	require.Equal(t, int64(1), f.Turn)

	i, f = moveFrameForwards(1, fh)
	require.Equal(t, 1, i)
	require.Nil(t, f)

	i, f = moveFrameBackwards(0, fh)
	require.Equal(t, 0, i)
	require.Equal(t, first, f)
}

func TestSocketURL(t *testing.T) {
	require.Equal(t, "ws://localhost:3005/socket/abc", socketURL("http://localhost:3005", "abc"))
	require.Equal(t, "wss://snake.example.com/socket/abc", socketURL("https://snake.example.com", "abc"))
}

func TestLoadSession(t *testing.T) {
	ctx := context.Background()
	store := controller.InMemStore(0)
	w := &worker.Worker{
		Store:    store,
		Settings: rules.DefaultSettings(),
		TickRate: rate.Inf,
		MaxTurns: 25,
		Seed:     3,
	}
	w.Run(canceledAfterOne(store), 0)

	sessions, err := store.ListSessions(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sessions)
	id := sessions[0].ID

	ts := httptest.NewServer(api.New(":0", store).Handler())
	defer ts.Close()

	sr, err := getStatus(ts.URL, id)
	require.NoError(t, err)
	require.Equal(t, id, sr.Session.ID)

	summary, frames, done, err := loadSession(ts.URL, id)
	require.NoError(t, err, spew.Sdump(sr))
	require.Equal(t, rules.DefaultSettings().Grid(), summary.Settings.Grid())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not finish")
	}
	require.Equal(t, sessions[0].Frames, frames.count())
	require.Equal(t, int64(0), frames.get(0).Turn)

	_, err = getStatus(ts.URL, "missing")
	require.Error(t, err)
}

// canceledAfterOne returns a context that is cancelled once the store
// holds an ended session.
func canceledAfterOne(store controller.Store) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		for {
			sessions, err := store.ListSessions(context.Background())
			if err == nil && len(sessions) > 0 && sessions[0].Ended() {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()
	return ctx
}

func TestPrintQR(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, printQR(buf, spectatorURL(":3005")))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.True(t, len(lines) > 10)
	for _, l := range lines {
		require.Equal(t, len([]rune(lines[0])), len([]rune(l)))
	}
	require.Equal(t, "http://localhost:3005/sessions", spectatorURL(":3005"))
	require.Equal(t, "http://10.0.0.2:80/sessions", spectatorURL("10.0.0.2:80"))
}

// textScreen hands the text of every flushed screen to the test.
type textScreen struct {
	text    []rune
	flushed chan string
}

func (s *textScreen) Clear(fg, bg termbox.Attribute) error {
	s.text = s.text[:0]
	return nil
}

func (s *textScreen) SetCell(x, y int, ch rune, fg, bg termbox.Attribute) {
	s.text = append(s.text, ch)
}

func (s *textScreen) Size() (int, int) { return 120, 40 }

func (s *textScreen) Flush() error {
	s.flushed <- string(s.text)
	return nil
}

func TestPlaySessions_Restart(t *testing.T) {
	settings := rules.DefaultSettings()
	settings.TimeLimit = time.Second

	screen := &textScreen{flushed: make(chan string, 64)}
	renderer := terminal.NewRenderer(screen, terminal.DefaultTheme(), settings.Grid())
	commands := make(chan input.Command, 1)

	// Every tick uses up the whole time budget.
	var created []int64
	options := func(n int64) []session.Option {
		created = append(created, n)
		return []session.Option{
			session.WithSeed(n + 1),
			session.WithClock(session.NewSteppedClock(time.Unix(0, 0), time.Second)),
		}
	}

	errc := make(chan error, 1)
	go func() {
		errc <- playSessions(context.Background(), settings, options, commands, nil, renderer)
	}()

	for text := range screen.flushed {
		if strings.Contains(text, gameOverFooter) {
			require.Contains(t, text, "Game over (timeout)")
			break
		}
	}

	// Steering on the game over screen does nothing, space starts over.
	commands <- input.Up
	commands <- input.Restart
	commands <- input.Quit

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("play did not return")
	}
	require.Equal(t, []int64{0, 1}, created)
}

func TestWaitForRestart(t *testing.T) {
	commands := make(chan input.Command, 3)
	commands <- input.Left
	commands <- input.Quit
	require.False(t, waitForRestart(commands))

	commands <- input.Restart
	require.True(t, waitForRestart(commands))

	close(commands)
	require.False(t, waitForRestart(commands))
}
