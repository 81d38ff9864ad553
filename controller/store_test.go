package controller

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/rules"
)

func frame(id string, turn int64) *board.Frame {
	return &board.Frame{
		SessionID: id,
		Turn:      turn,
		Heading:   board.Right,
		Snake:     board.NewSnake(board.Point{X: int32(turn), Y: 0}),
		Status:    string(rules.GameStatusRunning),
	}
}

func endFrame(id string, turn int64, reason rules.EndReason) *board.Frame {
	f := frame(id, turn)
	f.Status = string(rules.GameStatusEnded)
	f.Reason = string(reason)
	return f
}

func testStoreSessions(t *testing.T, s Store) {
	ctx := context.Background()

	// Create and fetch a session.
	err := s.CreateSession(ctx, rules.DefaultSettings(), frame("test", 0))
	require.Nil(t, err)
	g, err := s.GetSession(ctx, "test")
	require.Nil(t, err)
	require.Equal(t, "test", g.ID)
	require.Equal(t, rules.GameStatusRunning, g.Status)
	require.Equal(t, 1, g.Frames)

	// Same id twice.
	err = s.CreateSession(ctx, rules.DefaultSettings(), frame("test", 0))
	require.Equal(t, ErrExists, err)

	// NotFound error thrown.
	_, err = s.GetSession(ctx, "tes11221t")
	require.Equal(t, ErrNotFound, err)

	// No session id.
	err = s.CreateSession(ctx, rules.DefaultSettings(), &board.Frame{})
	require.NotNil(t, err)

	sessions, err := s.ListSessions(ctx)
	require.Nil(t, err)
	require.Len(t, sessions, 1)
}

func testStoreFrames(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.CreateSession(ctx, rules.DefaultSettings(), frame("test", 0))
	require.Nil(t, err)

	// Read frames, too high offset.
	frames, err := s.ListFrames(ctx, "test", 10, 100)
	require.Nil(t, err)
	require.Equal(t, 0, len(frames))

	// Push some frames.
	for i := int64(1); i < 5; i++ {
		require.Nil(t, s.PushFrame(ctx, "test", frame("test", i)))
	}

	frames, err = s.ListFrames(ctx, "test", 2, 1)
	require.Nil(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, int64(1), frames[0].Turn)
	require.Equal(t, int64(2), frames[1].Turn)

	// Negative offset counts from the end.
	frames, err = s.ListFrames(ctx, "test", 10, -1)
	require.Nil(t, err)
	require.Len(t, frames, 1)
	require.Equal(t, int64(4), frames[0].Turn)

	frames, err = s.ListFrames(ctx, "test", 10, -100)
	require.Nil(t, err)
	require.Len(t, frames, 5)

	// Frames that don't exist.
	frames, err = s.ListFrames(ctx, "test22", 1, 0)
	require.Equal(t, ErrNotFound, err)
	require.Equal(t, 0, len(frames))

	// Returned frames are copies.
	frames, err = s.ListFrames(ctx, "test", 1, 0)
	require.Nil(t, err)
	frames[0].Snake.Body[0] = board.Point{X: 30, Y: 30}
	again, err := s.ListFrames(ctx, "test", 1, 0)
	require.Nil(t, err)
	require.Equal(t, board.Point{X: 0, Y: 0}, again[0].Snake.Body[0])
}

func testStoreEnd(t *testing.T, s Store) {
	ctx := context.Background()

	require.Nil(t, s.CreateSession(ctx, rules.DefaultSettings(), frame("test", 0)))
	require.Nil(t, s.PushFrame(ctx, "test", endFrame("test", 1, rules.EndReasonTimeout)))

	g, err := s.GetSession(ctx, "test")
	require.Nil(t, err)
	require.True(t, g.Ended())
	require.Equal(t, rules.EndReasonTimeout, g.Reason)
	require.Equal(t, int64(1), g.Turn)

	err = s.PushFrame(ctx, "test", frame("test", 2))
	require.Equal(t, ErrEnded, err)
}

func testStoreQuitBetweenTicks(t *testing.T, s Store) {
	ctx := context.Background()

	require.Nil(t, s.CreateSession(ctx, rules.DefaultSettings(), frame("test", 0)))
	require.Nil(t, s.PushFrame(ctx, "test", frame("test", 1)))
	require.Nil(t, s.PushFrame(ctx, "test", endFrame("test", 1, rules.EndReasonQuit)))

	g, err := s.GetSession(ctx, "test")
	require.Nil(t, err)
	require.True(t, g.Ended())
	require.Equal(t, rules.EndReasonQuit, g.Reason)
	require.Equal(t, 2, g.Frames)

	frames, err := s.ListFrames(ctx, "test", 10, 0)
	require.Nil(t, err)
	require.Len(t, frames, 2)
	require.Equal(t, int64(1), frames[1].Turn)
	require.Equal(t, string(rules.GameStatusEnded), frames[1].Status)
}

func testStoreConcurrentWriters(t *testing.T, s Store) {
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("game-%d", i)
			if err := s.CreateSession(ctx, rules.DefaultSettings(), frame(id, 0)); err != nil {
				return
			}
			for turn := int64(1); turn <= 10; turn++ {
				s.PushFrame(ctx, id, frame(id, turn))
			}
		}(i)
	}
	wg.Wait()

	sessions, err := s.ListSessions(ctx)
	require.Nil(t, err)
	require.Len(t, sessions, 20)
	for _, g := range sessions {
		require.Equal(t, 11, g.Frames)
	}
}

func TestStore_InMem_Sessions(t *testing.T)          { testStoreSessions(t, InMemStore(0)) }
func TestStore_InMem_Frames(t *testing.T)            { testStoreFrames(t, InMemStore(0)) }
func TestStore_InMem_QuitBetweenTicks(t *testing.T)  { testStoreQuitBetweenTicks(t, InMemStore(0)) }
func TestStore_InMem_End(t *testing.T)               { testStoreEnd(t, InMemStore(0)) }
func TestStore_InMem_ConcurrentWriters(t *testing.T) { testStoreConcurrentWriters(t, InMemStore(0)) }
func TestStore_Instrumented_Frames(t *testing.T)     { testStoreFrames(t, InstrumentStore(InMemStore(0))) }

func TestStore_InMem_Retention(t *testing.T) {
	ctx := context.Background()
	s := InMemStore(2)

	require.Nil(t, s.CreateSession(ctx, rules.DefaultSettings(), frame("a", 0)))
	require.Nil(t, s.CreateSession(ctx, rules.DefaultSettings(), frame("b", 0)))
	require.Nil(t, s.CreateSession(ctx, rules.DefaultSettings(), frame("c", 0)))

	// Nothing has ended, nothing can be evicted.
	sessions, err := s.ListSessions(ctx)
	require.Nil(t, err)
	require.Len(t, sessions, 3)

	// Ending b makes it the oldest ended session.
	require.Nil(t, s.PushFrame(ctx, "b", endFrame("b", 1, rules.EndReasonQuit)))
	_, err = s.GetSession(ctx, "b")
	require.Equal(t, ErrNotFound, err)

	sessions, err = s.ListSessions(ctx)
	require.Nil(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "a", sessions[0].ID)
	require.Equal(t, "c", sessions[1].ID)
}
