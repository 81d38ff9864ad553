package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wrapsnake/engine/controller"
	"github.com/wrapsnake/engine/rules"
)

// SocketPollInterval is how often a socket checks the store for new frames
// once it has caught up.
var SocketPollInterval = 50 * time.Millisecond

const socketBatch = 100

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// framesSocket streams every frame of a session, from the first one, as JSON
// text messages. The connection is closed normally after the last frame of an
// ended session.
func framesSocket(w http.ResponseWriter, r *http.Request, ps httprouter.Params, store controller.Store) {
	id := ps.ByName("id")
	if _, err := store.GetSession(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).WithField("SessionID", id).Warn("websocket upgrade failed")
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Control frames are only processed while reading.
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	err = streamFrames(ctx, ws, store, id)
	switch {
	case err == nil:
		closeSocket(ws, websocket.CloseNormalClosure, "")
	case errors.Cause(err) == controller.ErrNotFound:
		closeSocket(ws, websocket.CloseGoingAway, "session evicted")
	case errors.Cause(err) == context.Canceled:
	default:
		log.WithError(err).WithField("SessionID", id).Warn("frame stream failed")
		closeSocket(ws, websocket.CloseInternalServerErr, "")
	}
}

func streamFrames(ctx context.Context, ws *websocket.Conn, store controller.Store, id string) error {
	offset := 0
	sentEnd := false
	for {
		frames, err := store.ListFrames(ctx, id, socketBatch, offset)
		if err != nil {
			return err
		}
		for _, f := range frames {
			if err := ws.WriteJSON(f); err != nil {
				return errors.Wrap(err, "write frame")
			}
			sentEnd = rules.GameStatus(f.Status) == rules.GameStatusEnded
		}
		offset += len(frames)
		if len(frames) > 0 {
			continue
		}

		summary, err := store.GetSession(ctx, id)
		if err != nil {
			return err
		}
		if summary.Ended() && offset >= summary.Frames {
			if sentEnd {
				return nil
			}
			// The final frame replaced one that was already sent.
			last, err := store.ListFrames(ctx, id, 1, -1)
			if err != nil {
				return err
			}
			for _, f := range last {
				if err := ws.WriteJSON(f); err != nil {
					return errors.Wrap(err, "write frame")
				}
			}
			return nil
		}

		select {
		case <-time.After(SocketPollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func closeSocket(ws *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	if err := ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		log.WithError(err).Debug("unable to send close message")
	}
}
