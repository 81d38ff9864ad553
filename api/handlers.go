package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wrapsnake/engine/board"
	"github.com/wrapsnake/engine/controller"
)

const (
	defaultFrameLimit = 100
	maxFrameLimit     = 1000
)

type storeHandle func(http.ResponseWriter, *http.Request, httprouter.Params, controller.Store)

func newStoreHandle(store controller.Store, handle storeHandle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		handle(w, r, ps, store)
	}
}

// SessionsResponse is the body of GET /sessions.
type SessionsResponse struct {
	Sessions []*controller.Summary `json:"sessions"`
}

// SessionResponse is the body of GET /sessions/:id.
type SessionResponse struct {
	Session   *controller.Summary `json:"session"`
	LastFrame *board.Frame        `json:"last_frame,omitempty"`
}

// FramesResponse is the body of GET /sessions/:id/frames.
type FramesResponse struct {
	Count  int            `json:"count"`
	Frames []*board.Frame `json:"frames"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func listSessions(w http.ResponseWriter, r *http.Request, _ httprouter.Params, store controller.Store) {
	sessions, err := store.ListSessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &SessionsResponse{Sessions: sessions})
}

func getSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params, store controller.Store) {
	id := ps.ByName("id")
	summary, err := store.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	frames, err := store.ListFrames(r.Context(), id, 1, -1)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := &SessionResponse{Session: summary}
	if len(frames) > 0 {
		resp.LastFrame = frames[0]
	}
	writeJSON(w, http.StatusOK, resp)
}

func listFrames(w http.ResponseWriter, r *http.Request, ps httprouter.Params, store controller.Store) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: err.Error()})
		return
	}
	limit, err := queryInt(r, "limit", defaultFrameLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: err.Error()})
		return
	}
	if limit <= 0 || limit > maxFrameLimit {
		limit = maxFrameLimit
	}

	frames, err := store.ListFrames(r.Context(), ps.ByName("id"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if frames == nil {
		frames = []*board.Frame{}
	}
	writeJSON(w, http.StatusOK, &FramesResponse{Count: len(frames), Frames: frames})
}

func queryInt(r *http.Request, name string, defaults int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaults, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Errorf("invalid %s %q", name, val)
	}
	return i, nil
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Cause(err) == controller.ErrNotFound {
		writeJSON(w, http.StatusNotFound, &errorResponse{Error: err.Error()})
		return
	}
	log.WithError(err).Error("store call failed")
	writeJSON(w, http.StatusInternalServerError, &errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("unable to write response")
	}
}
