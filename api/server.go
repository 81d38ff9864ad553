// Package api serves recorded sessions to spectators: JSON endpoints for
// listing sessions and reading frames, plus a websocket that streams frames
// while a session is being played.
package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/wrapsnake/engine/controller"
)

// Server is the spectator HTTP server.
type Server struct {
	hs *http.Server
}

// New creates a server listening on addr that reads from the store.
func New(addr string, store controller.Store) *Server {
	router := httprouter.New()
	router.GET("/sessions", newStoreHandle(store, listSessions))
	router.GET("/sessions/:id", newStoreHandle(store, getSession))
	router.GET("/sessions/:id/frames", newStoreHandle(store, listFrames))
	router.GET("/socket/:id", newStoreHandle(store, framesSocket))

	return &Server{
		hs: &http.Server{
			Addr:    addr,
			Handler: cors.Default().Handler(router),
		},
	}
}

// Handler returns the root handler, routes and CORS included.
func (s *Server) Handler() http.Handler { return s.hs.Handler }

// WaitForExit serves until the server is shut down.
func (s *Server) WaitForExit() {
	log.WithField("Addr", s.hs.Addr).Info("spectator api listening")
	err := s.hs.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("error while listening")
	}
}

// Shutdown stops accepting connections and waits for in flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.hs.Shutdown(ctx)
}
