// Package remote exposes a hosted rig over HTTP: JSON endpoints to read state and load presets, and a
// websocket stream of the pose after every tick.
package remote

import (
	"context"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Server serves the remote surface of one engine.
type Server struct {
	engine       engine.Engine
	logger       logrus.FieldLogger
	accessLog    io.Writer
	router       *mux.Router
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	sendBuffer   int

	mu      sync.Mutex
	clients map[string]*client
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used by the server.
func WithLogger(logger logrus.FieldLogger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAccessLog sets where request lines are written. Defaults to os.Stdout; nil disables them.
func WithAccessLog(w io.Writer) ServerOption {
	return func(s *Server) {
		s.accessLog = w
	}
}

// WithPingInterval sets how often idle stream clients are pinged.
func WithPingInterval(d time.Duration) ServerOption {
	return func(s *Server) {
		s.pingInterval = d
	}
}

// WithSendBuffer sets how many poses may queue for a stream client before new ones are dropped.
func WithSendBuffer(n int) ServerOption {
	return func(s *Server) {
		s.sendBuffer = n
	}
}

// NewServer creates the remote surface for e.
//
// Parameters:
//   - e: the engine hosting the rig
//   - options: functional options
//
// Returns:
//   - *Server: the server, ready to be mounted with Handler or run with ListenAndServe
func NewServer(e engine.Engine, options ...ServerOption) *Server {
	s := &Server{
		engine:       e,
		logger:       logrus.StandardLogger(),
		accessLog:    os.Stdout,
		pingInterval: 30 * time.Second,
		sendBuffer:   32,
		clients:      make(map[string]*client),
	}
	for _, opt := range options {
		opt(s)
	}
	s.logger = s.logger.WithField("component", "remote")

	r := mux.NewRouter()
	r.HandleFunc("/rig/state", s.handleState).Methods(http.MethodGet)
	r.HandleFunc("/rig/center", s.handleCenter).Methods(http.MethodPut)
	r.HandleFunc("/rig/plane/axes", s.handlePlaneAxes).Methods(http.MethodGet)
	r.HandleFunc("/rig/preset", s.handleGetPreset).Methods(http.MethodGet)
	r.HandleFunc("/rig/preset", s.handlePutPreset).Methods(http.MethodPut)
	r.HandleFunc("/rig/limit", s.handleGetLimit).Methods(http.MethodGet)
	r.HandleFunc("/rig/limit", s.handlePutLimit).Methods(http.MethodPut)
	r.HandleFunc("/rig/sensitivity", s.handleGetSensitivity).Methods(http.MethodGet)
	r.HandleFunc("/rig/sensitivity", s.handlePutSensitivity).Methods(http.MethodPut)
	r.HandleFunc("/rig/stream", s.handleStream).Methods(http.MethodGet)
	s.router = r

	return s
}

// Handler returns the routes wrapped in panic recovery and, when enabled, access logging.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	if s.accessLog != nil {
		h = handlers.LoggingHandler(s.accessLog, h)
	}
	return handlers.RecoveryHandler(handlers.RecoveryLogger(s.logger))(h)
}

// ListenAndServe serves on addr until ctx is done, then shuts down and disconnects stream clients.
//
// Parameters:
//   - ctx: stops the server when done
//   - addr: TCP address to listen on
//
// Returns:
//   - error: error if the listener fails for any reason other than shutdown
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errc := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("remote surface listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.Close()
		return errors.Wrap(err, "serve remote surface")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return errors.Wrap(err, "shut down remote surface")
	}
	return nil
}

// Clients returns the number of connected stream clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects every stream client.
func (s *Server) Close() {
	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.stop()
	}
}
