package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mapmaker/devserver/internal/static"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Options are the listener settings fixed at startup.
type Options struct {
	// Addr is the host:port to bind.
	Addr string
	// URL is what the startup line advertises to humans.
	URL string
}

type Server struct {
	srv    *http.Server
	opts   Options
	logger *slog.Logger
}

// New builds a server that answers every request from root: the matching
// asset if there is one, the fallback document otherwise.
func New(opts Options, logger *slog.Logger, root *static.Root) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newRequestLogger(logger))
	r.Use(middleware.Recoverer)

	addRoutes(r, logger, root)

	return &Server{
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		opts:   opts,
		logger: logger,
	}
}

// Run binds the configured address and serves until Shutdown. A bind
// failure is returned as is; there is no retry.
func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown. The startup line is
// logged only once ln is bound.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("mapmaker dev server running", "url", s.opts.URL, "addr", ln.Addr().String())

	err := s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
