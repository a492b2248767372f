// Package webserver runs the scoring API over HTTP.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spboyer/pagescore/internal/webapi"
)

// DefaultPort is used when Config.Port is zero.
const DefaultPort = 3000

// Config holds the HTTP server configuration.
type Config struct {
	// Host defaults to loopback; set "0.0.0.0" to accept remote clients.
	Host           string
	Port           int
	AllowedOrigins []string
	Scorer         webapi.DocumentScorer
	// Weights is reported by GET /api/rules.
	Weights map[string]any
	Logger  *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Scorer == nil {
		return nil, errors.New("webserver: a scorer is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}

	mux := http.NewServeMux()
	webapi.RegisterRoutes(mux, webapi.NewHandlers(cfg.Scorer, cfg.Weights, cfg.Logger))

	var handler http.Handler = mux
	handler = webapi.CORSMiddleware(handler, cfg.AllowedOrigins...)
	handler = webapi.LoggingMiddleware(handler, cfg.Logger)
	handler = webapi.RequestIDMiddleware(handler)

	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("HTTP server starting", "address", ln.Addr().String(), "origins", s.cfg.AllowedOrigins)

	done := make(chan struct{})
	defer close(done)

	// Graceful shutdown on context cancellation.
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
