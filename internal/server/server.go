package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/app"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/config"
)

// Server owns the HTTP listener, routes, and middleware chain.
type Server struct {
	app    *app.App
	server *http.Server
	logger *common.Logger
}

// New builds the server for an initialized app. The write timeout leaves
// room for proxied tool calls, which run up to their own per-endpoint
// deadline before the envelope comes back.
func New(application *app.App) *Server {
	s := &Server{
		app:    application,
		logger: application.Logger,
	}

	cfg := application.Config.Server
	s.server = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      s.withMiddleware(s.setupRoutes()),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start runs the listener until Shutdown. http.ErrServerClosed is the
// normal shutdown signal and is not reported as a failure.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("url", fmt.Sprintf("http://%s", s.server.Addr)).
		Str("mcp_mount", "/mcp").
		Str("version", config.GetVersion()).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests until the context expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the fully wrapped handler, used by tests to drive the
// server in-process.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
