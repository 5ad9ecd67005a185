package api

import (
	"context"
	"net/http"
	"time"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/config"
)

// Server is the HTTP front of the platform.
type Server struct {
	config  config.ServerConfig
	handler http.Handler
	server  *http.Server
}

// NewServer wires handlers, auth middleware and routes into a server.
func NewServer(cfg *config.Config, svc Services, mw *auth.Middleware, limiter *RateLimiter) *Server {
	handlers := NewHandlers(svc, cfg.Webhook)
	router := SetupRoutes(handlers, mw, cfg.CORS, limiter)

	return &Server{
		config:  cfg.Server,
		handler: router,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		// Write timeout leaves room for the 30s webhook proxy deadline.
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}
