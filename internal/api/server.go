// Package api exposes the idea store over a local HTTP interface, used by
// desktop front-ends and scripting.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"ideastash/internal/service"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	server *http.Server
	addr   string
	logger *slog.Logger

	ideas *service.IdeaService
	cats  *service.CategoryService
	stats *service.StatsService
}

// NewServer creates a server listening on addr. allowedOrigins configures
// CORS for browser front-ends; empty means same-machine tools only.
func NewServer(addr string, allowedOrigins []string, ideas *service.IdeaService, cats *service.CategoryService, stats *service.StatsService, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		addr:   addr,
		logger: logger,
		ideas:  ideas,
		cats:   cats,
		stats:  stats,
	}

	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggingMiddleware(logger))
	s.router.Use(RecoveryMiddleware(logger))
	if len(allowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			MaxAge:         86400,
		}))
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting http server", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
