package api

import (
	"context"
	"net/http"
	"time"

	"github.com/ignite/admetrics/internal/analytics"
	"github.com/ignite/admetrics/internal/config"
	"github.com/ignite/admetrics/internal/service/datasync"
	"github.com/ignite/admetrics/internal/store"
)

// Server represents the API server
type Server struct {
	config   config.ServerConfig
	handler  http.Handler
	handlers *Handlers
	server   *http.Server
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	coordinator *datasync.Coordinator,
	analytics *analytics.Service,
	campaigns *store.CampaignStore,
	metricsHandler http.Handler,
) *Server {
	handlers := NewHandlers(coordinator, analytics, campaigns)
	router := SetupRoutes(handlers, metricsHandler)

	return &Server{
		config:   cfg,
		handler:  router,
		handlers: handlers,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.handler,
		// A sync run can fan out a week of fetches per source, so response
		// writes get headroom; everything else stays tight.
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing
func (s *Server) Handler() http.Handler {
	return s.handler
}
