package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes. metricsHandler serves the
// Prometheus exposition endpoint and may be nil in tests.
func SetupRoutes(h *Handlers, metricsHandler http.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - dashboards run on a separate origin in local dev
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	// Prometheus metrics
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Trigger a sync run
		r.Post("/sync/run", h.RunSync)

		// Campaign records from the latest snapshot
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.ListCampaigns)
			r.Get("/{id}", h.GetCampaign)
			r.Patch("/{id}", h.UpdateCampaign)
		})

		// Aggregated performance metrics
		r.Get("/metrics/aggregate", h.GetAggregateMetrics)
		r.Get("/spend/total", h.GetTotalSpend)

		// Configured sources (credentials never serialize)
		r.Get("/sources", h.ListSources)
	})

	return r
}
