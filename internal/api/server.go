// Package api wires the snapshot API router.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/albapepper/scoracle-contracts/internal/api/handler"
	"github.com/albapepper/scoracle-contracts/internal/cache"
	"github.com/albapepper/scoracle-contracts/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(handler.Paths{
		SC:     cfg.SCOutputPath,
		Tenure: cfg.TenureOutputPath,
	}, appCache, cfg.CacheTTL, logger)

	// --- Routes ---
	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/sc", h.GetSC)
		r.Get("/sc/{name}", h.GetSCPlayer)
		r.Get("/tenure", h.GetTenure)
		r.Get("/tenure/team/{abbr}", h.GetTenureTeam)
	})

	return r
}
