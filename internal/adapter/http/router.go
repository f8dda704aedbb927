package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/papertrade/internal/adapter/http/handler"
	"github.com/iho/papertrade/internal/adapter/http/middleware"
	"github.com/iho/papertrade/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	TradingHandler   *handler.TradingHandler
	PortfolioHandler *handler.PortfolioHandler
	HealthHandler    *handler.HealthHandler
	SessionResolver  middleware.SessionResolver
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public endpoints
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)

		// Session-scoped endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(cfg.SessionResolver))

			r.Post("/logout", cfg.AuthHandler.Logout)
			r.Get("/me", cfg.AuthHandler.Me)
			r.Get("/quote/{symbol}", cfg.TradingHandler.Quote)
			r.Get("/portfolio", cfg.PortfolioHandler.Get)
			r.Get("/history", cfg.TradingHandler.History)

			r.Route("/trades", func(r chi.Router) {
				r.Post("/buy", cfg.TradingHandler.Buy)
				r.Post("/sell", cfg.TradingHandler.Sell)
			})
		})
	})

	return r
}
