package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/avolkov/minibank/internal/adapter/http/handler"
	"github.com/avolkov/minibank/internal/adapter/http/middleware"
	"github.com/avolkov/minibank/internal/infrastructure/auth"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	AccountHandler *handler.AccountHandler
	HealthHandler  *handler.HealthHandler
	JWTManager     *auth.JWTManager
	Logger         zerolog.Logger
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

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Public authentication endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
	})

	// Account endpoints require a valid bearer token
	r.Route("/account", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		r.Post("/create", cfg.AccountHandler.Create)
		r.Get("/", cfg.AccountHandler.List)
		r.Post("/deposit", cfg.AccountHandler.Deposit)
		r.Post("/withdraw", cfg.AccountHandler.Withdraw)
		r.Post("/transfer", cfg.AccountHandler.Transfer)
		r.Get("/statement", cfg.AccountHandler.Statement)
	})

	return r
}
