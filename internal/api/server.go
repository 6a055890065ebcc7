// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/veloura/veloura/internal/chat"
	"github.com/veloura/veloura/internal/content/article"
	"github.com/veloura/veloura/internal/insights/behavior"
	"github.com/veloura/veloura/internal/insights/recommend"
	"github.com/veloura/veloura/internal/insights/stats"
	"github.com/veloura/veloura/internal/platform/config"
	"github.com/veloura/veloura/internal/platform/constants"
	"github.com/veloura/veloura/internal/platform/metrics"
	"github.com/veloura/veloura/internal/platform/middleware"
	"github.com/veloura/veloura/internal/store/category"
	"github.com/veloura/veloura/internal/store/product"
	"github.com/veloura/veloura/internal/store/tag"
	"github.com/veloura/veloura/internal/store/voucher"
	"github.com/veloura/veloura/internal/users/account"
	"github.com/veloura/veloura/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, refresh, password reset).
	Auth *auth.Handler

	// Account handles the authenticated user's own profile.
	Account *account.Handler

	// Product handles the storefront catalogue and search.
	Product *product.Handler

	// Category manages the product category tree.
	Category *category.Handler

	// Tag manages free-form product tags.
	Tag *tag.Handler

	// Voucher manages discount vouchers and validation.
	Voucher *voucher.Handler

	// Article handles editorial content (lookbooks, care guides).
	Article *article.Handler

	// Behavior ingests storefront behavior events into the stream.
	Behavior *behavior.Handler

	// Stats serves back-office aggregate dashboards.
	Stats *stats.Handler

	// Recommend serves personalized product recommendations.
	Recommend *recommend.Handler

	// Chat upgrades connections for the AI shopping assistant.
	Chat *chat.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(metrics.Instrument())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/me", h.Account.Routes())
		api.Mount("/products", h.Product.Routes())
		api.Mount("/categories", h.Category.Routes())
		api.Mount("/tags", h.Tag.Routes())
		api.Mount("/vouchers", h.Voucher.Routes())
		api.Mount("/articles", h.Article.Routes())
		api.Mount("/events", h.Behavior.Routes())
		api.Mount("/stats", h.Stats.Routes())
		api.Mount("/recommendations", h.Recommend.Routes())
		api.Mount("/chat", h.Chat.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
