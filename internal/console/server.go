// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package console

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/veloura/veloura/internal/console/guard"
	"github.com/veloura/veloura/internal/console/restclient"
	"github.com/veloura/veloura/internal/console/session"
	"github.com/veloura/veloura/internal/platform/middleware"
	requestutil "github.com/veloura/veloura/internal/platform/request"
	"github.com/veloura/veloura/internal/platform/respond"
)

// Server composes the session store, route guard and REST clients into
// the console's HTTP surface.
type Server struct {
	cfg    *Config
	store  *session.Store
	api    *restclient.Client
	logger *slog.Logger

	httpServer *http.Server
}

/*
NewServer wires the console.

Parameters:
  - cfg: console settings
  - store: the session store, already constructed with its storage
  - api: platform API client
  - logger: structured logger

Returns:
  - *Server: ready to Start
*/
func NewServer(cfg *Config, store *session.Store, api *restclient.Client, logger *slog.Logger) *Server {
	server := &Server{
		cfg:    cfg,
		store:  store,
		api:    api,
		logger: logger,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimw.Timeout(30 * time.Second))
	router.Use(middleware.PanicRecovery(logger))

	router.Get("/health", func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	})

	router.Post("/login", server.login)
	router.Get("/login/prefill", server.prefill)
	router.Post("/logout", server.logout)
	router.Get("/session", server.currentSession)

	router.Route("/admin", func(admin chi.Router) {
		admin.Use(guard.RequireAdmin(store, cfg.LoginURL))

		admin.Get("/dashboard", server.dashboard)
		admin.Get("/products", server.products)
		admin.Get("/articles", server.articles)
		admin.Get("/vouchers", server.vouchers)
		admin.Get("/categories", server.categories)
		admin.Get("/tags", server.tags)
		admin.Get("/feed-preview", server.feedPreview)
	})

	server.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return server
}

// Start runs the HTTP server. It blocks until shutdown.
func (server *Server) Start() error {
	server.logger.Info("console starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	shutdownContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(shutdownContext)
}

// # Session endpoints

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

/*
login authenticates against the platform API and installs the session.

POST /login

The backend does the credential check; the store only records the result.
Failures surface as one general message, never field-level detail.
*/
func (server *Server) login(writer http.ResponseWriter, request *http.Request) {
	var form loginForm
	if err := requestutil.DecodeJSON(request, &form); err != nil {
		respond.JSON(writer, http.StatusBadRequest, respond.ErrorEnvelope{Error: "Invalid request body", Code: "BAD_REQUEST"})
		return
	}

	user, err := server.api.Login(request.Context(), form.Email, form.Password)
	if err != nil {
		respond.JSON(writer, http.StatusUnauthorized, respond.ErrorEnvelope{Error: err.Error(), Code: "UNAUTHORIZED"})
		return
	}

	if err := server.store.Login(request.Context(), user); err != nil {
		// The in-memory session is installed regardless.
		server.logger.Warn("console_session_persist_failed", slog.String("error", err.Error()))
	}

	if form.Remember {
		if err := server.store.RememberEmail(request.Context(), user.Role == session.RoleAdmin, form.Email); err != nil {
			server.logger.Warn("console_remember_email_failed", slog.String("error", err.Error()))
		}
	}

	respond.OK(writer, user)
}

// prefill returns the remembered login email for the requested role.
//
// GET /login/prefill?admin=true
func (server *Server) prefill(writer http.ResponseWriter, request *http.Request) {
	admin := request.URL.Query().Get("admin") == "true"
	respond.OK(writer, map[string]string{
		"email": server.store.RememberedEmail(request.Context(), admin),
	})
}

/*
logout clears the session everywhere.

POST /logout

The local session is cleared even when the backend call fails: the
console prefers a clean local state over backend acknowledgment.
*/
func (server *Server) logout(writer http.ResponseWriter, request *http.Request) {
	if err := server.api.Logout(request.Context()); err != nil {
		server.logger.Warn("console_backend_logout_failed", slog.String("error", err.Error()))
	}
	if err := server.store.Logout(request.Context()); err != nil {
		server.logger.Warn("console_session_clear_failed", slog.String("error", err.Error()))
	}
	respond.NoContent(writer)
}

// currentSession reports the session snapshot for the console shell.
//
// GET /session
func (server *Server) currentSession(writer http.ResponseWriter, request *http.Request) {
	snapshot := server.store.Snapshot()
	respond.OK(writer, map[string]any{
		"user":       snapshot.User,
		"is_admin":   snapshot.IsAdmin,
		"is_loading": snapshot.IsLoading,
	})
}

// # Admin data endpoints

// dashboard aggregates the statistics widgets into one response.
//
// GET /admin/dashboard
func (server *Server) dashboard(writer http.ResponseWriter, request *http.Request) {
	overview, err := server.api.StatsOverview(request.Context())
	if err != nil {
		server.fail(writer, err)
		return
	}
	signups, err := server.api.SignupsPerDay(request.Context(), 30)
	if err != nil {
		server.fail(writer, err)
		return
	}
	topProducts, err := server.api.TopViewedProducts(request.Context(), 10)
	if err != nil {
		server.fail(writer, err)
		return
	}

	respond.OK(writer, map[string]any{
		"overview":     overview,
		"signups":      signups,
		"top_products": topProducts,
	})
}

func (server *Server) products(writer http.ResponseWriter, request *http.Request) {
	page, limit := pageParams(request)
	products, meta, err := server.api.ListProducts(request.Context(), page, limit)
	if err != nil {
		server.fail(writer, err)
		return
	}
	respond.OK(writer, map[string]any{"products": products, "meta": meta})
}

func (server *Server) articles(writer http.ResponseWriter, request *http.Request) {
	page, limit := pageParams(request)
	articles, meta, err := server.api.ListArticles(request.Context(), page, limit)
	if err != nil {
		server.fail(writer, err)
		return
	}
	respond.OK(writer, map[string]any{"articles": articles, "meta": meta})
}

func (server *Server) vouchers(writer http.ResponseWriter, request *http.Request) {
	page, limit := pageParams(request)
	vouchers, meta, err := server.api.ListVouchers(request.Context(), page, limit)
	if err != nil {
		server.fail(writer, err)
		return
	}
	respond.OK(writer, map[string]any{"vouchers": vouchers, "meta": meta})
}

func (server *Server) categories(writer http.ResponseWriter, request *http.Request) {
	tree, err := server.api.CategoryTree(request.Context())
	if err != nil {
		server.fail(writer, err)
		return
	}
	respond.OK(writer, tree)
}

func (server *Server) tags(writer http.ResponseWriter, request *http.Request) {
	tags, err := server.api.ListTags(request.Context())
	if err != nil {
		server.fail(writer, err)
		return
	}
	respond.OK(writer, tags)
}

// feedPreview shows what a given visitor's recommendation rail looks like.
//
// GET /admin/feed-preview?visitor_id=...
func (server *Server) feedPreview(writer http.ResponseWriter, request *http.Request) {
	feed, err := server.api.Recommendations(request.Context(), request.URL.Query().Get("visitor_id"))
	if err != nil {
		server.fail(writer, err)
		return
	}
	respond.OK(writer, feed)
}

// # Helpers

// fail maps upstream client errors onto a bad-gateway envelope. The
// console never fabricates detail the API did not provide.
func (server *Server) fail(writer http.ResponseWriter, err error) {
	respond.JSON(writer, http.StatusBadGateway, respond.ErrorEnvelope{Error: err.Error(), Code: "UPSTREAM_ERROR"})
}

func pageParams(request *http.Request) (int, int) {
	page, err := strconv.Atoi(request.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(request.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
