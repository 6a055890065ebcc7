// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/veloura/internal/platform/middleware"
	requestutil "github.com/veloura/veloura/internal/platform/request"
	"github.com/veloura/veloura/internal/platform/respond"
	"github.com/veloura/veloura/internal/platform/sec"
	"github.com/veloura/veloura/pkg/pagination"
)

// # HTTP Transport

// Handler exposes editorial endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new editorial [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the article sub-router. Reading is public; authorship
// requires staff.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{slug}", handler.getBySlug)

	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleStaff))

		staff.Post("/", handler.create)
		staff.Patch("/{id}", handler.update)
		staff.Delete("/{id}", handler.delete)
	})

	return router
}

// isStaff reports whether the request carries at least a staff identity.
func isStaff(request *http.Request) bool {
	user := middleware.GetUser(request.Context())
	return user != nil && sec.UserRole(user.Role).AtLeast(sec.RoleStaff)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	publishedOnly := true
	if isStaff(request) && request.URL.Query().Get("include_drafts") == "true" {
		publishedOnly = false
	}

	articles, meta, err := handler.service.List(request.Context(), publishedOnly, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, articles, meta)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	article, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"), isStaff(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, article)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Article
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.AuthorID = userID

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Article
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), id, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
