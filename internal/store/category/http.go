package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/veloura/internal/platform/middleware"
	requestutil "github.com/veloura/veloura/internal/platform/request"
	"github.com/veloura/veloura/internal/platform/respond"
	"github.com/veloura/veloura/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.tree)
	router.Get("/{slug}", handler.getBySlug)

	// Staff only
	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleStaff))

		staff.Post("/", handler.create)
		staff.Patch("/{id}", handler.update)

		// Deletes are destructive for navigation, admin only
		staff.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.delete)
	})

	return router
}

func (handler *Handler) tree(writer http.ResponseWriter, request *http.Request) {
	nodes, err := handler.service.Tree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, nodes)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

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

	var input Category
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
