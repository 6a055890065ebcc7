// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package product

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/veloura/internal/platform/middleware"
	requestutil "github.com/veloura/veloura/internal/platform/request"
	"github.com/veloura/veloura/internal/platform/respond"
	"github.com/veloura/veloura/internal/platform/sec"
	"github.com/veloura/veloura/internal/platform/validate"
	"github.com/veloura/veloura/pkg/pagination"
)

// # HTTP Transport

// Handler exposes catalogue endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs a new catalogue [Handler].
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes assembles the catalogue sub-router. Discovery endpoints are public;
// curation requires at least the staff role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/search", handler.search)
	router.Get("/{slug}", handler.getBySlug)

	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleStaff))

		staff.Post("/", handler.create)
		staff.Get("/id/{id}", handler.getByID)
		staff.Patch("/{id}", handler.update)
		staff.Delete("/{id}", handler.delete)
	})

	return router
}

// ── Discovery ──

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	queryValues := request.URL.Query()

	filter := ListFilter{
		CategorySlug:  queryValues.Get("category"),
		TagSlug:       queryValues.Get("tag"),
		Sort:          queryValues.Get("sort"),
		PublishedOnly: true,
	}

	if raw := queryValues.Get("price_min"); raw != "" {
		filter.PriceMinCents, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := queryValues.Get("price_max"); raw != "" {
		filter.PriceMaxCents, _ = strconv.ParseInt(raw, 10, 64)
	}

	// Staff and admins may inspect drafts.
	if user := middleware.GetUser(request.Context()); user != nil && sec.UserRole(user.Role).AtLeast(sec.RoleStaff) {
		if queryValues.Get("include_drafts") == "true" {
			filter.PublishedOnly = false
		}
	}

	products, meta, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, meta)
}

func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	searchQuery := request.URL.Query().Get("q")

	validator := &validate.Validator{}
	validator.Required(FieldQuery, searchQuery)
	validator.MaxLen(FieldQuery, searchQuery, 200)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)

	documents, meta, err := handler.service.Search(request.Context(), searchQuery, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, documents, meta)
}

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	productSlug := requestutil.Param(request, "slug")

	product, err := handler.service.GetBySlug(request.Context(), productSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

func (handler *Handler) getByID(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.GetByID(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

// ── Curation ──

type createRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	Currency    string   `json:"currency"`
	CategoryID  int64    `json:"category_id"`
	ImageURL    string   `json:"image_url"`
	Stock       int      `json:"stock"`
	IsPublished bool     `json:"is_published"`
	Tags        []string `json:"tags"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name)
	validator.MaxLen(FieldName, input.Name, 200)
	validator.MaxLen(FieldDescription, input.Description, 5000)
	validator.ExactLen(FieldCurrency, input.Currency, 3)
	validator.Range(FieldStock, input.Stock, 0, 1_000_000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		IsPublished: input.IsPublished,
		Tags:        input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	PriceCents  *int64   `json:"price_cents"`
	Currency    *string  `json:"currency"`
	CategoryID  *int64   `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock"`
	IsPublished *bool    `json:"is_published"`
	Tags        []string `json:"tags"`
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name)
		validator.MaxLen(FieldName, *input.Name, 200)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, 5000)
	}
	if input.Currency != nil {
		validator.ExactLen(FieldCurrency, *input.Currency, 3)
	}
	if input.Stock != nil {
		validator.Range(FieldStock, *input.Stock, 0, 1_000_000)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		IsPublished: input.IsPublished,
		Tags:        input.Tags,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
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
