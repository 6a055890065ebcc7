// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package voucher

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/veloura/internal/platform/middleware"
	requestutil "github.com/veloura/veloura/internal/platform/request"
	"github.com/veloura/veloura/internal/platform/respond"
	"github.com/veloura/veloura/internal/platform/sec"
	"github.com/veloura/veloura/internal/platform/validate"
)

// # HTTP Transport

// Handler exposes voucher endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new voucher [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the voucher sub-router. Validation is open to shoppers;
// management requires staff.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/validate", handler.validateCode)

	router.Group(func(shopper chi.Router) {
		shopper.Use(middleware.RequireAuth)
		shopper.Post("/redeem", handler.redeem)
	})

	router.Group(func(staff chi.Router) {
		staff.Use(middleware.RequireRole(sec.RoleStaff))

		staff.Get("/", handler.list)
		staff.Post("/", handler.create)
		staff.Patch("/{id}", handler.update)
		staff.Delete("/{id}", handler.delete)
	})

	return router
}

type validateRequest struct {
	Code       string `json:"code"`
	OrderCents int64  `json:"order_cents"`
}

func (handler *Handler) validateCode(writer http.ResponseWriter, request *http.Request) {
	var input validateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, input.Code)
	validator.Custom(FieldOrderCents, input.OrderCents <= 0, "must be positive")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	quote, err := handler.service.Validate(request.Context(), input.Code, input.OrderCents)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, quote)
}

func (handler *Handler) redeem(writer http.ResponseWriter, request *http.Request) {
	var input validateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCode, input.Code)
	validator.Custom(FieldOrderCents, input.OrderCents <= 0, "must be positive")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user := middleware.GetUser(request.Context())
	quote, err := handler.service.Redeem(request.Context(), user.UserID, input.Code, input.OrderCents)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, quote)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	vouchers, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, vouchers)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Voucher
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

	var input Voucher
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
