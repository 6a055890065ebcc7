// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package stats

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/veloura/internal/platform/middleware"
	"github.com/veloura/veloura/internal/platform/respond"
	"github.com/veloura/veloura/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the dashboard sub-router. All endpoints are admin only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/overview", handler.overview)
	router.Get("/signups", handler.signups)
	router.Get("/top-products", handler.topProducts)

	return router
}

func (handler *Handler) overview(writer http.ResponseWriter, request *http.Request) {
	overview, err := handler.service.Overview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, overview)
}

func (handler *Handler) signups(writer http.ResponseWriter, request *http.Request) {
	days, _ := strconv.Atoi(request.URL.Query().Get("days"))

	points, err := handler.service.SignupsPerDay(request.Context(), days)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, points)
}

func (handler *Handler) topProducts(writer http.ResponseWriter, request *http.Request) {
	limit, _ := strconv.Atoi(request.URL.Query().Get("limit"))

	products, err := handler.service.TopViewedProducts(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, products)
}
