// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package recommend

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloura/veloura/internal/platform/respond"
	"github.com/veloura/veloura/pkg/query"
)

// Handler exposes the recommendation feed over HTTP.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes mounts the recommendation endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.feed)
	return router
}

// # Endpoint handlers

/*
feed handles GET /api/v1/recommendations.

The visitor identity comes from the visitor_id query parameter, the same
client-generated identifier the storefront sends with behavior events.
Without one the feed degrades to catalogue-wide popularity. Repeated
exclude parameters keep products out of the rail, the storefront passes
its cart contents so shoppers are not recommended what they already hold.
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	visitorID := request.URL.Query().Get("visitor_id")
	if len(visitorID) > 64 {
		visitorID = ""
	}
	exclude := query.Int64Slice(request.URL.Query()["exclude"])

	products, err := handler.service.Feed(request.Context(), visitorID, exclude)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}
