// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package behavior

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/veloura/veloura/internal/platform/request"
	"github.com/veloura/veloura/internal/platform/respond"
)

// # HTTP Transport

// Handler exposes the event ingestion endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new behavior [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes assembles the event sub-router. Ingestion is open to anonymous
// shoppers; the visitor ID carries identity.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.track)
	return router
}

func (handler *Handler) track(writer http.ResponseWriter, request *http.Request) {
	var event Event
	if err := requestutil.DecodeJSON(request, &event); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Authenticated shoppers get their identity attached server-side so the
	// client cannot spoof another user's ID.
	if claims := requestutil.Claims(request); claims != nil {
		event.UserID = &claims.UserID
	}

	if err := handler.service.Track(request.Context(), event); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Accepted(writer, map[string]string{"status": "accepted"})
}
