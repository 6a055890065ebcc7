// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/veloura/veloura/internal/platform/respond"
)

// Handler upgrades storefront connections into assistant sessions.
type Handler struct {
	hub       *Hub
	assistant Assistant
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

func NewHandler(hub *Hub, assistant Assistant, logger *slog.Logger) *Handler {
	return &Handler{
		hub:       hub,
		assistant: assistant,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The widget is embedded on the storefront and behind the
			// same gateway, so origin is enforced there.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Routes mounts the WebSocket endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/ws", handler.connect)
	router.Get("/health", handler.health)
	return router
}

// # Endpoint handlers

/*
connect handles GET /api/v1/chat/ws.

On upgrade the session greets the shopper, then the read and write pumps
take over for the life of the socket.
*/
func (handler *Handler) connect(writer http.ResponseWriter, request *http.Request) {
	conn, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		// Upgrade has already written its own error response.
		handler.logger.Warn("chat_upgrade_failed", slog.String("error", err.Error()))
		return
	}

	session := newSession(handler.hub, conn, handler.assistant, handler.logger)
	handler.hub.register <- session

	go session.writePump()
	session.push(RoleAssistant, "Hi! I'm the Veloura assistant. Ask me about products, sizing, shipping or returns.")
	go session.readPump()
}

// health reports whether a live model backs the assistant.
func (handler *Handler) health(writer http.ResponseWriter, _ *http.Request) {
	mode := "assistant"
	if _, canned := handler.assistant.(CannedAssistant); canned {
		mode = "canned"
	}
	respond.OK(writer, map[string]string{"mode": mode})
}
