// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package chat

import (
	"context"
	"log/slog"

	"github.com/veloura/veloura/internal/platform/metrics"
)

// Hub tracks live assistant sessions. Conversations are one to one, so
// the hub exists for connection accounting and coordinated shutdown
// rather than fan-out.
type Hub struct {
	sessions   map[*Session]bool
	register   chan *Session
	unregister chan *Session
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		sessions:   make(map[*Session]bool),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		logger:     logger,
	}
}

/*
Run owns the session set until the context is canceled, then closes
every remaining session. Call it once from the server's startup path.

Parameters:
  - context: lifetime of the hub, normally the process context
*/
func (hub *Hub) Run(context context.Context) {
	for {
		select {
		case session := <-hub.register:
			hub.sessions[session] = true
			metrics.ChatSessionsActive.Inc()
			hub.logger.Debug("chat_session_opened", slog.Int("active", len(hub.sessions)))

		case session := <-hub.unregister:
			if hub.sessions[session] {
				delete(hub.sessions, session)
				close(session.send)
				metrics.ChatSessionsActive.Dec()
				hub.logger.Debug("chat_session_closed", slog.Int("active", len(hub.sessions)))
			}

		case <-context.Done():
			for session := range hub.sessions {
				close(session.send)
				delete(hub.sessions, session)
				metrics.ChatSessionsActive.Dec()
			}
			return
		}
	}
}
