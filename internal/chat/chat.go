// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package chat runs the storefront shopping assistant.

Shoppers connect over a WebSocket and exchange plain text turns with an
assistant backed by an OpenAI-compatible completion API. When no upstream
model is configured the assistant degrades to canned replies so the widget
stays functional in development and on outages.
*/
package chat

import "time"

// Message is one turn in a conversation, in the role convention of
// OpenAI-compatible chat APIs.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// maxHistoryTurns bounds the context window sent upstream per session.
const maxHistoryTurns = 20

// IncomingFrame is what the storefront widget sends over the socket.
type IncomingFrame struct {
	Message string `json:"message"`
}

// OutgoingFrame is what the server pushes back to the widget.
type OutgoingFrame struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}
