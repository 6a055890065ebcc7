// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package chat

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	replyTimeout   = 45 * time.Second
	maxTurnLength  = 2000
)

const errorReply = "Sorry, I could not process that right now. Please try again in a moment."

// Session is one shopper's WebSocket conversation. The read pump owns
// the conversation history, so turns are processed strictly in order.
type Session struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	assistant Assistant
	history   []Message
	logger    *slog.Logger
}

func newSession(hub *Hub, conn *websocket.Conn, assistant Assistant, logger *slog.Logger) *Session {
	return &Session{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 16),
		assistant: assistant,
		logger:    logger,
	}
}

// readPump consumes shopper turns until the socket closes.
func (session *Session) readPump() {
	defer func() {
		session.hub.unregister <- session
		session.conn.Close()
	}()

	session.conn.SetReadLimit(maxMessageSize)
	session.conn.SetReadDeadline(time.Now().Add(pongWait))
	session.conn.SetPongHandler(func(string) error {
		session.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := session.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				session.logger.Warn("chat_socket_closed_unexpectedly", slog.String("error", err.Error()))
			}
			return
		}

		var frame IncomingFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			session.push(RoleAssistant, "Please send messages as JSON with a \"message\" field.")
			continue
		}

		turn := strings.TrimSpace(frame.Message)
		if turn == "" {
			continue
		}
		if len(turn) > maxTurnLength {
			session.push(RoleAssistant, "That message is a bit long. Could you shorten it?")
			continue
		}

		session.respond(turn)
	}
}

// respond appends the shopper's turn, asks the assistant, and pushes the
// reply. Failures become an apology so the widget never hangs on a turn.
func (session *Session) respond(turn string) {
	session.history = append(session.history, Message{Role: RoleUser, Content: turn})
	if len(session.history) > maxHistoryTurns {
		session.history = session.history[len(session.history)-maxHistoryTurns:]
	}

	replyContext, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	reply, err := session.assistant.Reply(replyContext, session.history)
	if err != nil {
		session.logger.Warn("chat_assistant_failed", slog.String("error", err.Error()))
		session.push(RoleAssistant, errorReply)
		return
	}

	session.history = append(session.history, Message{Role: RoleAssistant, Content: reply})
	session.push(RoleAssistant, reply)
}

// push queues an outgoing frame, dropping it if the client cannot keep up.
func (session *Session) push(role, content string) {
	frame, err := json.Marshal(OutgoingFrame{
		Role:    role,
		Content: content,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return
	}

	select {
	case session.send <- frame:
	default:
		session.logger.Warn("chat_send_buffer_full")
	}
}

// writePump drains the send channel and keeps the socket alive with pings.
func (session *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		session.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-session.send:
			session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				session.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := session.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			session.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := session.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
