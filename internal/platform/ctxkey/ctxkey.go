// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// Per-request values (user identity, request ID, logger) are stored under a
// private key type, so third-party packages that also use string-typed
// context keys can never collide with ours.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the authenticated user claims.
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
