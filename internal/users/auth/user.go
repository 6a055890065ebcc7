// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for authentication,
authorization, and account lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/veloura/veloura/internal/platform/sec"
)

// # Domain Entities

// AccountStatus represents the lifecycle state of a user account.
type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusLocked AccountStatus = "locked"
)

// User represents a registered member of the Veloura platform.
type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string        `json:"display_name"`
	Phone        string        `json:"phone,omitempty"`
	Address      string        `json:"address,omitempty"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	Role         sec.UserRole  `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldPhone           = "phone"
	FieldCode            = "code"
	FieldTicket          = "ticket"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
)
