// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package account handles user profile management, shopping preferences, and
security settings.

It provides functionalities for shoppers to view and update their private
identity data, configure their storefront experience, and manage their
active device sessions.

# Architecture

  - Entities: Preferences, SessionInfo (DTO).
  - Domain: This package depends on the auth package for the User entity.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"context"
	"time"

	"github.com/veloura/veloura/internal/users/auth"
)

// # Domain Entities

// Preferences represents the customizable storefront settings for a shopper.
type Preferences struct {
	UserID          int64     `json:"user_id"`
	Currency        string    `json:"currency"` // ISO 4217, e.g. "EUR"
	Locale          string    `json:"locale"`   // BCP-47, e.g. "fr-FR"
	NewsletterOptIn bool      `json:"newsletter_opt_in"`
	MarketingOptIn  bool      `json:"marketing_opt_in"`
	SizePreference  string    `json:"size_preference,omitempty"` // e.g. "M", "38"
	UpdatedAt       time.Time `json:"updated_at"`
}

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID         string    `json:"id"`
	DeviceName string    `json:"device_name"` // e.g. "Chrome on Windows"
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsCurrent  bool      `json:"is_current"` // True if this session belongs to the current request
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*auth.User, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		SoftDelete flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: Execution failures
	*/
	SoftDelete(context context.Context, id int64) error
}

// PreferencesRepository defines the persistence contract for shopper settings.
type PreferencesRepository interface {
	/*
		FindByUserID retrieves storefront preferences for a specific user.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - *Preferences: Hydrated settings
		  - error: apperr.NotFound if not present
	*/
	FindByUserID(context context.Context, userID int64) (*Preferences, error)

	/*
		Upsert saves or updates preferences for a user using an idempotent strategy.

		Parameters:
		  - context: context.Context
		  - prefs: *Preferences

		Returns:
		  - error: Storage failure errors
	*/
	Upsert(context context.Context, prefs *Preferences) error
}

// SessionRepository defines the visibility and revocation contract for user sessions.
type SessionRepository interface {
	/*
		FindActiveByUserID lists all valid, non-expired sessions for a user.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - []SessionInfo: List of active devices
		  - error: Retrieval errors
	*/
	FindActiveByUserID(context context.Context, userID int64) ([]SessionInfo, error)

	/*
		Revoke marks a specific session as revoked.

		Parameters:
		  - context: context.Context
		  - userID: int64 (Security constraint: owner validation)
		  - sessionID: string

		Returns:
		  - error: Revocation failures
	*/
	Revoke(context context.Context, userID int64, sessionID string) error

	/*
		RevokeOthers revokes all active sessions except for a target session.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - currentSessionID: string (The whitelist target)

		Returns:
		  - error: Revocation failures
	*/
	RevokeOthers(context context.Context, userID int64, currentSessionID string) error

	/*
		RevokeAll terminates every session for a user.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Revocation failures
	*/
	RevokeAll(context context.Context, userID int64) error
}
