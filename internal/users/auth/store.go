// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account and assigns its generated ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error

	/*
		SetStatus transitions the account between active and locked states.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - status: AccountStatus

		Returns:
		  - error: Persistence failures
	*/
	SetStatus(context context.Context, userID int64, status AccountStatus) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id int64) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token sessions.
type SessionRepository interface {

	/*
		Create persists a new tracking session for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the active session matching the given token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke marks a specific session as permanently invalidated.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, sessionID string) error

	/*
		RevokeAll revokes every active session belonging to the userID.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	RevokeAll(context context.Context, userID int64) error

	/*
		RevokeOthers revokes all sessions belonging to the userID except for the current session.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - currentSessionID: string

		Returns:
		  - error: Persistence failures
	*/
	RevokeOthers(context context.Context, userID int64, currentSessionID string) error

	/*
		DeleteExpired physically removes sessions whose ExpiresAt is in the past.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context) error
}

// # Volatile Data Access

// OTPRepository defines the contract for the volatile password reset codes.
//
// Codes live in Redis keyed by user email and carry a failed-attempt counter
// so a code burns out after too many wrong guesses.
type OTPRepository interface {

	/*
		SetCode stores a reset code for an email address for a limited duration.
		Any previously issued code for the same email is replaced.

		Parameters:
		  - context: context.Context
		  - email: string
		  - codeHash: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	SetCode(context context.Context, email, codeHash string, ttl time.Duration) error

	/*
		GetCode retrieves the stored code hash for an email address.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - string: Stored code hash
		  - error: apperr.NotFound when absent or expired
	*/
	GetCode(context context.Context, email string) (string, error)

	/*
		IncrementAttempts bumps the failed-verification counter for an email
		and returns the new total.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - int64: Attempts so far
		  - error: Persistence failures
	*/
	IncrementAttempts(context context.Context, email string) (int64, error)

	/*
		DeleteCode removes the code and its attempt counter after use or burnout.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteCode(context context.Context, email string) error

	/*
		SetTicket stores a verified reset ticket bound to a userID.

		Parameters:
		  - context: context.Context
		  - ticket: string
		  - userID: int64
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	SetTicket(context context.Context, ticket string, userID int64, ttl time.Duration) error

	/*
		GetTicket resolves a reset ticket back to its userID.

		Parameters:
		  - context: context.Context
		  - ticket: string

		Returns:
		  - int64: UserID
		  - error: apperr.NotFound when absent or expired
	*/
	GetTicket(context context.Context, ticket string) (int64, error)

	/*
		DeleteTicket removes a reset ticket after successful use.

		Parameters:
		  - context: context.Context
		  - ticket: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteTicket(context context.Context, ticket string) error
}
