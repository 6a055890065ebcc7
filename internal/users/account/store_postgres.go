// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package account (Postgres) implements the storage layer for user meta-data.

It provides PostgreSQL implementations for managing shopper profiles,
storefront preferences, and auditing active sessions.

# Schema Table Mapping
  - users.account: Master identity and profile data.
  - users.preference: 1:1 shopper settings configuration.
  - users.session: Active device sessions and security metadata.
*/
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// PostgresPreferencesRepository implements [PreferencesRepository] using pgx.
type PostgresPreferencesRepository struct {
	pool *pgxpool.Pool
}

// NewPreferencesRepository creates a new Postgres implementation for shopper settings.
func NewPreferencesRepository(pool *pgxpool.Pool) *PostgresPreferencesRepository {
	return &PostgresPreferencesRepository{pool: pool}
}

// PostgresSessionRepository implements [SessionRepository] using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new Postgres implementation for session auditing.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

// # AccountRepository Methods

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id int64) (*auth.User, error) {
	const query = `
		SELECT id, email, passwordhash, displayname, phone, address, avatarurl, role, status, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Phone,
		&user.Address,
		&user.AvatarURL,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
Update modifies the mutable profile metadata of a user.

Description: This method specifically syncs the DisplayName, Phone, Address,
and AvatarURL fields, while refreshing the updatedat timestamp.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Update failures
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET displayname = $2, phone = $3, address = $4, avatarurl = $5, updatedat = $6
		WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.DisplayName,
		user.Phone,
		user.Address,
		user.AvatarURL,
		time.Now(),
	)

	// If the update fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

/*
SoftDelete flags a user account as logically destroyed.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: Execution failures
*/
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id int64) error {
	const query = "UPDATE users.account SET deletedat = NOW() WHERE id = $1"
	_, err := repository.pool.Exec(context, query, id)
	return err
}

// # PreferencesRepository Methods

/*
FindByUserID retrieves the stored storefront settings for a specific user.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *Preferences: Hydrated setting entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresPreferencesRepository) FindByUserID(context context.Context, userID int64) (*Preferences, error) {
	const query = `
		SELECT userid, currency, locale, newsletteroptin, marketingoptin, sizepreference, updatedat
		FROM users.preference
		WHERE userid = $1`

	prefs := &Preferences{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&prefs.UserID,
		&prefs.Currency,
		&prefs.Locale,
		&prefs.NewsletterOptIn,
		&prefs.MarketingOptIn,
		&prefs.SizePreference,
		&prefs.UpdatedAt,
	)

	// If the query fails, return an error
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Preferences")
		}
		return nil, fmt.Errorf("postgres_preference_repo_find_failed: %w", err)
	}

	return prefs, nil
}

/*
Upsert saves a user's preferences using an ON CONFLICT UPDATE strategy.

Parameters:
  - context: context.Context
  - prefs: *Preferences

Returns:
  - error: Synchronization failures
*/
func (repository *PostgresPreferencesRepository) Upsert(context context.Context, prefs *Preferences) error {
	const query = `
		INSERT INTO users.preference (
			userid, currency, locale, newsletteroptin, marketingoptin, sizepreference, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (userid) DO UPDATE SET
			currency = EXCLUDED.currency,
			locale = EXCLUDED.locale,
			newsletteroptin = EXCLUDED.newsletteroptin,
			marketingoptin = EXCLUDED.marketingoptin,
			sizepreference = EXCLUDED.sizepreference,
			updatedat = EXCLUDED.updatedat`

	_, err := repository.pool.Exec(context, query,
		prefs.UserID,
		prefs.Currency,
		prefs.Locale,
		prefs.NewsletterOptIn,
		prefs.MarketingOptIn,
		prefs.SizePreference,
		prefs.UpdatedAt,
	)

	// If the upsert fails, return an error
	if err != nil {
		return fmt.Errorf("postgres_preference_repo_upsert_failed: %w", err)
	}

	return nil
}

// # SessionRepository Methods

/*
FindActiveByUserID retrieves all valid device sessions for a user.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - []SessionInfo: Collection of active devices
  - error: Database retrieval failures
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID int64) ([]SessionInfo, error) {
	const query = `
		SELECT id, useragent, ipaddress, createdat, expiresat
		FROM users.session
		WHERE userid = $1 AND isrevoked = FALSE AND expiresat > NOW()
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_session_repo_list_active_failed: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var sess SessionInfo
		if err := rows.Scan(&sess.ID, &sess.DeviceName, &sess.IPAddress, &sess.CreatedAt, &sess.ExpiresAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	return sessions, nil
}

/*
Revoke marks a single session as permanently revoked.

Parameters:
  - context: context.Context
  - userID: int64 (Security: validation of ownership)
  - sessionID: string

Returns:
  - error: Update failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID int64, sessionID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE id = $1 AND userid = $2"
	_, err := repository.pool.Exec(context, query, sessionID, userID)
	return err
}

/*
RevokeOthers marks all sessions except the current one as revoked.

Parameters:
  - context: context.Context
  - userID: int64
  - currentSessionID: string

Returns:
  - error: Batch update failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID int64, currentSessionID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND id != $2 AND isrevoked = FALSE"
	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	return err
}

/*
RevokeAll terminates every session for a user.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - error: Batch update failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID int64) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND isrevoked = FALSE"
	_, err := repository.pool.Exec(context, query, userID)
	return err
}
