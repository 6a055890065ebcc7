// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package session is the admin console's source of truth for "who is logged
in and as what role".

The store keeps the current identity in memory and mirrors it to durable
storage so a console restart rehydrates the session. Admin and customer
identities are mutually exclusive in storage: writing one always clears
the other. Corrupt storage never surfaces as an error, the store degrades
to logged-out instead.
*/
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// Storage keys. One blob per role, mutually exclusive on write, plus the
// per-role "remember this email" conveniences.
const (
	adminKey            = "admin_user"
	customerKey         = "customer_user"
	rememberAdminKey    = "admin_saved_email"
	rememberCustomerKey = "customer_saved_email"
)

const (
	sessionTTL  = 7 * 24 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

// RoleAdmin is the role tag that unlocks the admin console.
const RoleAdmin = "admin"

// User is the backend's representation of an account, copied verbatim
// from a successful login response. The console derives nothing from it
// except the admin flag.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is a point-in-time read of the session.
//
// IsAdmin is true if and only if User is non-nil and carries the admin
// role. Consumers must not make auth-gated decisions while IsLoading is
// true.
type Snapshot struct {
	User      *User
	IsAdmin   bool
	IsLoading bool
}

// Store holds the current identity. It is the single writer of both the
// in-memory session and the persisted blobs; everything else reads
// through Snapshot.
type Store struct {
	storage Storage
	logger  *slog.Logger

	mu        sync.RWMutex
	user      *User
	isAdmin   bool
	isLoading bool
}

/*
NewStore creates a session store in the loading state.

Parameters:
  - storage: durable key/value backing, Redis in production
  - logger: structured logger

Returns:
  - *Store: the store; call Initialize before serving traffic
*/
func NewStore(storage Storage, logger *slog.Logger) *Store {
	return &Store{
		storage:   storage,
		logger:    logger,
		isLoading: true,
	}
}

// # Lifecycle

/*
Initialize rehydrates the session from storage.

The admin blob is consulted first; when it parses, it becomes the session
and any customer blob is left untouched and unread. Failing that, a
customer blob becomes the session with the admin flag forced off. A blob
that is present but corrupt triggers a full clear, equivalent to Logout.
The loading flag drops once resolution completes, whatever the outcome.

Parameters:
  - context: bounds the storage reads

Returns:
  - error: storage transport failure only; corrupt data is never an error
*/
func (store *Store) Initialize(context context.Context) error {
	defer func() {
		store.mu.Lock()
		store.isLoading = false
		store.mu.Unlock()
	}()

	adminBlob, adminPresent, err := store.storage.Get(context, adminKey)
	if err != nil {
		return err
	}
	if adminPresent {
		user, ok := store.parse(adminBlob)
		if !ok {
			return store.Logout(context)
		}
		store.set(user, user.Role == RoleAdmin)
		return nil
	}

	customerBlob, customerPresent, err := store.storage.Get(context, customerKey)
	if err != nil {
		return err
	}
	if customerPresent {
		user, ok := store.parse(customerBlob)
		if !ok {
			return store.Logout(context)
		}
		// A customer identity never unlocks admin views, regardless of
		// what the blob claims.
		store.set(user, false)
		return nil
	}

	return nil
}

/*
Watch polls storage until the context is canceled and logs out when both
role blobs have vanished while an in-memory session exists. This keeps
the console honest when storage is flushed externally; the race window is
the poll interval.

Parameters:
  - context: lifetime of the watcher
  - interval: poll period
*/
func (store *Store) Watch(context context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			store.reconcile(context)
		case <-context.Done():
			return
		}
	}
}

// reconcile performs one Watch iteration.
func (store *Store) reconcile(context context.Context) {
	if store.Snapshot().User == nil {
		return
	}

	_, adminPresent, err := store.storage.Get(context, adminKey)
	if err != nil {
		return
	}
	_, customerPresent, err := store.storage.Get(context, customerKey)
	if err != nil {
		return
	}

	if !adminPresent && !customerPresent {
		store.logger.Info("console_session_externally_cleared")
		if err := store.Logout(context); err != nil {
			store.logger.Warn("console_session_clear_failed", slog.String("error", err.Error()))
		}
	}
}

// # Mutations

/*
Login installs a user record already authenticated by the backend. The
store performs no credential checks of its own.

The record is persisted under the key matching its role and the opposite
role's blob is cleared, keeping the two mutually exclusive. The in-memory
session is updated even when persistence fails, the console prefers a
live session over a durable one.

Parameters:
  - context: bounds the storage writes
  - user: the authenticated record

Returns:
  - error: storage write failure, session is installed regardless
*/
func (store *Store) Login(context context.Context, user User) error {
	isAdmin := user.Role == RoleAdmin
	store.set(&user, isAdmin)

	blob, err := json.Marshal(user)
	if err != nil {
		return err
	}

	ownKey, otherKey := customerKey, adminKey
	if isAdmin {
		ownKey, otherKey = adminKey, customerKey
	}

	if err := store.storage.Set(context, ownKey, string(blob), sessionTTL); err != nil {
		return err
	}
	return store.storage.Delete(context, otherKey)
}

/*
Logout clears the in-memory session and every persisted key, the two role
blobs and the remember-me conveniences alike. Safe to call when already
logged out.

Parameters:
  - context: bounds the storage deletes

Returns:
  - error: storage delete failure, memory is cleared regardless
*/
func (store *Store) Logout(context context.Context) error {
	store.set(nil, false)
	return store.storage.Delete(context, adminKey, customerKey, rememberAdminKey, rememberCustomerKey)
}

// # Reads

// Snapshot returns the current session state.
func (store *Store) Snapshot() Snapshot {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return Snapshot{
		User:      store.user,
		IsAdmin:   store.isAdmin,
		IsLoading: store.isLoading,
	}
}

// # Remember-me conveniences

// RememberEmail stores the login email for the given admin flag so the
// form can prefill it next time.
func (store *Store) RememberEmail(context context.Context, admin bool, email string) error {
	key := rememberCustomerKey
	if admin {
		key = rememberAdminKey
	}
	return store.storage.Set(context, key, email, rememberTTL)
}

// RememberedEmail returns the prefill email for the given admin flag, or
// an empty string.
func (store *Store) RememberedEmail(context context.Context, admin bool) string {
	key := rememberCustomerKey
	if admin {
		key = rememberAdminKey
	}
	email, _, err := store.storage.Get(context, key)
	if err != nil {
		return ""
	}
	return email
}

// # Internals

func (store *Store) set(user *User, isAdmin bool) {
	store.mu.Lock()
	store.user = user
	store.isAdmin = isAdmin
	store.mu.Unlock()
}

// parse decodes a persisted blob. Corrupt data reports ok=false rather
// than an error so callers degrade to logged-out.
func (store *Store) parse(blob string) (*User, bool) {
	var user User
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		store.logger.Warn("console_session_blob_corrupt", slog.String("error", err.Error()))
		return nil, false
	}
	if user.ID == 0 {
		return nil, false
	}
	return &user, true
}
