// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package account

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/users/auth"
)

// # Test Doubles

type fakeAccountRepo struct {
	users   map[int64]*auth.User
	deleted map[int64]bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{users: make(map[int64]*auth.User), deleted: make(map[int64]bool)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id int64) (*auth.User, error) {
	user, ok := r.users[id]
	if !ok || r.deleted[id] {
		return nil, apperr.NotFound("user")
	}
	clone := *user
	return &clone, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, user *auth.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperr.NotFound("user")
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) SoftDelete(_ context.Context, id int64) error {
	r.deleted[id] = true
	return nil
}

type fakePreferencesRepo struct {
	prefs map[int64]*Preferences
}

func newFakePreferencesRepo() *fakePreferencesRepo {
	return &fakePreferencesRepo{prefs: make(map[int64]*Preferences)}
}

func (r *fakePreferencesRepo) FindByUserID(_ context.Context, userID int64) (*Preferences, error) {
	prefs, ok := r.prefs[userID]
	if !ok {
		return nil, apperr.NotFound("preferences")
	}
	clone := *prefs
	return &clone, nil
}

func (r *fakePreferencesRepo) Upsert(_ context.Context, prefs *Preferences) error {
	clone := *prefs
	r.prefs[prefs.UserID] = &clone
	return nil
}

type fakeSessionRepo struct {
	sessions map[int64][]SessionInfo
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int64][]SessionInfo)}
}

func (r *fakeSessionRepo) FindActiveByUserID(_ context.Context, userID int64) ([]SessionInfo, error) {
	return r.sessions[userID], nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, userID int64, sessionID string) error {
	var kept []SessionInfo
	for _, session := range r.sessions[userID] {
		if session.ID != sessionID {
			kept = append(kept, session)
		}
	}
	r.sessions[userID] = kept
	return nil
}

func (r *fakeSessionRepo) RevokeOthers(_ context.Context, userID int64, currentSessionID string) error {
	var kept []SessionInfo
	for _, session := range r.sessions[userID] {
		if session.ID == currentSessionID {
			kept = append(kept, session)
		}
	}
	r.sessions[userID] = kept
	return nil
}

func (r *fakeSessionRepo) RevokeAll(_ context.Context, userID int64) error {
	r.sessions[userID] = nil
	return nil
}

func newTestService() (*Service, *fakeAccountRepo, *fakePreferencesRepo, *fakeSessionRepo) {
	accounts := newFakeAccountRepo()
	preferences := newFakePreferencesRepo()
	sessions := newFakeSessionRepo()
	service := NewService(accounts, preferences, sessions, slog.New(slog.DiscardHandler))
	return service, accounts, preferences, sessions
}

// # Tests

func TestUpdateProfilePatchesOnlyProvidedFields(t *testing.T) {
	service, accounts, _, _ := newTestService()
	accounts.users[1] = &auth.User{ID: 1, Email: "ada@example.com", DisplayName: "Ada", Phone: "+33100000000"}

	newName := "Ada L."
	updated, err := service.UpdateProfile(context.Background(), 1, UpdateProfileInput{DisplayName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Ada L.", updated.DisplayName)
	// Untouched fields keep their stored values.
	assert.Equal(t, "+33100000000", updated.Phone)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	service, _, _, _ := newTestService()

	name := "Ghost"
	_, err := service.UpdateProfile(context.Background(), 99, UpdateProfileInput{DisplayName: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetPreferencesDefaultsWhenUnset(t *testing.T) {
	service, _, _, _ := newTestService()

	prefs, err := service.GetPreferences(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), prefs.UserID)
	assert.Equal(t, "EUR", prefs.Currency)
	assert.Equal(t, "en-GB", prefs.Locale)
	assert.False(t, prefs.NewsletterOptIn)
}

func TestGetPreferencesReturnsStoredSettings(t *testing.T) {
	service, _, preferences, _ := newTestService()
	require.NoError(t, preferences.Upsert(context.Background(), &Preferences{
		UserID: 42, Currency: "USD", Locale: "en-US", NewsletterOptIn: true,
	}))

	prefs, err := service.GetPreferences(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "USD", prefs.Currency)
	assert.True(t, prefs.NewsletterOptIn)
}

func TestUpdatePreferencesStampsUpdateTime(t *testing.T) {
	service, _, preferences, _ := newTestService()

	before := time.Now()
	require.NoError(t, service.UpdatePreferences(context.Background(), &Preferences{UserID: 7, Currency: "EUR", Locale: "fr-FR"}))

	stored := preferences.prefs[7]
	require.NotNil(t, stored)
	assert.False(t, stored.UpdatedAt.Before(before))
}

func TestRevokeOtherSessionsKeepsCurrent(t *testing.T) {
	service, _, _, sessions := newTestService()
	sessions.sessions[1] = []SessionInfo{
		{ID: "current", DeviceName: "Chrome on Windows"},
		{ID: "stale-phone", DeviceName: "Safari on iPhone"},
		{ID: "stale-tablet", DeviceName: "Chrome on Android"},
	}

	require.NoError(t, service.RevokeOtherSessions(context.Background(), 1, "current"))

	remaining, err := service.ListSessions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "current", remaining[0].ID)
}

func TestDeleteAccountRevokesEverySession(t *testing.T) {
	service, accounts, _, sessions := newTestService()
	accounts.users[1] = &auth.User{ID: 1, Email: "ada@example.com"}
	sessions.sessions[1] = []SessionInfo{{ID: "a"}, {ID: "b"}}

	require.NoError(t, service.DeleteAccount(context.Background(), 1))

	remaining, err := service.ListSessions(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = service.GetProfile(context.Background(), 1)
	assert.True(t, apperr.IsNotFound(err))
}
