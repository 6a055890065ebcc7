// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package session

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *MemoryStorage) {
	storage := NewMemoryStorage()
	return NewStore(storage, slog.New(slog.DiscardHandler)), storage
}

func adminUser() User {
	return User{ID: 1, Email: "ops@veloura.shop", DisplayName: "Ops", Role: "admin", Status: "active"}
}

func customerUser() User {
	return User{ID: 2, Email: "shopper@example.com", DisplayName: "Shopper", Role: "customer", Status: "active"}
}

func TestLoginSetsSessionAndAdminFlag(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, adminUser()))
	snapshot := store.Snapshot()
	require.NotNil(t, snapshot.User)
	assert.Equal(t, int64(1), snapshot.User.ID)
	assert.True(t, snapshot.IsAdmin)

	require.NoError(t, store.Login(ctx, customerUser()))
	snapshot = store.Snapshot()
	require.NotNil(t, snapshot.User)
	assert.False(t, snapshot.IsAdmin)
}

func TestLogoutClearsMemoryAndStorage(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, adminUser()))
	require.NoError(t, store.Logout(ctx))

	snapshot := store.Snapshot()
	assert.Nil(t, snapshot.User)
	assert.False(t, snapshot.IsAdmin)

	for _, key := range []string{adminKey, customerKey, rememberAdminKey, rememberCustomerKey} {
		_, present, err := storage.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, present, "key %q should be absent after logout", key)
	}

	// Idempotent when already logged out.
	require.NoError(t, store.Logout(ctx))
}

func TestLoginThenLogoutMatchesFreshState(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, customerUser()))
	require.NoError(t, store.Logout(ctx))

	for _, key := range []string{adminKey, customerKey} {
		_, present, err := storage.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, present)
	}
}

func TestInitializeDegradesOnCorruptBlob(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, adminKey, "{not json", time.Hour))

	require.NoError(t, store.Initialize(ctx))

	snapshot := store.Snapshot()
	assert.Nil(t, snapshot.User)
	assert.False(t, snapshot.IsAdmin)
	assert.False(t, snapshot.IsLoading)

	_, present, err := storage.Get(ctx, adminKey)
	require.NoError(t, err)
	assert.False(t, present, "corrupt blob should be cleared")
}

func TestInitializeAdminBlobTakesPrecedence(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, adminKey, `{"id":1,"email":"ops@veloura.shop","role":"admin"}`, time.Hour))
	require.NoError(t, storage.Set(ctx, customerKey, `{"id":2,"email":"shopper@example.com","role":"customer"}`, time.Hour))

	require.NoError(t, store.Initialize(ctx))

	snapshot := store.Snapshot()
	require.NotNil(t, snapshot.User)
	assert.Equal(t, int64(1), snapshot.User.ID)
	assert.True(t, snapshot.IsAdmin)

	// The customer blob is ignored, not cleared.
	_, present, err := storage.Get(ctx, customerKey)
	require.NoError(t, err)
	assert.True(t, present)
}

func TestInitializeCustomerBlobNeverGrantsAdmin(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, customerKey, `{"id":2,"email":"shopper@example.com","role":"admin"}`, time.Hour))

	require.NoError(t, store.Initialize(ctx))

	snapshot := store.Snapshot()
	require.NotNil(t, snapshot.User)
	assert.False(t, snapshot.IsAdmin)
}

func TestInitializeEmptyStorageStaysLoggedOut(t *testing.T) {
	store, _ := newTestStore()

	assert.True(t, store.Snapshot().IsLoading)
	require.NoError(t, store.Initialize(context.Background()))

	snapshot := store.Snapshot()
	assert.Nil(t, snapshot.User)
	assert.False(t, snapshot.IsAdmin)
	assert.False(t, snapshot.IsLoading)
}

func TestRoleSwitchSwapsStorageKeys(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, adminUser()))
	_, adminPresent, err := storage.Get(ctx, adminKey)
	require.NoError(t, err)
	require.True(t, adminPresent)

	require.NoError(t, store.Login(ctx, customerUser()))

	_, adminPresent, err = storage.Get(ctx, adminKey)
	require.NoError(t, err)
	assert.False(t, adminPresent, "admin blob should be cleared on customer login")

	_, customerPresent, err := storage.Get(ctx, customerKey)
	require.NoError(t, err)
	assert.True(t, customerPresent)

	assert.False(t, store.Snapshot().IsAdmin)
}

func TestReconcileLogsOutOnExternalClear(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, adminUser()))
	require.NoError(t, storage.Delete(ctx, adminKey, customerKey))

	store.reconcile(ctx)

	assert.Nil(t, store.Snapshot().User)
}

func TestReconcileKeepsLiveSession(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.Login(ctx, adminUser()))
	store.reconcile(ctx)

	assert.NotNil(t, store.Snapshot().User)
}

func TestRememberEmailRoundTrip(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	require.NoError(t, store.RememberEmail(ctx, true, "ops@veloura.shop"))
	require.NoError(t, store.RememberEmail(ctx, false, "shopper@example.com"))

	assert.Equal(t, "ops@veloura.shop", store.RememberedEmail(ctx, true))
	assert.Equal(t, "shopper@example.com", store.RememberedEmail(ctx, false))
}

func TestMemoryStorageExpiry(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "k", "v", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, present, err := storage.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, present)
}
