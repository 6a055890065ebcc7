// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package guard

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/console/session"
)

const loginURL = "/admin/login"

func protected() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		writer.Write([]byte("dashboard"))
	})
}

func serve(t *testing.T, store *session.Store) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	RequireAdmin(store, loginURL)(protected()).ServeHTTP(recorder, request)
	return recorder
}

func TestGuardHoldsWhileLoading(t *testing.T) {
	// A fresh store is loading until Initialize resolves, and the guard
	// must not decide either way, even if an admin is about to load.
	store := session.NewStore(session.NewMemoryStorage(), slog.New(slog.DiscardHandler))

	recorder := serve(t, store)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, "1", recorder.Header().Get("Retry-After"))
}

func TestGuardRedirectsNonAdmin(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), slog.New(slog.DiscardHandler))
	require.NoError(t, store.Initialize(context.Background()))

	recorder := serve(t, store)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, loginURL, recorder.Header().Get("Location"))
}

func TestGuardRedirectsCustomer(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), slog.New(slog.DiscardHandler))
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Login(ctx, session.User{ID: 2, Email: "shopper@example.com", Role: "customer"}))

	recorder := serve(t, store)

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
}

func TestGuardServesAdmin(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), slog.New(slog.DiscardHandler))
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Login(ctx, session.User{ID: 1, Email: "ops@veloura.shop", Role: "admin"}))

	recorder := serve(t, store)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "dashboard", recorder.Body.String())
}
