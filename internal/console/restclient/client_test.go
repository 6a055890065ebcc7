// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package restclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginInstallsBearerToken(t *testing.T) {
	var sawAuth string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/v1/auth/login":
			json.NewEncoder(writer).Encode(map[string]any{
				"data": map[string]any{
					"access_token": "token-123",
					"user":         map[string]any{"id": 1, "email": "ops@veloura.shop", "role": "admin"},
				},
			})
		case "/api/v1/stats/overview":
			sawAuth = request.Header.Get("Authorization")
			json.NewEncoder(writer).Encode(map[string]any{
				"data": map[string]int{"users": 40, "products": 120, "articles": 8, "vouchers": 3},
			})
		}
	}))
	defer server.Close()

	client := New(server.URL)
	user, err := client.Login(context.Background(), "ops@veloura.shop", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	overview, err := client.StatsOverview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, overview.Products)
	assert.Equal(t, "Bearer token-123", sawAuth)
}

func TestErrorEnvelopeBecomesPlainMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{
			"error": "Invalid email or password",
			"code":  "UNAUTHORIZED",
		})
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Login(context.Background(), "ops@veloura.shop", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestListDecodesPaginationMeta(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "true", request.URL.Query().Get("include_drafts"))
		json.NewEncoder(writer).Encode(map[string]any{
			"data": []map[string]any{{"id": 1, "name": "Linen Shirt", "slug": "linen-shirt"}},
			"meta": map[string]any{"total": 41, "total_pages": 3},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	products, meta, err := client.ListProducts(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.NotNil(t, meta)
	assert.Equal(t, int64(41), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestLogoutDropsTokenEvenOnBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/v1/auth/logout" {
			writer.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(writer).Encode(map[string]string{"error": "session backend down"})
			return
		}
		// Echo whether a token arrived.
		if request.Header.Get("Authorization") != "" {
			writer.WriteHeader(http.StatusOK)
			json.NewEncoder(writer).Encode(map[string]any{"data": map[string]any{}})
			return
		}
		writer.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(writer).Encode(map[string]string{"error": "missing token"})
	}))
	defer server.Close()

	client := New(server.URL)
	client.SetToken("stale-token")

	err := client.Logout(context.Background())
	require.Error(t, err)

	// The local token is gone regardless of the backend failure.
	_, err = client.StatsOverview(context.Background())
	require.Error(t, err)
	assert.Equal(t, "missing token", err.Error())
}

func TestUnreachableServerReturnsErrUnavailable(t *testing.T) {
	client := New("http://127.0.0.1:1")
	_, err := client.StatsOverview(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNoContentResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodDelete, request.Method)
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := New(server.URL)
	require.NoError(t, client.DeleteProduct(context.Background(), 7))
}
