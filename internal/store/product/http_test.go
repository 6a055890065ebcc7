// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package product

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/ctxkey"
	"github.com/veloura/veloura/internal/platform/sec"
)

func listProducts(t *testing.T, handler *Handler, target string, claims *sec.AuthClaims) []Product {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, target, nil)
	if claims != nil {
		request = request.WithContext(context.WithValue(request.Context(), ctxkey.KeyUser, claims))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestListDraftVisibilityByRole(t *testing.T) {
	service, repo, _ := newTestService()
	handler := NewHandler(service, slog.New(slog.DiscardHandler))

	require.NoError(t, repo.Create(context.Background(), &Product{Name: "Live", Slug: "live", IsPublished: true}))
	require.NoError(t, repo.Create(context.Background(), &Product{Name: "Draft", Slug: "draft"}))

	staff := &sec.AuthClaims{UserID: 1, Role: string(sec.RoleStaff)}
	customer := &sec.AuthClaims{UserID: 2, Role: string(sec.RoleCustomer)}

	tests := []struct {
		name   string
		target string
		claims *sec.AuthClaims
		want   int
	}{
		{name: "anonymous never sees drafts", target: "/?include_drafts=true", claims: nil, want: 1},
		{name: "customer never sees drafts", target: "/?include_drafts=true", claims: customer, want: 1},
		{name: "staff sees drafts on request", target: "/?include_drafts=true", claims: staff, want: 2},
		{name: "staff default stays published-only", target: "/", claims: staff, want: 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Len(t, listProducts(t, handler, testCase.target, testCase.claims), testCase.want)
		})
	}
}
