// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package article

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/ctxkey"
	"github.com/veloura/veloura/internal/platform/sec"
)

func listArticles(t *testing.T, handler *Handler, target string, claims *sec.AuthClaims) []Article {
	t.Helper()

	request := httptest.NewRequest(http.MethodGet, target, nil)
	if claims != nil {
		request = request.WithContext(context.WithValue(request.Context(), ctxkey.KeyUser, claims))
	}

	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []Article `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestListDraftVisibilityByRole(t *testing.T) {
	service, repo := newTestService()
	handler := NewHandler(service)

	require.NoError(t, repo.Create(context.Background(), &Article{Title: "Live", Slug: "live", IsPublished: true}))
	require.NoError(t, repo.Create(context.Background(), &Article{Title: "Draft", Slug: "draft"}))

	staff := &sec.AuthClaims{UserID: 1, Role: string(sec.RoleStaff)}
	customer := &sec.AuthClaims{UserID: 2, Role: string(sec.RoleCustomer)}

	tests := []struct {
		name   string
		claims *sec.AuthClaims
		want   int
	}{
		{name: "anonymous never sees drafts", claims: nil, want: 1},
		{name: "customer never sees drafts", claims: customer, want: 1},
		{name: "staff sees drafts on request", claims: staff, want: 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Len(t, listArticles(t, handler, "/?include_drafts=true", testCase.claims), testCase.want)
		})
	}
}
