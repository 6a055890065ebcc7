// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package stats

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// # Test Doubles

type fakeRepo struct {
	signupDays int
	topLimit   int
}

func (r *fakeRepo) Overview(_ context.Context) (*Overview, error) {
	return &Overview{Users: 120, Products: 45, Articles: 12, Vouchers: 3}, nil
}

func (r *fakeRepo) SignupsPerDay(_ context.Context, days int) ([]SignupPoint, error) {
	r.signupDays = days
	return nil, nil
}

func (r *fakeRepo) TopViewedProducts(_ context.Context, limit int) ([]TopProduct, error) {
	r.topLimit = limit
	return nil, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := &fakeRepo{}
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

// # Tests

func TestOverviewPassesThroughTotals(t *testing.T) {
	service, _ := newTestService()

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, overview.Users)
	assert.Equal(t, 45, overview.Products)
}

func TestSignupsPerDayClampsWindow(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{name: "zero falls back to default", days: 0, want: 30},
		{name: "negative falls back to default", days: -5, want: 30},
		{name: "in range passes through", days: 14, want: 14},
		{name: "oversized clamps to maximum", days: 365, want: 90},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service, repo := newTestService()

			_, err := service.SignupsPerDay(context.Background(), testCase.days)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, repo.signupDays)
		})
	}
}

func TestTopViewedProductsClampsLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero falls back to default", limit: 0, want: 10},
		{name: "in range passes through", limit: 25, want: 25},
		{name: "oversized clamps to maximum", limit: 500, want: 50},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			service, repo := newTestService()

			_, err := service.TopViewedProducts(context.Background(), testCase.limit)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, repo.topLimit)
		})
	}
}
