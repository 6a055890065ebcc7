// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package recommend

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/store/product"
)

type fakeHistory struct {
	views map[string][]int64
	fail  bool
}

func (history *fakeHistory) ListRecent(_ context.Context, visitorID string) ([]int64, error) {
	if history.fail {
		return nil, errors.New("redis unavailable")
	}
	return history.views[visitorID], nil
}

type fakeCatalog struct {
	products map[int64]*product.Product
}

func (catalog *fakeCatalog) FindByIDs(_ context.Context, ids []int64) ([]*product.Product, error) {
	found := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if item, ok := catalog.products[id]; ok {
			found = append(found, item)
		}
	}
	return found, nil
}

type fakePopularity struct {
	ranked []int64
}

func (popularity *fakePopularity) MostViewedIDs(_ context.Context, limit int) ([]int64, error) {
	if limit > len(popularity.ranked) {
		limit = len(popularity.ranked)
	}
	return popularity.ranked[:limit], nil
}

func newTestService(history *fakeHistory, catalog *fakeCatalog, popularity *fakePopularity) *Service {
	return NewService(history, catalog, popularity, slog.New(slog.DiscardHandler))
}

func seedCatalog(count int) *fakeCatalog {
	catalog := &fakeCatalog{products: make(map[int64]*product.Product)}
	for id := int64(1); id <= int64(count); id++ {
		catalog.products[id] = &product.Product{ID: id, IsPublished: true}
	}
	return catalog
}

func TestFeedLeadsWithRecentViews(t *testing.T) {
	history := &fakeHistory{views: map[string][]int64{"visitor-1": {5, 3}}}
	catalog := seedCatalog(20)
	popularity := &fakePopularity{ranked: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}}

	feed, err := newTestService(history, catalog, popularity).Feed(context.Background(), "visitor-1", nil)
	require.NoError(t, err)
	require.Len(t, feed, FeedSize)

	assert.Equal(t, int64(5), feed[0].ID)
	assert.Equal(t, int64(3), feed[1].ID)
}

func TestFeedSkipsRecentDuplicatesInFallback(t *testing.T) {
	history := &fakeHistory{views: map[string][]int64{"visitor-1": {1, 2}}}
	catalog := seedCatalog(20)
	popularity := &fakePopularity{ranked: []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}}

	feed, err := newTestService(history, catalog, popularity).Feed(context.Background(), "visitor-1", nil)
	require.NoError(t, err)
	require.Len(t, feed, FeedSize)

	counts := make(map[int64]int)
	for _, item := range feed {
		counts[item.ID]++
	}
	for id, count := range counts {
		assert.Equal(t, 1, count, "product %d appears more than once", id)
	}
}

func TestFeedAnonymousFallsBackToPopularity(t *testing.T) {
	history := &fakeHistory{views: map[string][]int64{}}
	catalog := seedCatalog(6)
	popularity := &fakePopularity{ranked: []int64{4, 2, 6}}

	feed, err := newTestService(history, catalog, popularity).Feed(context.Background(), "", nil)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, int64(4), feed[0].ID)
	assert.Equal(t, int64(2), feed[1].ID)
	assert.Equal(t, int64(6), feed[2].ID)
}

func TestFeedHonorsExclusions(t *testing.T) {
	history := &fakeHistory{views: map[string][]int64{"visitor-1": {5, 3}}}
	catalog := seedCatalog(8)
	popularity := &fakePopularity{ranked: []int64{1, 2, 3, 4, 5, 6, 7, 8}}

	feed, err := newTestService(history, catalog, popularity).Feed(context.Background(), "visitor-1", []int64{3, 1})
	require.NoError(t, err)

	for _, item := range feed {
		assert.NotEqual(t, int64(3), item.ID)
		assert.NotEqual(t, int64(1), item.ID)
	}
	assert.Equal(t, int64(5), feed[0].ID)
}

func TestFeedSurvivesHistoryOutage(t *testing.T) {
	history := &fakeHistory{fail: true}
	catalog := seedCatalog(4)
	popularity := &fakePopularity{ranked: []int64{1, 2, 3, 4}}

	feed, err := newTestService(history, catalog, popularity).Feed(context.Background(), "visitor-1", nil)
	require.NoError(t, err)
	assert.Len(t, feed, 4)
}

func TestFeedCapsAtFeedSize(t *testing.T) {
	recent := make([]int64, 0, 30)
	for id := int64(1); id <= 30; id++ {
		recent = append(recent, id)
	}
	history := &fakeHistory{views: map[string][]int64{"visitor-1": recent}}
	catalog := seedCatalog(30)
	popularity := &fakePopularity{ranked: recent}

	feed, err := newTestService(history, catalog, popularity).Feed(context.Background(), "visitor-1", nil)
	require.NoError(t, err)
	assert.Len(t, feed, FeedSize)
}
