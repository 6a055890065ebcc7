// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package behavior

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published []Event
	fail      bool
}

func (p *fakePublisher) Publish(_ context.Context, event Event) error {
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeRecentViews struct {
	views map[string][]int64
}

func newFakeRecentViews() *fakeRecentViews {
	return &fakeRecentViews{views: make(map[string][]int64)}
}

func (r *fakeRecentViews) RecordView(_ context.Context, visitorID string, productID int64) error {
	r.views[visitorID] = append([]int64{productID}, r.views[visitorID]...)
	return nil
}

func (r *fakeRecentViews) ListRecent(_ context.Context, visitorID string) ([]int64, error) {
	return r.views[visitorID], nil
}

type fakeViewCounter struct {
	counts map[int64]int64
}

func (c *fakeViewCounter) IncrementViewCount(_ context.Context, productID, delta int64) error {
	if c.counts == nil {
		c.counts = make(map[int64]int64)
	}
	c.counts[productID] += delta
	return nil
}

func newTestService() (*Service, *fakePublisher, *fakeRecentViews) {
	publisher := &fakePublisher{}
	recentViews := newFakeRecentViews()
	service := NewService(publisher, recentViews, &fakeViewCounter{}, slog.New(slog.DiscardHandler))
	return service, publisher, recentViews
}

func TestTrackPublishesAndStampsTime(t *testing.T) {
	service, publisher, _ := newTestService()

	err := service.Track(context.Background(), Event{
		Kind:      KindSearch,
		VisitorID: "v-123",
		Query:     "linen dress",
	})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.False(t, publisher.published[0].OccurredAt.IsZero())
}

func TestTrackProductViewUpdatesHistory(t *testing.T) {
	service, _, recentViews := newTestService()

	err := service.Track(context.Background(), Event{
		Kind:      KindProductView,
		VisitorID: "v-123",
		ProductID: 42,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{42}, recentViews.views["v-123"])
}

func TestTrackRejectsInvalidEvents(t *testing.T) {
	service, _, _ := newTestService()

	tests := []struct {
		name  string
		event Event
	}{
		{name: "unknown kind", event: Event{Kind: "hover", VisitorID: "v-1"}},
		{name: "missing visitor", event: Event{Kind: KindSearch}},
		{name: "view without product", event: Event{Kind: KindProductView, VisitorID: "v-1"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := service.Track(context.Background(), testCase.event)
			require.Error(t, err)
		})
	}
}

func TestTrackSwallowsPublishFailures(t *testing.T) {
	service, publisher, _ := newTestService()
	publisher.fail = true

	err := service.Track(context.Background(), Event{
		Kind:      KindSearch,
		VisitorID: "v-123",
		Query:     "coat",
	})

	// The storefront only needs an acknowledgement.
	require.NoError(t, err)
}
