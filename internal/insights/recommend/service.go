// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package recommend

import (
	"context"
	"log/slog"

	"github.com/veloura/veloura/internal/store/product"
)

// Service builds recommendation feeds.
type Service struct {
	history    ViewHistory
	catalog    Catalog
	popularity PopularityRepository
	logger     *slog.Logger
}

/*
NewService creates a recommendation service.

Parameters:
  - history: recent view storage, may be nil when Redis is absent
  - catalog: product hydration source
  - popularity: fallback ranking source
  - logger: structured logger

Returns:
  - *Service: the initialized service
*/
func NewService(history ViewHistory, catalog Catalog, popularity PopularityRepository, logger *slog.Logger) *Service {
	return &Service{
		history:    history,
		catalog:    catalog,
		popularity: popularity,
		logger:     logger,
	}
}

/*
Feed returns up to FeedSize published products for a visitor.

Recently viewed products come first, in most-recent order. The remainder
is filled from the most viewed products across the catalogue, skipping
anything already in the rail. An empty visitor ID yields a pure
popularity feed.

Parameters:
  - context: request context
  - visitorID: anonymous visitor identifier, may be empty
  - exclude: product IDs to keep out of the rail, typically cart contents

Returns:
  - []*product.Product: the ranked feed
  - error: hydration or fallback query failure
*/
func (service *Service) Feed(context context.Context, visitorID string, exclude []int64) ([]*product.Product, error) {
	feed := make([]*product.Product, 0, FeedSize)
	seen := make(map[int64]bool, FeedSize+len(exclude))
	for _, id := range exclude {
		seen[id] = true
	}

	if visitorID != "" && service.history != nil {
		recentIDs, err := service.history.ListRecent(context, visitorID)
		if err != nil {
			// History is a cache. Fall through to the popularity feed.
			service.logger.Warn("recommend_history_unavailable", slog.String("error", err.Error()))
		} else if len(recentIDs) > 0 {
			recent, err := service.catalog.FindByIDs(context, recentIDs)
			if err != nil {
				return nil, err
			}
			for _, item := range recent {
				if len(feed) == FeedSize {
					break
				}
				if seen[item.ID] {
					continue
				}
				feed = append(feed, item)
				seen[item.ID] = true
			}
		}
	}

	if len(feed) < FeedSize {
		// Fetch extra so excluded and already-ranked products can be skipped.
		popularIDs, err := service.popularity.MostViewedIDs(context, FeedSize+len(seen))
		if err != nil {
			return nil, err
		}
		ranked := make([]int64, 0, len(popularIDs))
		for _, id := range popularIDs {
			if !seen[id] {
				ranked = append(ranked, id)
			}
		}
		if len(ranked) > 0 {
			popular, err := service.catalog.FindByIDs(context, ranked)
			if err != nil {
				return nil, err
			}
			for _, item := range popular {
				if len(feed) == FeedSize {
					break
				}
				feed = append(feed, item)
			}
		}
	}

	return feed, nil
}
