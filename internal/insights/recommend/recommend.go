// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package recommend assembles the personalized product feed.

The feed leads with products the visitor recently viewed and tops up with
the catalogue's most viewed items, so anonymous first-time visitors still
get a populated rail.
*/
package recommend

import (
	"context"

	"github.com/veloura/veloura/internal/store/product"
)

// FeedSize is the number of products in a recommendation rail.
const FeedSize = 12

// ViewHistory reads a visitor's recent product views. Satisfied by the
// behavior package's Redis store.
type ViewHistory interface {
	ListRecent(context context.Context, visitorID string) ([]int64, error)
}

// Catalog hydrates ranked product IDs. Satisfied by the catalogue's
// Postgres repository.
type Catalog interface {
	FindByIDs(context context.Context, ids []int64) ([]*product.Product, error)
}

// PopularityRepository supplies the fallback ranking.
//
// Implementations:
//   - PostgresPopularity (store_postgres.go)
type PopularityRepository interface {
	// MostViewedIDs returns published product IDs ordered by view count.
	MostViewedIDs(context context.Context, limit int) ([]int64, error)
}
