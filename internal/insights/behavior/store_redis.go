// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package behavior

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veloura/veloura/internal/platform/constants"
)

// History depth and retention for recent views.
const (
	recentViewsDepth = 20
	recentViewsTTL   = 30 * 24 * time.Hour
)

// RedisRecentViews implements RecentViewsRepository using a capped Redis list.
//
// # Key Layout
//
//   - behavior:recent_views:<visitorID> → list of product IDs, newest first
type RedisRecentViews struct {
	client *redis.Client
}

// NewRecentViewsRepository creates a new Redis-backed view history store.
func NewRecentViewsRepository(client *redis.Client) *RedisRecentViews {
	return &RedisRecentViews{client: client}
}

/*
RecordView prepends a product to the visitor's history.

Description: The product is first removed from the list so repeat views move
it to the front instead of duplicating it. The list is trimmed to the
configured depth and the key's retention refreshed.

Parameters:
  - context: context.Context
  - visitorID: string
  - productID: int64

Returns:
  - error: Redis pipeline failures
*/
func (repository *RedisRecentViews) RecordView(context context.Context, visitorID string, productID int64) error {
	key := constants.RedisPrefixRecentViews + visitorID
	member := strconv.FormatInt(productID, 10)

	pipe := repository.client.TxPipeline()
	pipe.LRem(context, key, 0, member)
	pipe.LPush(context, key, member)
	pipe.LTrim(context, key, 0, recentViewsDepth-1)
	pipe.Expire(context, key, recentViewsTTL)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis: failed to record view: %w", err)
	}
	return nil
}

/*
ListRecent returns the visitor's viewed product IDs, most recent first.

Parameters:
  - context: context.Context
  - visitorID: string

Returns:
  - []int64: Product IDs, empty when no history exists
  - error: Redis failures
*/
func (repository *RedisRecentViews) ListRecent(context context.Context, visitorID string) ([]int64, error) {
	key := constants.RedisPrefixRecentViews + visitorID

	members, err := repository.client.LRange(context, key, 0, recentViewsDepth-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to list recent views: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			// Skip corrupted entries rather than failing the whole read.
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}
