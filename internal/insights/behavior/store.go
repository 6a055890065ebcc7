// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package behavior

import "context"

// Publisher delivers events to the analytics stream.
//
// Implementations:
//   - KafkaPublisher (publisher_kafka.go)
//   - NoopPublisher, used when no brokers are configured
type Publisher interface {
	Publish(context context.Context, event Event) error
	Close() error
}

// ViewCounter bumps a product's persistent popularity counter. Satisfied by
// the catalogue's Postgres repository.
type ViewCounter interface {
	IncrementViewCount(context context.Context, productID int64, delta int64) error
}

// RecentViewsRepository keeps a short per-visitor history of viewed products.
//
// Implementations:
//   - RedisRecentViews (store_redis.go)
type RecentViewsRepository interface {
	// RecordView prepends a product to the visitor's history, deduplicating
	// and capping it at the configured depth.
	RecordView(context context.Context, visitorID string, productID int64) error

	// ListRecent returns the visitor's history, most recent first.
	ListRecent(context context.Context, visitorID string) ([]int64, error)
}
