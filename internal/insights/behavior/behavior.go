// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package behavior ingests storefront interaction events.

Events arrive from the web client, are validated, counted, and published to
the Kafka behavior stream for downstream analytics. Product views are
additionally mirrored into Redis so the recommendation pipeline can read a
shopper's recent history without consuming the stream.
*/
package behavior

import "time"

// Event kinds accepted from the storefront.
const (
	KindProductView = "product_view"
	KindSearch      = "search"
	KindCartAdd     = "cart_add"
	KindCheckout    = "checkout"
)

// Event is a single storefront interaction.
//
// UserID is nil for anonymous shoppers; VisitorID always carries the
// client-generated identity so anonymous history still accumulates.
type Event struct {
	Kind       string    `json:"kind"`
	VisitorID  string    `json:"visitor_id"`
	UserID     *int64    `json:"user_id,omitempty"`
	ProductID  int64     `json:"product_id,omitempty"`
	Query      string    `json:"query,omitempty"`
	ValueCents int64     `json:"value_cents,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Global field names for validation
const (
	FieldKind      = "kind"
	FieldVisitorID = "visitor_id"
	FieldProductID = "product_id"
)
