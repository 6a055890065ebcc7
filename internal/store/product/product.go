// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

/*
Package product implements the storefront catalogue core.

It defines the Product entity, its persistence contracts, and the discovery
surface (filtered listing plus full-text search through Elasticsearch).

# Architecture

  - Entities: Product and its transport-safe views.
  - Repository: Postgres for the source of truth, Elasticsearch as the
    derived search index.
  - Service: Business rules around slugs, publication state, and stock.
*/
package product

import "time"

// # Domain Entities

// Product represents a sellable item in the Veloura catalogue.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Currency    string    `json:"currency"`
	CategoryID  int64     `json:"category_id"`
	ImageURL    string    `json:"image_url,omitempty"`
	Stock       int       `json:"stock"`
	IsPublished bool      `json:"is_published"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchDocument is the denormalized projection stored in the search index.
//
// It carries only what the storefront search page renders, keeping the
// index lean and re-indexing cheap.
type SearchDocument struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Slug       string   `json:"slug"`
	Descriptor string   `json:"description"`
	PriceCents int64    `json:"price_cents"`
	Currency   string   `json:"currency"`
	ImageURL   string   `json:"image_url,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price_cents"
	FieldCurrency    = "currency"
	FieldCategoryID  = "category_id"
	FieldStock       = "stock"
	FieldQuery       = "q"
)
