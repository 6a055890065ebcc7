// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package product

import (
	"context"

	"github.com/veloura/veloura/pkg/pagination"
)

// # Listing Filters

// ListFilter narrows a catalogue listing. Zero values mean "no constraint".
type ListFilter struct {
	CategorySlug  string
	TagSlug       string
	PriceMinCents int64
	PriceMaxCents int64
	Sort          string // "newest", "price_asc", "price_desc", "name"
	PublishedOnly bool
}

// # Product Data Access

// Repository defines the persistence contract for catalogue products.
type Repository interface {

	/*
		FindByID returns the product with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Product: Hydrated entity with tags
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Product, error)

	/*
		FindBySlug returns the product with the given URL slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Product: Hydrated entity with tags
		  - error: apperr.NotFound or retrieval failures
	*/
	FindBySlug(context context.Context, slug string) (*Product, error)

	/*
		List returns a filtered, paginated slice of products plus the total count.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter
		  - page: pagination.Params

		Returns:
		  - []*Product: Page of products
		  - int: Total matching row count
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter, page pagination.Params) ([]*Product, int, error)

	/*
		FindByIDs returns products for the given set of IDs, preserving order.

		Parameters:
		  - context: context.Context
		  - ids: []int64

		Returns:
		  - []*Product: Found products (missing IDs are skipped)
		  - error: Retrieval failures
	*/
	FindByIDs(context context.Context, ids []int64) ([]*Product, error)

	/*
		Create persists a new product and assigns its generated ID.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: Conflict on duplicate slug or storage failures
	*/
	Create(context context.Context, product *Product) error

	/*
		Update persists all mutable fields of an existing product.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, product *Product) error

	/*
		Delete removes a product permanently.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, id int64) error

	/*
		AdjustStock applies a relative stock delta, clamping at zero.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - delta: int

		Returns:
		  - error: Storage failures
	*/
	AdjustStock(context context.Context, id int64, delta int) error

	/*
		IncrementViewCount atomically bumps a product's popularity counter.

		Parameters:
		  - context: context.Context
		  - id: int64
		  - delta: int64

		Returns:
		  - error: Storage failures
	*/
	IncrementViewCount(context context.Context, id int64, delta int64) error
}

// # Search Index Access

// SearchIndex defines the derived full-text index over published products.
type SearchIndex interface {

	/*
		Index upserts a product document into the search index.

		Parameters:
		  - context: context.Context
		  - doc: SearchDocument

		Returns:
		  - error: Indexing failures
	*/
	Index(context context.Context, doc SearchDocument) error

	/*
		Remove deletes a product document from the search index.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: Deletion failures (absence is not an error)
	*/
	Remove(context context.Context, id int64) error

	/*
		Search runs a fuzzy full-text query over the index.

		Parameters:
		  - context: context.Context
		  - query: string
		  - page: pagination.Params

		Returns:
		  - []SearchDocument: Matching documents, best first
		  - int: Total hit count
		  - error: Query failures
	*/
	Search(context context.Context, query string, page pagination.Params) ([]SearchDocument, int, error)
}
