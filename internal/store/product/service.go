// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package product

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/pkg/pagination"
	"github.com/veloura/veloura/pkg/slug"
)

// # Service Layer

// Service orchestrates catalogue business logic.
//
// # Search Index Consistency
//
// Postgres is the source of truth. Index writes are best-effort side effects:
// a failed index update is logged, never surfaced to the caller, and repaired
// by the next successful write for that product.
type Service struct {
	repository  Repository
	searchIndex SearchIndex
	logger      *slog.Logger
}

// NewService constructs a new catalogue [Service].
func NewService(repo Repository, index SearchIndex, logger *slog.Logger) *Service {
	return &Service{
		repository:  repo,
		searchIndex: index,
		logger:      logger,
	}
}

// # Discovery

/*
List returns a filtered page of the catalogue.

Description: Storefront calls always constrain to published products; the
back-office passes PublishedOnly=false to see drafts.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - page: pagination.Params

Returns:
  - []*Product: Page of products
  - pagination.Meta: Envelope metadata
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter ListFilter, page pagination.Params) ([]*Product, pagination.Meta, error) {
	products, total, err := service.repository.List(context, filter, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("product_service_list_failed: %w", err)
	}

	return products, pagination.NewMeta(page.Page, page.Limit, total), nil
}

/*
GetBySlug resolves a storefront product URL into the full entity.

Parameters:
  - context: context.Context
  - productSlug: string

Returns:
  - *Product: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetBySlug(context context.Context, productSlug string) (*Product, error) {
	return service.repository.FindBySlug(context, productSlug)
}

/*
GetByID returns a product by primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Product: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetByID(context context.Context, id int64) (*Product, error) {
	return service.repository.FindByID(context, id)
}

/*
Search runs full-text discovery over published products.

Description: Queries the Elasticsearch index with fuzzy matching. The index
holds only published products, so no extra visibility filter is needed.

Parameters:
  - context: context.Context
  - query: string
  - page: pagination.Params

Returns:
  - []SearchDocument: Matching documents, best first
  - pagination.Meta: Envelope metadata
  - error: Query failures
*/
func (service *Service) Search(context context.Context, query string, page pagination.Params) ([]SearchDocument, pagination.Meta, error) {
	docs, total, err := service.searchIndex.Search(context, query, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("product_service_search_failed: %w", err)
	}

	return docs, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// # Curation

// CreateInput holds the data required to add a catalogue product.
type CreateInput struct {
	Name        string
	Description string
	PriceCents  int64
	Currency    string
	CategoryID  int64
	ImageURL    string
	Stock       int
	IsPublished bool
	Tags        []string
}

/*
Create adds a new product to the catalogue.

Description: Derives the URL slug from the name, persists the entity, and
mirrors it into the search index when published.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Product: Created entity
  - error: Conflict on duplicate slug or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {
	if input.PriceCents <= 0 {
		return nil, apperr.BadRequest("Price must be positive")
	}

	product := &Product{
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Currency:    input.Currency,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		IsPublished: input.IsPublished,
		Tags:        input.Tags,
	}

	if err := service.repository.Create(context, product); err != nil {
		return nil, fmt.Errorf("product_service_create_failed: %w", err)
	}

	service.syncIndex(context, product)

	service.logger.Info("product_created",
		slog.Int64("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// UpdateInput defines the mutable subset of product fields.
// Nil pointers leave the current value untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	PriceCents  *int64
	Currency    *string
	CategoryID  *int64
	ImageURL    *string
	Stock       *int
	IsPublished *bool
	Tags        []string
}

/*
Update applies a partial set of changes to a product.

Description: A name change regenerates the slug. Publication transitions are
mirrored to the search index: publish upserts the document, unpublish removes it.

Parameters:
  - context: context.Context
  - id: int64
  - input: UpdateInput

Returns:
  - *Product: Updated entity
  - error: Not found, validation, or storage failures
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Product, error) {
	product, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents <= 0 {
			return nil, apperr.BadRequest("Price must be positive")
		}
		product.PriceCents = *input.PriceCents
	}
	if input.Currency != nil {
		product.Currency = *input.Currency
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsPublished != nil {
		product.IsPublished = *input.IsPublished
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}

	if err := service.repository.Update(context, product); err != nil {
		return nil, fmt.Errorf("product_service_update_failed: %w", err)
	}

	service.syncIndex(context, product)

	return product, nil
}

/*
Delete removes a product from the catalogue and the search index.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: Deletion failures
*/
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("product_service_delete_failed: %w", err)
	}

	if err := service.searchIndex.Remove(context, id); err != nil {
		service.logger.Warn("product_index_remove_failed",
			slog.Int64("product_id", id),
			slog.Any("error", err),
		)
	}

	service.logger.Info("product_deleted", slog.Int64("product_id", id))

	return nil
}

// syncIndex mirrors the product's publication state into the search index.
func (service *Service) syncIndex(context context.Context, product *Product) {
	var err error
	if product.IsPublished {
		err = service.searchIndex.Index(context, SearchDocument{
			ID:         product.ID,
			Name:       product.Name,
			Slug:       product.Slug,
			Descriptor: product.Description,
			PriceCents: product.PriceCents,
			Currency:   product.Currency,
			ImageURL:   product.ImageURL,
			Tags:       product.Tags,
		})
	} else {
		err = service.searchIndex.Remove(context, product.ID)
	}

	if err != nil {
		service.logger.Warn("product_index_sync_failed",
			slog.Int64("product_id", product.ID),
			slog.Any("error", err),
		)
	}
}
