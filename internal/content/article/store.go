// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package article

import (
	"context"

	"github.com/veloura/veloura/pkg/pagination"
)

/*
Repository defines the persistence contract for editorial content.

Implementations:
  - PostgresRepository (store_postgres.go)
*/
type Repository interface {
	// List returns a page of articles, newest publication first.
	// With publishedOnly, drafts are excluded.
	List(context context.Context, publishedOnly bool, page pagination.Params) ([]*Article, int, error)

	// FindByID retrieves an article by primary key.
	FindByID(context context.Context, id int64) (*Article, error)

	// FindBySlug retrieves an article by its public URL slug.
	FindBySlug(context context.Context, slug string) (*Article, error)

	// Create persists a new article. The database assigns the ID.
	Create(context context.Context, a *Article) error

	// Update overwrites an article's mutable fields.
	Update(context context.Context, a *Article) error

	// Delete removes an article permanently.
	Delete(context context.Context, id int64) error
}
