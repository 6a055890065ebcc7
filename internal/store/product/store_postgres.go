// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

// The PostgreSQL layer leans on Postgres features to keep discovery queries
// in a single round-trip: COUNT(*) OVER() window counts, json_agg tag
// aggregation, and transactional junction sync on writes.

package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/dberr"
	"github.com/veloura/veloura/pkg/pagination"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed product store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// productColumns is the shared projection for single-row lookups, including
// the aggregated tag slugs.
const productColumns = `
	p.id, p.name, p.slug, p.description, p.pricecents, p.currency,
	p.categoryid, p.imageurl, p.stock, p.ispublished, p.createdat, p.updatedat,
	COALESCE((
		SELECT json_agg(t.slug ORDER BY t.slug)
		FROM store.tag t
		JOIN store.product_tag pt ON t.id = pt.tagid
		WHERE pt.productid = p.id
	), '[]') AS tags
`

/*
List returns a filtered, paginated slice of products and the total count.

Description: Builds the WHERE clause dynamically from the filter. Uses
COUNT(*) OVER() so the total arrives with the page itself, and a json_agg
sub-query so each row carries its tag slugs.

Parameters:
  - context: context.Context
  - filter: ListFilter (category, tag, price window, sort, visibility)
  - page: pagination.Params

Returns:
  - []*Product: Slice of hydrated product entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *postgresRepository) List(context context.Context, filter ListFilter, page pagination.Params) ([]*Product, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(`
		SELECT ` + productColumns + `,
			COUNT(*) OVER() AS total_count
		FROM store.product p
		WHERE 1=1
	`)

	// Visibility filter
	if filter.PublishedOnly {
		queryBuilder.WriteString(" AND p.ispublished = TRUE")
	}

	// Category filter resolved via slug
	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.categoryid = (SELECT id FROM store.category WHERE slug = $%d)", argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	// Tag filter via junction membership
	if filter.TagSlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM store.product_tag pt
			JOIN store.tag t ON t.id = pt.tagid
			WHERE pt.productid = p.id AND t.slug = $%d
		)`, argID))
		args = append(args, filter.TagSlug)
		argID++
	}

	// Price window
	if filter.PriceMinCents > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.pricecents >= $%d", argID))
		args = append(args, filter.PriceMinCents)
		argID++
	}
	if filter.PriceMaxCents > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.pricecents <= $%d", argID))
		args = append(args, filter.PriceMaxCents)
		argID++
	}

	// Apply Sorting Logic
	orderBy := "p.createdat DESC"
	switch filter.Sort {
	case "price_asc":
		orderBy = "p.pricecents ASC"
	case "price_desc":
		orderBy = "p.pricecents DESC"
	case "name":
		orderBy = "p.name ASC"
	case "newest":
		orderBy = "p.createdat DESC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s, p.id DESC", orderBy))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, page.Limit, page.Offset())

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list products: %w", err)
	}
	defer rows.Close()

	// Iterate over rows
	var products []*Product
	var totalCount int

	for rows.Next() {
		product := &Product{}
		var tagsJSON []byte
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&product.Description,
			&product.PriceCents,
			&product.Currency,
			&product.CategoryID,
			&product.ImageURL,
			&product.Stock,
			&product.IsPublished,
			&product.CreatedAt,
			&product.UpdatedAt,
			&tagsJSON,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan product: %w", err)
		}

		// Unmarshal aggregated tag slugs
		if err := json.Unmarshal(tagsJSON, &product.Tags); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to unmarshal product tags: %w", err)
		}

		products = append(products, product)
	}

	return products, totalCount, nil
}

/*
FindByID retrieves a product by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Product: The fully hydrated entity including tag slugs
  - error: apperr.NotFound if absent, or execution errors
*/
func (repository *postgresRepository) FindByID(context context.Context, id int64) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM store.product p WHERE p.id = $1`
	return repository.scanOne(context, query, id, "product")
}

/*
FindBySlug retrieves a product by its storefront URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Product: The fully hydrated entity including tag slugs
  - error: apperr.NotFound if absent, or execution errors
*/
func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM store.product p WHERE p.slug = $1`
	return repository.scanOne(context, query, slug, "product_slug")
}

// scanOne executes a single-row product lookup sharing the common projection.
func (repository *postgresRepository) scanOne(context context.Context, query string, arg any, resource string) (*Product, error) {
	product := &Product{}
	var tagsJSON []byte

	err := repository.pool.QueryRow(context, query, arg).Scan(
		&product.ID,
		&product.Name,
		&product.Slug,
		&product.Description,
		&product.PriceCents,
		&product.Currency,
		&product.CategoryID,
		&product.ImageURL,
		&product.Stock,
		&product.IsPublished,
		&product.CreatedAt,
		&product.UpdatedAt,
		&tagsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(resource)
		}
		return nil, fmt.Errorf("postgres: failed to find product: %w", err)
	}

	if err := json.Unmarshal(tagsJSON, &product.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal product tags: %w", err)
	}

	return product, nil
}

/*
FindByIDs retrieves multiple products preserving the given ID order.

Description: Used by the recommendation pipeline, where the incoming ID list
is already ranked. Products missing from storage are silently skipped.

Parameters:
  - context: context.Context
  - ids: []int64 (Ranked identifiers)

Returns:
  - []*Product: Products in the order of the input slice
  - error: Execution errors
*/
func (repository *postgresRepository) FindByIDs(context context.Context, ids []int64) ([]*Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + ` FROM store.product p WHERE p.id = ANY($1) AND p.ispublished = TRUE`

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to find products by ids: %w", err)
	}
	defer rows.Close()

	// Collect into a lookup so the caller's ranking survives the
	// unordered result set.
	byID := make(map[int64]*Product, len(ids))
	for rows.Next() {
		product := &Product{}
		var tagsJSON []byte
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Slug,
			&product.Description,
			&product.PriceCents,
			&product.Currency,
			&product.CategoryID,
			&product.ImageURL,
			&product.Stock,
			&product.IsPublished,
			&product.CreatedAt,
			&product.UpdatedAt,
			&tagsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan product: %w", err)
		}
		if err := json.Unmarshal(tagsJSON, &product.Tags); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal product tags: %w", err)
		}
		byID[product.ID] = product
	}

	ordered := make([]*Product, 0, len(byID))
	for _, id := range ids {
		if product, ok := byID[id]; ok {
			ordered = append(ordered, product)
		}
	}

	return ordered, nil
}

/*
Create persists a new product and its tag links in one transaction.

Description: The database assigns the primary key, which is written back onto
the entity via INSERT ... RETURNING. Tag links are synchronized from slugs
inside the same transaction so a junction failure rolls back the product row.

Parameters:
  - context: context.Context
  - product: *Product (ID and timestamps populated on success)

Returns:
  - error: apperr.Conflict on duplicate slug, or execution errors
*/
func (repository *postgresRepository) Create(context context.Context, product *Product) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := `
		INSERT INTO store.product (
			name, slug, description, pricecents, currency,
			categoryid, imageurl, stock, ispublished
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, createdat, updatedat
	`

	err = transaction.QueryRow(context, query,
		product.Name,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Currency,
		product.CategoryID,
		product.ImageURL,
		product.Stock,
		product.IsPublished,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_product_create_failed")
	}

	// Tag junction synchronization
	if err := repository.syncTags(context, transaction, product.ID, product.Tags); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

/*
Update overwrites a product's mutable columns and re-syncs its tag links.

Parameters:
  - context: context.Context
  - product: *Product (Fully hydrated entity, ID set)

Returns:
  - error: apperr.NotFound if the row is missing, or execution errors
*/
func (repository *postgresRepository) Update(context context.Context, product *Product) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := `
		UPDATE store.product
		SET name = $1, slug = $2, description = $3, pricecents = $4,
			currency = $5, categoryid = $6, imageurl = $7, stock = $8,
			ispublished = $9, updatedat = NOW()
		WHERE id = $10
	`

	result, err := transaction.Exec(context, query,
		product.Name,
		product.Slug,
		product.Description,
		product.PriceCents,
		product.Currency,
		product.CategoryID,
		product.ImageURL,
		product.Stock,
		product.IsPublished,
		product.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_product_update_failed")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("product")
	}

	// Tag junction synchronization
	if err := repository.syncTags(context, transaction, product.ID, product.Tags); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit update transaction: %w", err)
	}

	return nil
}

// syncTags replaces a product's tag links with the given slugs using a
// clear-and-insert strategy. Unknown slugs are ignored by the sub-select.
func (repository *postgresRepository) syncTags(context context.Context, transaction pgx.Tx, productID int64, tagSlugs []string) error {
	if _, err := transaction.Exec(context, `DELETE FROM store.product_tag WHERE productid = $1`, productID); err != nil {
		return fmt.Errorf("postgres: failed to clear product tags: %w", err)
	}

	if len(tagSlugs) == 0 {
		return nil
	}

	query := `
		INSERT INTO store.product_tag (productid, tagid)
		SELECT $1, t.id FROM store.tag t WHERE t.slug = ANY($2)
		ON CONFLICT DO NOTHING
	`
	if _, err := transaction.Exec(context, query, productID, tagSlugs); err != nil {
		return fmt.Errorf("postgres: failed to sync product tags: %w", err)
	}

	return nil
}

/*
Delete removes a product and its junction rows.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound if the row is missing, or execution errors
*/
func (repository *postgresRepository) Delete(context context.Context, id int64) error {
	// Junction rows cascade via foreign key
	result, err := repository.pool.Exec(context, `DELETE FROM store.product WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("product")
	}

	return nil
}

/*
IncrementViewCount performs a thread-safe popularity counter update.

Description: Applies the numeric addition inside the database engine, so
highly concurrent view bursts never race a read-modify-write cycle.

Parameters:
  - context: context.Context
  - id: int64
  - delta: int64 (Usually 1)

Returns:
  - error: Execution failures
*/
func (repository *postgresRepository) IncrementViewCount(context context.Context, id int64, delta int64) error {
	query := `UPDATE store.product SET viewcount = viewcount + $1 WHERE id = $2`

	_, err := repository.pool.Exec(context, query, delta, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to increment view count: %w", err)
	}

	return nil
}

/*
AdjustStock atomically applies a stock delta to a product.

Description: A guard clause prevents the level going negative, so concurrent
decrements cannot oversell.

Parameters:
  - context: context.Context
  - id: int64
  - delta: int (Positive restock, negative sale)

Returns:
  - error: apperr.Conflict when the delta would underflow, apperr.NotFound if absent
*/
func (repository *postgresRepository) AdjustStock(context context.Context, id int64, delta int) error {
	query := `
		UPDATE store.product
		SET stock = stock + $1, updatedat = NOW()
		WHERE id = $2 AND stock + $1 >= 0
	`

	result, err := repository.pool.Exec(context, query, delta, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to adjust stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Distinguish a missing row from an underflow guard rejection.
		var exists bool
		if err := repository.pool.QueryRow(context, `SELECT EXISTS(SELECT 1 FROM store.product WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("postgres: failed to check product existence: %w", err)
		}
		if !exists {
			return apperr.NotFound("product")
		}
		return apperr.Conflict("Insufficient stock")
	}

	return nil
}
