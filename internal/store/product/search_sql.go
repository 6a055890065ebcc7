// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package product

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/dberr"
	"github.com/veloura/veloura/pkg/pagination"
)

// SQLIndex is the degraded SearchIndex used when Elasticsearch is not
// configured. Queries run as ILIKE scans over the catalogue table, which
// is adequate for small deployments and development. Index and Remove are
// no-ops because Postgres already holds the canonical rows.
type SQLIndex struct {
	pool *pgxpool.Pool
}

func NewSQLIndex(pool *pgxpool.Pool) *SQLIndex {
	return &SQLIndex{pool: pool}
}

func (index *SQLIndex) Index(context.Context, SearchDocument) error { return nil }

func (index *SQLIndex) Remove(context.Context, int64) error { return nil }

func (index *SQLIndex) Search(context context.Context, query string, page pagination.Params) ([]SearchDocument, int, error) {
	statement := `
		SELECT id, name, slug, description, pricecents, currency, imageurl,
		       COUNT(*) OVER() AS total_count
		FROM store.product
		WHERE ispublished = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY viewcount DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := index.pool.Query(context, statement, query, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_product_search_failed")
	}
	defer rows.Close()

	var total int
	documents := make([]SearchDocument, 0, page.Limit)
	for rows.Next() {
		var document SearchDocument
		if err := rows.Scan(
			&document.ID,
			&document.Name,
			&document.Slug,
			&document.Descriptor,
			&document.PriceCents,
			&document.Currency,
			&document.ImageURL,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "postgres_product_search_scan_failed")
		}
		documents = append(documents, document)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "postgres_product_search_rows_failed")
	}

	return documents, total, nil
}
