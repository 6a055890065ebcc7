// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package recommend

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/dberr"
)

// PostgresPopularity ranks products by accumulated view count.
type PostgresPopularity struct {
	pool *pgxpool.Pool
}

func NewPostgresPopularity(pool *pgxpool.Pool) *PostgresPopularity {
	return &PostgresPopularity{pool: pool}
}

func (repository *PostgresPopularity) MostViewedIDs(context context.Context, limit int) ([]int64, error) {
	query := `
		SELECT id
		FROM store.product
		WHERE ispublished = TRUE
		ORDER BY viewcount DESC, id DESC
		LIMIT $1`

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_popularity_query_failed")
	}
	defer rows.Close()

	ids := make([]int64, 0, limit)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "postgres_popularity_scan_failed")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_popularity_rows_failed")
	}

	return ids, nil
}
