// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Overview collects all four totals in one statement so the dashboard's
// landing request costs a single round-trip.
func (repository *PostgresRepository) Overview(context context.Context) (*Overview, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users.account WHERE deletedat IS NULL),
			(SELECT COUNT(*) FROM store.product),
			(SELECT COUNT(*) FROM content.article),
			(SELECT COUNT(*) FROM store.voucher)
	`

	overview := &Overview{}
	err := repository.db.QueryRow(context, query).Scan(
		&overview.Users, &overview.Products, &overview.Articles, &overview.Vouchers,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "stats_overview")
	}

	return overview, nil
}

func (repository *PostgresRepository) SignupsPerDay(context context.Context, days int) ([]SignupPoint, error) {
	query := `
		SELECT date_trunc('day', createdat) AS day, COUNT(*)
		FROM users.account
		WHERE createdat >= NOW() - ($1 || ' days')::interval
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := repository.db.Query(context, query, days)
	if err != nil {
		return nil, dberr.Wrap(err, "stats_signups")
	}
	defer rows.Close()

	var points []SignupPoint
	for rows.Next() {
		var point SignupPoint
		if err := rows.Scan(&point.Day, &point.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_signup_point")
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "stats_signups_rows")
	}

	return points, nil
}

func (repository *PostgresRepository) TopViewedProducts(context context.Context, limit int) ([]TopProduct, error) {
	query := `
		SELECT id, name, slug, viewcount
		FROM store.product
		WHERE ispublished = TRUE
		ORDER BY viewcount DESC, id ASC
		LIMIT $1
	`

	rows, err := repository.db.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "stats_top_products")
	}
	defer rows.Close()

	var products []TopProduct
	for rows.Next() {
		var product TopProduct
		if err := rows.Scan(&product.ID, &product.Name, &product.Slug, &product.ViewCount); err != nil {
			return nil, dberr.Wrap(err, "scan_top_product")
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "stats_top_products_rows")
	}

	return products, nil
}
