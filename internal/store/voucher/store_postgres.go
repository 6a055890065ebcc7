// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package voucher

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed voucher store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const voucherColumns = `id, code, description, discounttype, discountvalue, minordercents,
	startsat, endsat, usagelimit, usagecount, peruserlimit, isactive, createdat, updatedat`

func (repository *PostgresRepository) List(context context.Context) ([]*Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM store.voucher ORDER BY createdat DESC`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_vouchers")
	}
	defer rows.Close()

	var vouchers []*Voucher
	for rows.Next() {
		v := &Voucher{}
		err := rows.Scan(
			&v.ID, &v.Code, &v.Description, &v.DiscountType, &v.DiscountValue, &v.MinOrderCents,
			&v.StartsAt, &v.EndsAt, &v.UsageLimit, &v.UsageCount, &v.PerUserLimit, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_voucher")
		}
		vouchers = append(vouchers, v)
	}

	return vouchers, nil
}

func (repository *PostgresRepository) FindByCode(context context.Context, code string) (*Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM store.voucher WHERE code = $1`

	v := &Voucher{}
	err := repository.db.QueryRow(context, query, code).Scan(
		&v.ID, &v.Code, &v.Description, &v.DiscountType, &v.DiscountValue, &v.MinOrderCents,
		&v.StartsAt, &v.EndsAt, &v.UsageLimit, &v.UsageCount, &v.PerUserLimit, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("voucher")
		}
		return nil, dberr.Wrap(err, "find_voucher_by_code")
	}

	return v, nil
}

func (repository *PostgresRepository) Create(context context.Context, v *Voucher) error {
	query := `
		INSERT INTO store.voucher (
			code, description, discounttype, discountvalue, minordercents,
			startsat, endsat, usagelimit, peruserlimit, isactive
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, usagecount, createdat, updatedat
	`

	err := repository.db.QueryRow(context, query,
		v.Code, v.Description, v.DiscountType, v.DiscountValue, v.MinOrderCents,
		v.StartsAt, v.EndsAt, v.UsageLimit, v.PerUserLimit, v.IsActive,
	).Scan(&v.ID, &v.UsageCount, &v.CreatedAt, &v.UpdatedAt)

	return dberr.Wrap(err, "create_voucher")
}

func (repository *PostgresRepository) Update(context context.Context, v *Voucher) error {
	query := `
		UPDATE store.voucher
		SET code = $1, description = $2, discounttype = $3, discountvalue = $4,
			minordercents = $5, startsat = $6, endsat = $7, usagelimit = $8,
			peruserlimit = $9, isactive = $10, updatedat = NOW()
		WHERE id = $11
	`

	result, err := repository.db.Exec(context, query,
		v.Code, v.Description, v.DiscountType, v.DiscountValue,
		v.MinOrderCents, v.StartsAt, v.EndsAt, v.UsageLimit,
		v.PerUserLimit, v.IsActive, v.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_voucher")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("voucher")
	}
	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	result, err := repository.db.Exec(context, `DELETE FROM store.voucher WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_voucher")
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("voucher")
	}
	return nil
}

func (repository *PostgresRepository) CountRedemptions(context context.Context, voucherID, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM store.voucher_redemption WHERE voucherid = $1 AND userid = $2`

	var count int
	if err := repository.db.QueryRow(context, query, voucherID, userID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_voucher_redemptions")
	}
	return count, nil
}

// RecordRedemption bumps the counter only while below the limit, so two
// concurrent redemptions cannot both consume the final use. The per-user
// redemption row is written in the same transaction.
func (repository *PostgresRepository) RecordRedemption(context context.Context, voucherID, userID int64) error {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_voucher_redemption")
	}
	defer tx.Rollback(context)

	result, err := tx.Exec(context, `
		UPDATE store.voucher
		SET usagecount = usagecount + 1, updatedat = NOW()
		WHERE id = $1 AND (usagelimit = 0 OR usagecount < usagelimit)
	`, voucherID)
	if err != nil {
		return dberr.Wrap(err, "increment_voucher_usage")
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("Voucher usage limit reached")
	}

	_, err = tx.Exec(context,
		`INSERT INTO store.voucher_redemption (voucherid, userid) VALUES ($1, $2)`,
		voucherID, userID,
	)
	if err != nil {
		return dberr.Wrap(err, "record_voucher_redemption")
	}

	return dberr.Wrap(tx.Commit(context), "commit_voucher_redemption")
}
