// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package voucher

import "context"

/*
Repository defines the persistence contract for vouchers.

Implementations:
  - PostgresRepository (store_postgres.go)
*/
type Repository interface {
	// List returns all vouchers, newest first.
	List(context context.Context) ([]*Voucher, error)

	// FindByCode retrieves a voucher by its redemption code.
	// Returns apperr.NotFound when the code is unknown.
	FindByCode(context context.Context, code string) (*Voucher, error)

	// Create persists a new voucher. The database assigns the ID.
	Create(context context.Context, v *Voucher) error

	// Update overwrites a voucher's mutable fields.
	Update(context context.Context, v *Voucher) error

	// Delete removes a voucher permanently.
	Delete(context context.Context, id int64) error

	// CountRedemptions returns how many times a user has redeemed a voucher.
	CountRedemptions(context context.Context, voucherID, userID int64) (int, error)

	// RecordRedemption atomically bumps the usage counter and writes the
	// per-user redemption row, respecting the global usage limit. Returns
	// apperr.Conflict when the limit is exhausted.
	RecordRedemption(context context.Context, voucherID, userID int64) error
}
