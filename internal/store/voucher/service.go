// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package voucher

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/veloura/veloura/internal/platform/apperr"
	"github.com/veloura/veloura/internal/platform/metrics"
	"github.com/veloura/veloura/internal/platform/validate"
)

// # Service Layer

// Service holds the voucher business rules.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new voucher [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
Validate checks a voucher code against an order total and quotes the discount.

Description: A voucher is accepted only when it is active, inside its
validity window, under its usage limit, and the order meets the minimum.
Every attempt is counted in the validation metric by result.

Parameters:
  - context: context.Context
  - code: string (Case-insensitive redemption code)
  - orderCents: int64 (Order total before discount)

Returns:
  - *Quote: Discount and payable amounts
  - error: apperr.NotFound for unknown codes, apperr.Conflict for inapplicable ones
*/
func (service *Service) Validate(context context.Context, code string, orderCents int64) (*Quote, error) {
	if orderCents <= 0 {
		return nil, apperr.BadRequest("Order total must be positive")
	}

	voucher, err := service.repo.FindByCode(context, normalizeCode(code))
	if err != nil {
		metrics.VoucherValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if err := service.applicable(voucher, orderCents); err != nil {
		metrics.VoucherValidationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.VoucherValidationsTotal.WithLabelValues("accepted").Inc()

	discount := service.discountFor(voucher, orderCents)
	return &Quote{
		Code:          voucher.Code,
		DiscountCents: discount,
		PayableCents:  orderCents - discount,
	}, nil
}

/*
Redeem consumes one use of a voucher for a user after a successful checkout.

Description: On top of the [Service.Validate] gates, a voucher with a
per-user limit is rejected once the user has redeemed it that many times.
The redemption is recorded in Postgres so the count survives restarts.

Parameters:
  - context: context.Context
  - userID: int64 (The authenticated redeeming user)
  - code: string
  - orderCents: int64

Returns:
  - *Quote: The locked-in discount
  - error: Validation failures or usage exhaustion
*/
func (service *Service) Redeem(context context.Context, userID int64, code string, orderCents int64) (*Quote, error) {
	quote, err := service.Validate(context, code, orderCents)
	if err != nil {
		return nil, err
	}

	voucher, err := service.repo.FindByCode(context, normalizeCode(code))
	if err != nil {
		return nil, err
	}

	if voucher.PerUserLimit > 0 {
		redeemed, err := service.repo.CountRedemptions(context, voucher.ID, userID)
		if err != nil {
			return nil, err
		}
		if redeemed >= voucher.PerUserLimit {
			return nil, apperr.Conflict("Voucher already redeemed the maximum number of times")
		}
	}

	if err := service.repo.RecordRedemption(context, voucher.ID, userID); err != nil {
		return nil, err
	}

	service.logger.Info("voucher_redeemed",
		slog.String("code", voucher.Code),
		slog.Int64("user_id", userID),
		slog.Int64("discount_cents", quote.DiscountCents),
	)

	return quote, nil
}

// applicable checks every gate that can reject an otherwise valid code.
func (service *Service) applicable(voucher *Voucher, orderCents int64) error {
	now := time.Now()

	if !voucher.IsActive {
		return apperr.Conflict("Voucher is not active")
	}
	if now.Before(voucher.StartsAt) {
		return apperr.Conflict("Voucher is not yet valid")
	}
	if now.After(voucher.EndsAt) {
		return apperr.Conflict("Voucher has expired")
	}
	if voucher.UsageLimit > 0 && voucher.UsageCount >= voucher.UsageLimit {
		return apperr.Conflict("Voucher usage limit reached")
	}
	if orderCents < voucher.MinOrderCents {
		return apperr.Conflict("Order total below voucher minimum")
	}

	return nil
}

// discountFor computes the discount in cents, never exceeding the order total.
func (service *Service) discountFor(voucher *Voucher, orderCents int64) int64 {
	var discount int64
	switch voucher.DiscountType {
	case TypePercent:
		discount = orderCents * voucher.DiscountValue / 100
	case TypeFixed:
		discount = voucher.DiscountValue
	}

	if discount > orderCents {
		discount = orderCents
	}
	return discount
}

// # Curation

// List returns all vouchers for the back-office.
func (service *Service) List(context context.Context) ([]*Voucher, error) {
	return service.repo.List(context)
}

/*
Create persists a new voucher after validating its shape.

Parameters:
  - context: context.Context
  - voucher: *Voucher

Returns:
  - error: Validation failures or apperr.Conflict on duplicate codes
*/
func (service *Service) Create(context context.Context, voucher *Voucher) error {
	voucher.Code = normalizeCode(voucher.Code)

	validator := &validate.Validator{}
	validator.Required(FieldCode, voucher.Code).VoucherCode(FieldCode, voucher.Code)
	validator.OneOf(FieldDiscountType, voucher.DiscountType, TypePercent, TypeFixed)
	validator.Custom(FieldDiscountValue, voucher.DiscountValue <= 0, "must be positive")
	if voucher.DiscountType == TypePercent {
		validator.Custom(FieldDiscountValue, voucher.DiscountValue > 100, "percent discount cannot exceed 100")
	}
	validator.Custom("per_user_limit", voucher.PerUserLimit < 0, "cannot be negative")
	validator.Custom("ends_at", !voucher.EndsAt.After(voucher.StartsAt), "must be after starts_at")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, voucher); err != nil {
		return err
	}

	service.logger.Info("voucher_created", slog.String("code", voucher.Code))
	return nil
}

// Update overwrites a voucher's mutable fields.
func (service *Service) Update(context context.Context, id int64, voucher *Voucher) error {
	voucher.ID = id
	voucher.Code = normalizeCode(voucher.Code)

	validator := &validate.Validator{}
	validator.Required(FieldCode, voucher.Code).VoucherCode(FieldCode, voucher.Code)
	validator.OneOf(FieldDiscountType, voucher.DiscountType, TypePercent, TypeFixed)
	validator.Custom(FieldDiscountValue, voucher.DiscountValue <= 0, "must be positive")
	validator.Custom("per_user_limit", voucher.PerUserLimit < 0, "cannot be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, voucher); err != nil {
		return err
	}

	service.logger.Info("voucher_updated", slog.Int64("voucher_id", id))
	return nil
}

// Delete removes a voucher permanently.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("voucher_deleted", slog.Int64("voucher_id", id))
	return nil
}

// normalizeCode uppercases and trims a redemption code so lookups are
// case-insensitive.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
