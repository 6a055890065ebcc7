// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package voucher

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloura/veloura/internal/platform/apperr"
)

// # Test Doubles

type redemptionKey struct {
	voucherID int64
	userID    int64
}

type fakeRepo struct {
	vouchers    map[string]*Voucher
	redemptions map[redemptionKey]int
	nextID      int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		vouchers:    make(map[string]*Voucher),
		redemptions: make(map[redemptionKey]int),
		nextID:      1,
	}
}

func (r *fakeRepo) List(_ context.Context) ([]*Voucher, error) {
	var all []*Voucher
	for _, v := range r.vouchers {
		all = append(all, v)
	}
	return all, nil
}

func (r *fakeRepo) FindByCode(_ context.Context, code string) (*Voucher, error) {
	v, ok := r.vouchers[code]
	if !ok {
		return nil, apperr.NotFound("voucher")
	}
	clone := *v
	return &clone, nil
}

func (r *fakeRepo) Create(_ context.Context, v *Voucher) error {
	if _, exists := r.vouchers[v.Code]; exists {
		return apperr.Conflict("Voucher code already exists")
	}
	v.ID = r.nextID
	r.nextID++
	clone := *v
	r.vouchers[v.Code] = &clone
	return nil
}

func (r *fakeRepo) Update(_ context.Context, v *Voucher) error {
	for code, existing := range r.vouchers {
		if existing.ID == v.ID {
			delete(r.vouchers, code)
			clone := *v
			r.vouchers[v.Code] = &clone
			return nil
		}
	}
	return apperr.NotFound("voucher")
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	for code, existing := range r.vouchers {
		if existing.ID == id {
			delete(r.vouchers, code)
			return nil
		}
	}
	return apperr.NotFound("voucher")
}

func (r *fakeRepo) CountRedemptions(_ context.Context, voucherID, userID int64) (int, error) {
	return r.redemptions[redemptionKey{voucherID: voucherID, userID: userID}], nil
}

func (r *fakeRepo) RecordRedemption(_ context.Context, voucherID, userID int64) error {
	for _, v := range r.vouchers {
		if v.ID == voucherID {
			if v.UsageLimit > 0 && v.UsageCount >= v.UsageLimit {
				return apperr.Conflict("Voucher usage limit reached")
			}
			v.UsageCount++
			r.redemptions[redemptionKey{voucherID: voucherID, userID: userID}]++
			return nil
		}
	}
	return apperr.NotFound("voucher")
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, slog.New(slog.DiscardHandler)), repo
}

func seedVoucher(t *testing.T, repo *fakeRepo, v Voucher) *Voucher {
	t.Helper()
	if v.StartsAt.IsZero() {
		v.StartsAt = time.Now().Add(-time.Hour)
	}
	if v.EndsAt.IsZero() {
		v.EndsAt = time.Now().Add(time.Hour)
	}
	require.NoError(t, repo.Create(context.Background(), &v))
	return repo.vouchers[v.Code]
}

// # Tests

func TestValidatePercentDiscount(t *testing.T) {
	service, repo := newTestService()
	seedVoucher(t, repo, Voucher{
		Code: "SUMMER20", DiscountType: TypePercent, DiscountValue: 20, IsActive: true,
	})

	quote, err := service.Validate(context.Background(), "summer20", 10_000)
	require.NoError(t, err)

	assert.Equal(t, int64(2_000), quote.DiscountCents)
	assert.Equal(t, int64(8_000), quote.PayableCents)
}

func TestValidateFixedDiscountCapsAtOrderTotal(t *testing.T) {
	service, repo := newTestService()
	seedVoucher(t, repo, Voucher{
		Code: "TENOFF", DiscountType: TypeFixed, DiscountValue: 1_000, IsActive: true,
	})

	quote, err := service.Validate(context.Background(), "TENOFF", 700)
	require.NoError(t, err)

	assert.Equal(t, int64(700), quote.DiscountCents)
	assert.Equal(t, int64(0), quote.PayableCents)
}

func TestValidateRejections(t *testing.T) {
	service, repo := newTestService()
	now := time.Now()

	seedVoucher(t, repo, Voucher{Code: "INACTIVE", DiscountType: TypePercent, DiscountValue: 10})
	seedVoucher(t, repo, Voucher{
		Code: "EXPIRED", DiscountType: TypePercent, DiscountValue: 10, IsActive: true,
		StartsAt: now.Add(-2 * time.Hour), EndsAt: now.Add(-time.Hour),
	})
	seedVoucher(t, repo, Voucher{
		Code: "NOTYET", DiscountType: TypePercent, DiscountValue: 10, IsActive: true,
		StartsAt: now.Add(time.Hour), EndsAt: now.Add(2 * time.Hour),
	})
	seedVoucher(t, repo, Voucher{
		Code: "BIGSPEND", DiscountType: TypePercent, DiscountValue: 10, IsActive: true,
		MinOrderCents: 50_000,
	})
	exhausted := seedVoucher(t, repo, Voucher{
		Code: "USEDUP", DiscountType: TypePercent, DiscountValue: 10, IsActive: true,
		UsageLimit: 1,
	})
	exhausted.UsageCount = 1

	tests := []struct {
		name string
		code string
	}{
		{name: "inactive voucher", code: "INACTIVE"},
		{name: "expired voucher", code: "EXPIRED"},
		{name: "not yet valid", code: "NOTYET"},
		{name: "order below minimum", code: "BIGSPEND"},
		{name: "usage limit reached", code: "USEDUP"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Validate(context.Background(), testCase.code, 10_000)
			require.Error(t, err)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, 409, appErr.HTTPStatus)
		})
	}
}

func TestValidateUnknownCode(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Validate(context.Background(), "NOPE", 1_000)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestRedeemConsumesUsage(t *testing.T) {
	service, repo := newTestService()
	seedVoucher(t, repo, Voucher{
		Code: "ONESHOT", DiscountType: TypeFixed, DiscountValue: 500, IsActive: true,
		UsageLimit: 1,
	})

	_, err := service.Redeem(context.Background(), 7, "ONESHOT", 2_000)
	require.NoError(t, err)

	// Second redemption must fail on the exhausted limit, whoever tries.
	_, err = service.Redeem(context.Background(), 8, "ONESHOT", 2_000)
	require.Error(t, err)
}

func TestRedeemEnforcesPerUserLimit(t *testing.T) {
	service, repo := newTestService()
	seedVoucher(t, repo, Voucher{
		Code: "LOYALTY", DiscountType: TypeFixed, DiscountValue: 500, IsActive: true,
		PerUserLimit: 2,
	})

	for i := 0; i < 2; i++ {
		_, err := service.Redeem(context.Background(), 7, "LOYALTY", 2_000)
		require.NoError(t, err)
	}

	// Third attempt by the same user hits the cap.
	_, err := service.Redeem(context.Background(), 7, "LOYALTY", 2_000)
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 409, appErr.HTTPStatus)

	// A different user still has their own allowance.
	_, err = service.Redeem(context.Background(), 8, "LOYALTY", 2_000)
	require.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	service, _ := newTestService()
	now := time.Now()

	tests := []struct {
		name    string
		voucher Voucher
	}{
		{
			name:    "missing code",
			voucher: Voucher{DiscountType: TypePercent, DiscountValue: 10, StartsAt: now, EndsAt: now.Add(time.Hour)},
		},
		{
			name:    "unknown discount type",
			voucher: Voucher{Code: "WELCOME", DiscountType: "bogus", DiscountValue: 10, StartsAt: now, EndsAt: now.Add(time.Hour)},
		},
		{
			name:    "percent over 100",
			voucher: Voucher{Code: "WELCOME", DiscountType: TypePercent, DiscountValue: 150, StartsAt: now, EndsAt: now.Add(time.Hour)},
		},
		{
			name:    "window ends before it starts",
			voucher: Voucher{Code: "WELCOME", DiscountType: TypePercent, DiscountValue: 10, StartsAt: now, EndsAt: now.Add(-time.Hour)},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := service.Create(context.Background(), &testCase.voucher)
			require.Error(t, err)
		})
	}
}
