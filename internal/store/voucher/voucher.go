// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package voucher

import "time"

// Discount kinds.
const (
	TypePercent = "percent"
	TypeFixed   = "fixed"
)

// Voucher is a promotional code redeemable at checkout.
//
// DiscountValue is interpreted by DiscountType: whole percent points for
// TypePercent, cents for TypeFixed.
type Voucher struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description,omitempty"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue int64     `json:"discount_value"`
	MinOrderCents int64     `json:"min_order_cents"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	UsageLimit    int       `json:"usage_limit"` // 0 means unlimited
	UsageCount    int       `json:"usage_count"`
	PerUserLimit  int       `json:"per_user_limit"` // 0 means unlimited
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Quote is the outcome of validating a voucher against an order total.
type Quote struct {
	Code          string `json:"code"`
	DiscountCents int64  `json:"discount_cents"`
	PayableCents  int64  `json:"payable_cents"`
}

// Global field names for validation
const (
	FieldCode          = "code"
	FieldDiscountType  = "discount_type"
	FieldDiscountValue = "discount_value"
	FieldOrderCents    = "order_cents"
)
