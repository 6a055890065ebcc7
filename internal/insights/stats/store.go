// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package stats

import "context"

type Repository interface {
	// Overview returns the headline totals in a single round-trip.
	Overview(context context.Context) (*Overview, error)

	// SignupsPerDay returns daily registration counts for the last N days,
	// oldest first. Days without signups are omitted.
	SignupsPerDay(context context.Context, days int) ([]SignupPoint, error)

	// TopViewedProducts returns the most viewed published products.
	TopViewedProducts(context context.Context, limit int) ([]TopProduct, error)
}
