// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package stats

import (
	"context"
	"log/slog"
)

// Window bounds for dashboard queries.
const (
	maxSignupDays  = 90
	defaultDays    = 30
	maxTopProducts = 50
	defaultTop     = 10
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) Overview(context context.Context) (*Overview, error) {
	return service.repo.Overview(context)
}

func (service *Service) SignupsPerDay(context context.Context, days int) ([]SignupPoint, error) {
	if days <= 0 {
		days = defaultDays
	}
	if days > maxSignupDays {
		days = maxSignupDays
	}
	return service.repo.SignupsPerDay(context, days)
}

func (service *Service) TopViewedProducts(context context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = defaultTop
	}
	if limit > maxTopProducts {
		limit = maxTopProducts
	}
	return service.repo.TopViewedProducts(context, limit)
}
