// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package behavior

import (
	"context"
	"log/slog"
	"time"

	"github.com/veloura/veloura/internal/platform/metrics"
	"github.com/veloura/veloura/internal/platform/validate"
)

// # Service Layer

// Service validates and routes storefront events.
type Service struct {
	publisher   Publisher
	recentViews RecentViewsRepository
	viewCounter ViewCounter
	logger      *slog.Logger
}

// NewService constructs a new behavior [Service].
func NewService(publisher Publisher, recentViews RecentViewsRepository, viewCounter ViewCounter, logger *slog.Logger) *Service {
	return &Service{
		publisher:   publisher,
		recentViews: recentViews,
		viewCounter: viewCounter,
		logger:      logger,
	}
}

/*
Track accepts a storefront event.

Description: The event is validated, stamped, and published to the analytics
stream. Product views also update the visitor's recent-view history. Stream
and history failures are counted and logged but never surfaced to the
storefront, which only needs an acknowledgement.

Parameters:
  - context: context.Context
  - event: Event

Returns:
  - error: Validation failures only
*/
func (service *Service) Track(context context.Context, event Event) error {
	validator := &validate.Validator{}
	validator.Required(FieldVisitorID, event.VisitorID).MaxLen(FieldVisitorID, event.VisitorID, 64)
	validator.OneOf(FieldKind, event.Kind, KindProductView, KindSearch, KindCartAdd, KindCheckout)
	if event.Kind == KindProductView || event.Kind == KindCartAdd {
		validator.Custom(FieldProductID, event.ProductID <= 0, "must reference a product")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	metrics.BehaviorEventsTotal.WithLabelValues(event.Kind).Inc()

	if err := service.publisher.Publish(context, event); err != nil {
		metrics.BehaviorPublishErrorsTotal.Inc()
		service.logger.Warn("behavior_publish_failed",
			slog.String("kind", event.Kind),
			slog.Any("error", err),
		)
	}

	if event.Kind == KindProductView {
		if err := service.recentViews.RecordView(context, event.VisitorID, event.ProductID); err != nil {
			service.logger.Warn("recent_views_update_failed",
				slog.String("visitor_id", event.VisitorID),
				slog.Any("error", err),
			)
		}

		if err := service.viewCounter.IncrementViewCount(context, event.ProductID, 1); err != nil {
			service.logger.Warn("view_count_update_failed",
				slog.Int64("product_id", event.ProductID),
				slog.Any("error", err),
			)
		}
	}

	return nil
}
