package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"
)

// ViewEventRepository is the durable store for view events.
type ViewEventRepository interface {
	Create(ctx context.Context, view *domain.ProductView) error
	CountSince(ctx context.Context, productID uint64, since time.Time) (int64, error)
}

// ViewCounterRepository is the fast path: per-product per-day counters.
type ViewCounterRepository interface {
	Incr(ctx context.Context, productID uint64, day time.Time) error
	SumWindow(ctx context.Context, productID uint64, days int) (int64, error)
}

type analyticsService struct {
	viewRepo    ViewEventRepository
	counterRepo ViewCounterRepository
}

func NewAnalyticsService(viewRepo ViewEventRepository, counterRepo ViewCounterRepository) *analyticsService {
	return &analyticsService{
		viewRepo:    viewRepo,
		counterRepo: counterRepo,
	}
}

// TrackView records one product view. The durable write must succeed; the
// counter increment is best effort since ViewCount can recount from the
// durable store.
func (s *analyticsService) TrackView(ctx context.Context, productID, userID uint64) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	view := &domain.ProductView{
		ProductID: productID,
		UserID:    userID,
	}

	if err := s.viewRepo.Create(ctx, view); err != nil {
		logger.Error("failed to record product view", "product_id", productID, "error", err)
		return fmt.Errorf("failed to record product view: %w", err)
	}

	if s.counterRepo != nil {
		if err := s.counterRepo.Incr(ctx, productID, time.Now()); err != nil {
			logger.Warn("view counter increment failed", "product_id", productID, "error", err)
		}
	}

	return nil
}

// ViewCount returns the trailing view count the demand pricing evaluator
// reads. Redis counters answer first; the durable store covers a cold or
// unreachable cache.
func (s *analyticsService) ViewCount(ctx context.Context, productID uint64, windowDays int) (int64, error) {
	if windowDays <= 0 {
		return 0, errors.New("window must be at least one day")
	}

	if s.counterRepo != nil {
		total, err := s.counterRepo.SumWindow(ctx, productID, windowDays)
		if err == nil {
			return total, nil
		}
		logger.Warn("view counter read failed, falling back to database",
			"product_id", productID,
			"error", err,
		)
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	return s.viewRepo.CountSince(ctx, productID, since)
}
