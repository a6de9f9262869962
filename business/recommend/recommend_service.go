package recommend

import (
	"context"
	"fmt"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"
)

// ViewRankRepository ranks products by recorded views since a cutoff.
type ViewRankRepository interface {
	TopViewed(ctx context.Context, since time.Time, limit int) ([]domain.TrendingProduct, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

const (
	defaultLimit      = 10
	trendingWindowDay = 7
)

type Service struct {
	viewRankRepo ViewRankRepository
	productRepo  ProductRepository
}

func NewService(viewRankRepo ViewRankRepository, productRepo ProductRepository) *Service {
	return &Service{viewRankRepo: viewRankRepo, productRepo: productRepo}
}

// GetTrending returns the most viewed products of the trailing week,
// hydrated with their catalog rows. Products that disappeared from the
// catalog since being viewed are skipped.
func (s *Service) GetTrending(ctx context.Context, limit int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	since := time.Now().AddDate(0, 0, -trendingWindowDay)
	rows, err := s.viewRankRepo.TopViewed(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	recs := make([]domain.Recommendation, 0, len(rows))
	for _, r := range rows {
		product, err := s.productRepo.FindByID(ctx, r.ProductID)
		if err != nil {
			logger.Warn("trending product missing from catalog", "product_id", r.ProductID)
			continue
		}
		recs = append(recs, domain.Recommendation{
			Product: product,
			Views:   r.Views,
		})
	}

	return recs, nil
}
