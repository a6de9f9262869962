package postgres

import (
	"context"
	"fmt"
	"time"

	"jammshop/domain"

	"gorm.io/gorm"
)

type ProductViewRepository struct {
	DB *gorm.DB
}

func NewProductViewRepository(db *gorm.DB) *ProductViewRepository {
	return &ProductViewRepository{
		DB: db,
	}
}

func (r *ProductViewRepository) Create(ctx context.Context, view *domain.ProductView) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(view).Error; err != nil {
		return fmt.Errorf("failed to record product view: %w", err)
	}

	return nil
}

func (r *ProductViewRepository) CountSince(ctx context.Context, productID uint64, since time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.ProductView{}).
		Where("product_id = ? AND viewed_at >= ?", productID, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count product views: %w", err)
	}

	return count, nil
}

func (r *ProductViewRepository) TopViewed(ctx context.Context, since time.Time, limit int) ([]domain.TrendingProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.TrendingProduct
	err := r.DB.WithContext(ctx).
		Model(&domain.ProductView{}).
		Select("product_id, COUNT(*) AS views").
		Where("viewed_at >= ?", since).
		Group("product_id").
		Order("views DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank product views: %w", err)
	}

	return rows, nil
}
