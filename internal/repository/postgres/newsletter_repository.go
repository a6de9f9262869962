package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jammshop/domain"

	"gorm.io/gorm"
)

type NewsletterRepository struct {
	DB *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{
		DB: db,
	}
}

func (r *NewsletterRepository) Create(ctx context.Context, sub *domain.NewsletterSubscriber) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("failed to create newsletter subscriber: %w", err)
	}

	return nil
}

func (r *NewsletterRepository) FindByEmail(ctx context.Context, email string) (domain.NewsletterSubscriber, error) {
	if err := ctx.Err(); err != nil {
		return domain.NewsletterSubscriber{}, fmt.Errorf("context error: %w", err)
	}

	var sub domain.NewsletterSubscriber
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewsletterSubscriber{}, errors.New("subscriber not found")
		}
		return domain.NewsletterSubscriber{}, fmt.Errorf("failed to find subscriber: %w", err)
	}

	return sub, nil
}

func (r *NewsletterRepository) Confirm(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.NewsletterSubscriber{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"confirmed":    true,
			"confirmed_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to confirm subscriber: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("subscriber not found")
	}

	return nil
}

func (r *NewsletterRepository) Delete(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("email = ?", email).Delete(&domain.NewsletterSubscriber{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete subscriber: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("subscriber not found")
	}

	return nil
}
