package postgres

import (
	"context"
	"errors"
	"fmt"

	"jammshop/domain"

	"gorm.io/gorm"
)

type PricingRuleRepository struct {
	DB *gorm.DB
}

func NewPricingRuleRepository(db *gorm.DB) *PricingRuleRepository {
	return &PricingRuleRepository{
		DB: db,
	}
}

// FindActiveOrdered returns enabled rules sorted by priority, highest first.
// The evaluation pipeline relies on this ordering and does not re-query.
func (r *PricingRuleRepository) FindActiveOrdered(ctx context.Context) ([]domain.PricingRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rules []domain.PricingRule
	err := r.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("priority DESC").
		Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active pricing rules: %w", err)
	}

	return rules, nil
}

func (r *PricingRuleRepository) FindAll(ctx context.Context) ([]domain.PricingRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rules []domain.PricingRule
	err := r.DB.WithContext(ctx).Order("priority DESC").Find(&rules).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pricing rules: %w", err)
	}

	return rules, nil
}

func (r *PricingRuleRepository) FindByID(ctx context.Context, id uint64) (domain.PricingRule, error) {
	if err := ctx.Err(); err != nil {
		return domain.PricingRule{}, fmt.Errorf("context error: %w", err)
	}

	var rule domain.PricingRule
	err := r.DB.WithContext(ctx).First(&rule, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PricingRule{}, errors.New("pricing rule not found")
		}
		return domain.PricingRule{}, fmt.Errorf("failed to find pricing rule: %w", err)
	}

	return rule, nil
}

func (r *PricingRuleRepository) Create(ctx context.Context, rule *domain.PricingRule) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create pricing rule: %w", err)
	}

	return nil
}

func (r *PricingRuleRepository) Update(ctx context.Context, rule *domain.PricingRule) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"name":             rule.Name,
		"rule_type":        rule.RuleType,
		"conditions":       rule.Conditions,
		"adjustment_type":  rule.AdjustmentType,
		"adjustment_value": rule.AdjustmentValue,
		"priority":         rule.Priority,
		"active":           rule.Active,
	}

	result := r.DB.WithContext(ctx).Model(&domain.PricingRule{}).Where("id = ?", rule.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update pricing rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("pricing rule not found")
	}

	return nil
}

func (r *PricingRuleRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.PricingRule{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pricing rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("pricing rule not found")
	}

	return nil
}
