package pricing

import (
	"context"
	"errors"
	"fmt"

	"jammshop/domain"
	"jammshop/pkg/logger"
)

// RuleAdminRepository is the write side of the rule store, used by the
// back-office only. The engine itself never mutates rules.
type RuleAdminRepository interface {
	FindAll(ctx context.Context) ([]domain.PricingRule, error)
	FindByID(ctx context.Context, id uint64) (domain.PricingRule, error)
	Create(ctx context.Context, rule *domain.PricingRule) error
	Update(ctx context.Context, rule *domain.PricingRule) error
	Delete(ctx context.Context, id uint64) error
}

// ActivityRecorder receives back-office actions for the admin activity log.
type ActivityRecorder interface {
	Record(actor, action, target, detail string)
}

type RuleAdminService struct {
	ruleRepo RuleAdminRepository
	activity ActivityRecorder
}

func NewRuleAdminService(ruleRepo RuleAdminRepository, activity ActivityRecorder) *RuleAdminService {
	return &RuleAdminService{
		ruleRepo: ruleRepo,
		activity: activity,
	}
}

func (s *RuleAdminService) ListRules(ctx context.Context) ([]domain.PricingRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.ruleRepo.FindAll(ctx)
}

func (s *RuleAdminService) GetRule(ctx context.Context, id uint64) (*domain.PricingRule, error) {
	if id == 0 {
		return nil, errors.New("invalid rule id")
	}

	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &rule, nil
}

func (s *RuleAdminService) CreateRule(ctx context.Context, actor string, rule *domain.PricingRule) (*domain.PricingRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateRule(rule); err != nil {
		logger.Error("invalid pricing rule", "error", err)
		return nil, err
	}

	if err := s.ruleRepo.Create(ctx, rule); err != nil {
		logger.Error("failed to create pricing rule", "error", err)
		return nil, fmt.Errorf("failed to create pricing rule: %w", err)
	}

	s.activity.Record(actor, "pricing_rule.create", fmt.Sprintf("rule:%d", rule.ID), rule.Name)
	logger.Info("pricing rule created", "rule", rule.Name, "priority", rule.Priority)

	return rule, nil
}

func (s *RuleAdminService) UpdateRule(ctx context.Context, actor string, rule *domain.PricingRule) (*domain.PricingRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if rule.ID == 0 {
		return nil, errors.New("rule ID is required")
	}

	if err := validateRule(rule); err != nil {
		logger.Error("invalid pricing rule", "error", err)
		return nil, err
	}

	if _, err := s.ruleRepo.FindByID(ctx, rule.ID); err != nil {
		return nil, errors.New("pricing rule not found")
	}

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		logger.Error("failed to update pricing rule", "error", err)
		return nil, fmt.Errorf("failed to update pricing rule: %w", err)
	}

	updated, err := s.ruleRepo.FindByID(ctx, rule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated pricing rule: %w", err)
	}

	s.activity.Record(actor, "pricing_rule.update", fmt.Sprintf("rule:%d", rule.ID), rule.Name)

	return &updated, nil
}

func (s *RuleAdminService) DeleteRule(ctx context.Context, actor string, id uint64) error {
	if id == 0 {
		return errors.New("invalid rule id")
	}

	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("pricing rule not found")
	}

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete pricing rule", "error", err)
		return fmt.Errorf("failed to delete pricing rule: %w", err)
	}

	s.activity.Record(actor, "pricing_rule.delete", fmt.Sprintf("rule:%d", id), rule.Name)

	return nil
}

func validateRule(rule *domain.PricingRule) error {
	if rule.Name == "" {
		return errors.New("rule name is required")
	}

	switch rule.RuleType {
	case domain.RuleTypeDemand, domain.RuleTypeInventory, domain.RuleTypeTime, domain.RuleTypeUserSegment:
	default:
		return fmt.Errorf("unknown rule type: %s", rule.RuleType)
	}

	switch rule.AdjustmentType {
	case domain.AdjustmentPercentage, domain.AdjustmentFixed:
	default:
		return fmt.Errorf("unknown adjustment type: %s", rule.AdjustmentType)
	}

	if err := ValidateConditions(rule.RuleType, rule.Conditions); err != nil {
		return fmt.Errorf("invalid conditions: %w", err)
	}

	return nil
}
