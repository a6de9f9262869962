package pricing

import (
	"context"
	"fmt"
	"time"

	"jammshop/domain"
)

// Semantic labels carried on adjustment descriptors. These name what
// happened, not the rule_type column.
const (
	KindDemandSurge     = "demand_surge"
	KindLowInventory    = "low_inventory"
	KindWeekendDiscount = "weekend_discount"
	KindPeakHours       = "peak_hours"
	KindLoyaltyDiscount = "loyalty_discount"
)

// demandWindowDays is the trailing window the demand evaluator sums view
// counts over.
const demandWindowDays = 7

// Each evaluator inspects one rule against external signals and returns a
// descriptor on match, nil on no-match. They read state but never write it.

// evaluateDemand matches when the trailing view count strictly exceeds the
// configured threshold. Zero views never exceeds a positive threshold.
func (s *PricingService) evaluateDemand(ctx context.Context, rule domain.PricingRule, productID uint64) (*domain.PriceAdjustment, error) {
	cond, err := decodeDemandConditions(rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
	}

	views, err := s.viewRepo.ViewCount(ctx, productID, demandWindowDays)
	if err != nil {
		return nil, fmt.Errorf("rule %q: view count: %w", rule.Name, err)
	}

	if views > cond.Threshold {
		return &domain.PriceAdjustment{
			RuleName: rule.Name,
			Kind:     KindDemandSurge,
			Value:    rule.AdjustmentValue,
			Reason:   fmt.Sprintf("%d views in the last %d days (threshold %d)", views, demandWindowDays, cond.Threshold),
		}, nil
	}

	return nil, nil
}

// evaluateInventory matches when stock is at or below the threshold. The
// comparison is inclusive: stock exactly at the threshold triggers.
func (s *PricingService) evaluateInventory(ctx context.Context, rule domain.PricingRule, productID uint64) (*domain.PriceAdjustment, error) {
	cond, err := decodeInventoryConditions(rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
	}

	stock, err := s.inventoryRepo.Stock(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("rule %q: stock: %w", rule.Name, err)
	}

	if stock <= cond.LowStockThreshold {
		return &domain.PriceAdjustment{
			RuleName: rule.Name,
			Kind:     KindLowInventory,
			Value:    rule.AdjustmentValue,
			Reason:   fmt.Sprintf("%d units left in stock (threshold %d)", stock, cond.LowStockThreshold),
		}, nil
	}

	return nil, nil
}

// evaluateTime checks the weekend branch before the peak-hours branch and
// returns on the first match. A rule with both flags set on a weekend peak
// hour yields the weekend adjustment only; the tie-break is deliberate.
func (s *PricingService) evaluateTime(rule domain.PricingRule) (*domain.PriceAdjustment, error) {
	cond, err := decodeTimeConditions(rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
	}

	now := s.clock.Now()

	if cond.WeekendDiscount {
		dow := now.Weekday()
		if dow == time.Saturday || dow == time.Sunday {
			return &domain.PriceAdjustment{
				RuleName: rule.Name,
				Kind:     KindWeekendDiscount,
				Value:    rule.AdjustmentValue,
				Reason:   fmt.Sprintf("weekend pricing (%s)", dow),
			}, nil
		}
	}

	if cond.PeakHours {
		hour := now.Hour()
		if hour >= cond.PeakStart && hour < cond.PeakEnd {
			return &domain.PriceAdjustment{
				RuleName: rule.Name,
				Kind:     KindPeakHours,
				Value:    rule.AdjustmentValue,
				Reason:   fmt.Sprintf("peak hours %dh-%dh (now %dh)", cond.PeakStart, cond.PeakEnd, hour),
			}, nil
		}
	}

	return nil, nil
}

// evaluateSegment requires an authenticated user and an exact tier match.
// A platinum user does not satisfy a rule requiring gold; tiers have no
// ordering here.
func (s *PricingService) evaluateSegment(ctx context.Context, rule domain.PricingRule, userID uint64) (*domain.PriceAdjustment, error) {
	cond, err := decodeSegmentConditions(rule.Conditions)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
	}

	if userID == 0 {
		return nil, nil
	}

	if !cond.LoyaltyDiscount {
		return nil, nil
	}

	tier, err := s.tierRepo.Tier(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("rule %q: tier: %w", rule.Name, err)
	}

	if tier == cond.RequiredTier {
		return &domain.PriceAdjustment{
			RuleName: rule.Name,
			Kind:     KindLoyaltyDiscount,
			Value:    rule.AdjustmentValue,
			Reason:   fmt.Sprintf("loyalty tier %s", tier),
		}, nil
	}

	return nil, nil
}
