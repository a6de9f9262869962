package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"jammshop/domain"

	"gorm.io/datatypes"
)

// ---- fakes shared across the package tests ----

type fakeRuleRepo struct {
	rules []domain.PricingRule
	err   error
}

func (f *fakeRuleRepo) FindActiveOrdered(ctx context.Context) ([]domain.PricingRule, error) {
	return f.rules, f.err
}

type fakeViewRepo struct {
	views map[uint64]int64
	err   error
}

func (f *fakeViewRepo) ViewCount(ctx context.Context, productID uint64, windowDays int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.views[productID], nil
}

type fakeInventoryRepo struct {
	stock map[uint64]int
	err   error
}

func (f *fakeInventoryRepo) Stock(ctx context.Context, productID uint64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.stock[productID], nil
}

type fakeTierRepo struct {
	tiers map[uint64]string
	err   error
}

func (f *fakeTierRepo) Tier(ctx context.Context, userID uint64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.tiers[userID], nil
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func newTestService(rules *fakeRuleRepo, views *fakeViewRepo, inv *fakeInventoryRepo, tiers *fakeTierRepo) *PricingService {
	if views == nil {
		views = &fakeViewRepo{}
	}
	if inv == nil {
		inv = &fakeInventoryRepo{}
	}
	if tiers == nil {
		tiers = &fakeTierRepo{}
	}
	return NewPricingService(rules, views, inv, tiers)
}

func demandRule(name string, threshold int64, adjType string, value float64, priority int) domain.PricingRule {
	return domain.PricingRule{
		Name:            name,
		RuleType:        domain.RuleTypeDemand,
		Conditions:      datatypes.JSONMap{"threshold": float64(threshold)},
		AdjustmentType:  adjType,
		AdjustmentValue: value,
		Priority:        priority,
		Active:          true,
	}
}

func inventoryRule(name string, threshold int, adjType string, value float64, priority int) domain.PricingRule {
	return domain.PricingRule{
		Name:            name,
		RuleType:        domain.RuleTypeInventory,
		Conditions:      datatypes.JSONMap{"low_stock_threshold": float64(threshold)},
		AdjustmentType:  adjType,
		AdjustmentValue: value,
		Priority:        priority,
		Active:          true,
	}
}

// ---- facade tests ----

func TestCalculatePrice_NoRulesReturnsBasePrice(t *testing.T) {
	svc := newTestService(&fakeRuleRepo{}, nil, nil, nil)

	quote, err := svc.CalculatePrice(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Price != 100 {
		t.Errorf("price = %v, want 100", quote.Price)
	}
	if len(quote.Adjustments) != 0 {
		t.Errorf("adjustments = %v, want empty", quote.Adjustments)
	}
}

func TestCalculatePrice_RuleFetchFailureFallsBackToBasePrice(t *testing.T) {
	svc := newTestService(&fakeRuleRepo{err: errors.New("store down")}, nil, nil, nil)

	quote, err := svc.CalculatePrice(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Price != 100 {
		t.Errorf("price = %v, want 100", quote.Price)
	}
	if len(quote.Adjustments) != 0 {
		t.Errorf("adjustments = %v, want empty", quote.Adjustments)
	}
}

func TestCalculatePrice_RejectsNonPositiveBasePrice(t *testing.T) {
	svc := newTestService(&fakeRuleRepo{}, nil, nil, nil)

	if _, err := svc.CalculatePrice(context.Background(), 1, 0, 0); err == nil {
		t.Error("expected error for zero base price")
	}
	if _, err := svc.CalculatePrice(context.Background(), 1, -5, 0); err == nil {
		t.Error("expected error for negative base price")
	}
}

func TestCalculatePrice_MixedPercentageAndFixed(t *testing.T) {
	// base 200; -15% at priority 10, then fixed -10 at priority 5:
	// (200 * 0.85) - 10 = 160
	rules := &fakeRuleRepo{rules: []domain.PricingRule{
		demandRule("surge discount", 100, domain.AdjustmentPercentage, -15, 10),
		inventoryRule("clearance", 5, domain.AdjustmentFixed, -10, 5),
	}}
	views := &fakeViewRepo{views: map[uint64]int64{7: 150}}
	inv := &fakeInventoryRepo{stock: map[uint64]int{7: 3}}

	svc := newTestService(rules, views, inv, nil)

	quote, err := svc.CalculatePrice(context.Background(), 7, 200, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Price != 160 {
		t.Errorf("price = %v, want 160", quote.Price)
	}
	if len(quote.Adjustments) != 2 {
		t.Fatalf("adjustments = %d, want 2", len(quote.Adjustments))
	}
	if quote.Adjustments[0].Kind != KindDemandSurge {
		t.Errorf("first adjustment kind = %s, want %s", quote.Adjustments[0].Kind, KindDemandSurge)
	}
	if quote.Adjustments[1].Kind != KindLowInventory {
		t.Errorf("second adjustment kind = %s, want %s", quote.Adjustments[1].Kind, KindLowInventory)
	}
}

func TestCalculatePrice_OrderDependence(t *testing.T) {
	// fixed -10 first then -20%: (100-10)*0.8 = 72
	// -20% first then fixed -10: (100*0.8)-10 = 70
	views := &fakeViewRepo{views: map[uint64]int64{1: 500}}
	inv := &fakeInventoryRepo{stock: map[uint64]int{1: 2}}

	fixedFirst := &fakeRuleRepo{rules: []domain.PricingRule{
		demandRule("fixed first", 100, domain.AdjustmentFixed, -10, 10),
		inventoryRule("pct second", 5, domain.AdjustmentPercentage, -20, 5),
	}}
	svc := newTestService(fixedFirst, views, inv, nil)
	quote, err := svc.CalculatePrice(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price != 72 {
		t.Errorf("fixed-then-percentage price = %v, want 72", quote.Price)
	}

	pctFirst := &fakeRuleRepo{rules: []domain.PricingRule{
		demandRule("pct first", 100, domain.AdjustmentPercentage, -20, 10),
		inventoryRule("fixed second", 5, domain.AdjustmentFixed, -10, 5),
	}}
	svc = newTestService(pctFirst, views, inv, nil)
	quote, err = svc.CalculatePrice(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price != 70 {
		t.Errorf("percentage-then-fixed price = %v, want 70", quote.Price)
	}
}

func TestCalculatePrice_FloorInvariant(t *testing.T) {
	// cumulative -90% would land at 10; floor holds the quote at 50
	views := &fakeViewRepo{views: map[uint64]int64{1: 500}}
	inv := &fakeInventoryRepo{stock: map[uint64]int{1: 1}}

	rules := &fakeRuleRepo{rules: []domain.PricingRule{
		demandRule("deep discount", 100, domain.AdjustmentPercentage, -80, 10),
		inventoryRule("deeper", 5, domain.AdjustmentPercentage, -50, 5),
	}}

	svc := newTestService(rules, views, inv, nil)
	quote, err := svc.CalculatePrice(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Price != 50 {
		t.Errorf("price = %v, want floor 50", quote.Price)
	}
	// matched adjustments stay on the audit trail even when clamped
	if len(quote.Adjustments) != 2 {
		t.Errorf("adjustments = %d, want 2", len(quote.Adjustments))
	}
}

func TestCalculatePrice_BadRuleDoesNotBlockOthers(t *testing.T) {
	// first rule has a malformed conditions bag; second still applies
	bad := domain.PricingRule{
		Name:            "broken",
		RuleType:        domain.RuleTypeDemand,
		Conditions:      datatypes.JSONMap{"threshold": "not-a-number"},
		AdjustmentType:  domain.AdjustmentPercentage,
		AdjustmentValue: -50,
		Priority:        10,
		Active:          true,
	}
	good := inventoryRule("still works", 5, domain.AdjustmentFixed, -10, 5)

	rules := &fakeRuleRepo{rules: []domain.PricingRule{bad, good}}
	inv := &fakeInventoryRepo{stock: map[uint64]int{1: 3}}

	svc := newTestService(rules, nil, inv, nil)
	quote, err := svc.CalculatePrice(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Price != 90 {
		t.Errorf("price = %v, want 90", quote.Price)
	}
	if len(quote.Adjustments) != 1 {
		t.Fatalf("adjustments = %d, want 1", len(quote.Adjustments))
	}
	if quote.Adjustments[0].RuleName != "still works" {
		t.Errorf("applied rule = %s, want 'still works'", quote.Adjustments[0].RuleName)
	}
}

func TestCalculatePrice_SlowSourceFailsOpen(t *testing.T) {
	// the view source errors (stands in for a timeout); demand rule becomes
	// a no-match and the quote still comes back
	rules := &fakeRuleRepo{rules: []domain.PricingRule{
		demandRule("surge", 100, domain.AdjustmentPercentage, 25, 10),
	}}
	views := &fakeViewRepo{err: context.DeadlineExceeded}

	svc := newTestService(rules, views, nil, nil)
	quote, err := svc.CalculatePrice(context.Background(), 1, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Price != 100 {
		t.Errorf("price = %v, want 100", quote.Price)
	}
	if len(quote.Adjustments) != 0 {
		t.Errorf("adjustments = %v, want empty", quote.Adjustments)
	}
}
