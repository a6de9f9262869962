package pricing

import (
	"context"
	"testing"
	"time"

	"jammshop/domain"

	"gorm.io/datatypes"
)

func TestEvaluateDemand_StrictThreshold(t *testing.T) {
	rule := demandRule("surge", 100, domain.AdjustmentPercentage, 10, 1)

	tests := []struct {
		name      string
		views     int64
		wantMatch bool
	}{
		{"well below threshold", 10, false},
		{"exactly at threshold does not match", 100, false},
		{"one above threshold matches", 101, true},
		{"zero views never matches", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views := &fakeViewRepo{views: map[uint64]int64{1: tt.views}}
			svc := newTestService(&fakeRuleRepo{}, views, nil, nil)

			adj, err := svc.evaluateDemand(context.Background(), rule, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (adj != nil) != tt.wantMatch {
				t.Errorf("match = %v, want %v", adj != nil, tt.wantMatch)
			}
			if adj != nil && adj.Kind != KindDemandSurge {
				t.Errorf("kind = %s, want %s", adj.Kind, KindDemandSurge)
			}
		})
	}
}

func TestEvaluateInventory_InclusiveThreshold(t *testing.T) {
	rule := inventoryRule("low stock", 5, domain.AdjustmentPercentage, 15, 1)

	tests := []struct {
		name      string
		stock     int
		wantMatch bool
	}{
		{"below threshold matches", 2, true},
		{"exactly at threshold matches", 5, true},
		{"one above threshold does not match", 6, false},
		{"zero stock matches", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &fakeInventoryRepo{stock: map[uint64]int{1: tt.stock}}
			svc := newTestService(&fakeRuleRepo{}, nil, inv, nil)

			adj, err := svc.evaluateInventory(context.Background(), rule, 1)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (adj != nil) != tt.wantMatch {
				t.Errorf("match = %v, want %v", adj != nil, tt.wantMatch)
			}
		})
	}
}

func timeRule(name string, cond datatypes.JSONMap) domain.PricingRule {
	return domain.PricingRule{
		Name:            name,
		RuleType:        domain.RuleTypeTime,
		Conditions:      cond,
		AdjustmentType:  domain.AdjustmentPercentage,
		AdjustmentValue: -5,
		Priority:        1,
		Active:          true,
	}
}

func TestEvaluateTime(t *testing.T) {
	// 2026-08-29 is a Saturday
	saturdayEvening := time.Date(2026, 8, 29, 19, 0, 0, 0, time.UTC)
	tuesdayEvening := time.Date(2026, 8, 25, 19, 0, 0, 0, time.UTC)
	tuesdayMorning := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		cond     datatypes.JSONMap
		wantKind string
	}{
		{
			name:     "weekend discount on saturday",
			now:      saturdayEvening,
			cond:     datatypes.JSONMap{"weekend_discount": true},
			wantKind: KindWeekendDiscount,
		},
		{
			name: "weekend discount not on tuesday",
			now:  tuesdayEvening,
			cond: datatypes.JSONMap{"weekend_discount": true},
		},
		{
			name:     "peak hours during the window",
			now:      tuesdayEvening,
			cond:     datatypes.JSONMap{"peak_hours": true, "peak_start": float64(17), "peak_end": float64(21)},
			wantKind: KindPeakHours,
		},
		{
			name: "peak hours outside the window",
			now:  tuesdayMorning,
			cond: datatypes.JSONMap{"peak_hours": true, "peak_start": float64(17), "peak_end": float64(21)},
		},
		{
			// both branches are true but the weekend check runs first;
			// that tie-break is part of the contract
			name:     "weekend wins over peak hours",
			now:      saturdayEvening,
			cond:     datatypes.JSONMap{"weekend_discount": true, "peak_hours": true, "peak_start": float64(17), "peak_end": float64(21)},
			wantKind: KindWeekendDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeRuleRepo{}, nil, nil, nil).WithClock(fixedClock{t: tt.now})

			adj, err := svc.evaluateTime(timeRule("time rule", tt.cond))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantKind == "" {
				if adj != nil {
					t.Errorf("unexpected match: %+v", adj)
				}
				return
			}

			if adj == nil {
				t.Fatal("expected a match")
			}
			if adj.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", adj.Kind, tt.wantKind)
			}
		})
	}
}

func segmentRule(tier string) domain.PricingRule {
	return domain.PricingRule{
		Name:            "loyalty",
		RuleType:        domain.RuleTypeUserSegment,
		Conditions:      datatypes.JSONMap{"loyalty_discount": true, "required_tier": tier},
		AdjustmentType:  domain.AdjustmentPercentage,
		AdjustmentValue: -10,
		Priority:        1,
		Active:          true,
	}
}

func TestEvaluateSegment(t *testing.T) {
	tiers := &fakeTierRepo{tiers: map[uint64]string{
		1: domain.TierGold,
		2: domain.TierPlatinum,
	}}

	svc := newTestService(&fakeRuleRepo{}, nil, nil, tiers)

	t.Run("anonymous user never matches", func(t *testing.T) {
		adj, err := svc.evaluateSegment(context.Background(), segmentRule(domain.TierGold), 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if adj != nil {
			t.Errorf("unexpected match: %+v", adj)
		}
	})

	t.Run("exact tier matches", func(t *testing.T) {
		adj, err := svc.evaluateSegment(context.Background(), segmentRule(domain.TierGold), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if adj == nil {
			t.Fatal("expected a match")
		}
		if adj.Kind != KindLoyaltyDiscount {
			t.Errorf("kind = %s, want %s", adj.Kind, KindLoyaltyDiscount)
		}
	})

	t.Run("higher tier does not satisfy a lower tier rule", func(t *testing.T) {
		// platinum outranks gold in the loyalty program, but the rule wants
		// gold exactly
		adj, err := svc.evaluateSegment(context.Background(), segmentRule(domain.TierGold), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if adj != nil {
			t.Errorf("unexpected match: %+v", adj)
		}
	})

	t.Run("loyalty_discount false never matches", func(t *testing.T) {
		rule := segmentRule(domain.TierGold)
		rule.Conditions = datatypes.JSONMap{"loyalty_discount": false, "required_tier": domain.TierGold}

		adj, err := svc.evaluateSegment(context.Background(), rule, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if adj != nil {
			t.Errorf("unexpected match: %+v", adj)
		}
	})
}

func TestValidateConditions(t *testing.T) {
	tests := []struct {
		name     string
		ruleType string
		bag      datatypes.JSONMap
		wantErr  bool
	}{
		{"valid demand", domain.RuleTypeDemand, datatypes.JSONMap{"threshold": float64(100)}, false},
		{"demand missing threshold", domain.RuleTypeDemand, datatypes.JSONMap{}, true},
		{"demand non-numeric threshold", domain.RuleTypeDemand, datatypes.JSONMap{"threshold": "x"}, true},
		{"valid inventory", domain.RuleTypeInventory, datatypes.JSONMap{"low_stock_threshold": float64(5)}, false},
		{"valid time defaults peak window", domain.RuleTypeTime, datatypes.JSONMap{"peak_hours": true}, false},
		{"time peak window out of range", domain.RuleTypeTime, datatypes.JSONMap{"peak_hours": true, "peak_start": float64(25)}, true},
		{"valid segment", domain.RuleTypeUserSegment, datatypes.JSONMap{"loyalty_discount": true, "required_tier": "gold"}, false},
		{"segment missing tier", domain.RuleTypeUserSegment, datatypes.JSONMap{"loyalty_discount": true}, true},
		{"unknown type", "flash_sale", datatypes.JSONMap{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConditions(tt.ruleType, tt.bag)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConditions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
