package pricing

import (
	"testing"

	"jammshop/domain"
)

func pctMatch(name string, value float64, priority int) match {
	return match{
		rule: domain.PricingRule{
			Name:           name,
			AdjustmentType: domain.AdjustmentPercentage,
			Priority:       priority,
		},
		adjustment: domain.PriceAdjustment{RuleName: name, Value: value},
	}
}

func fixedMatch(name string, value float64, priority int) match {
	return match{
		rule: domain.PricingRule{
			Name:           name,
			AdjustmentType: domain.AdjustmentFixed,
			Priority:       priority,
		},
		adjustment: domain.PriceAdjustment{RuleName: name, Value: value},
	}
}

func TestComposePrice(t *testing.T) {
	tests := []struct {
		name        string
		basePrice   float64
		matches     []match
		wantPrice   float64
		wantClamped bool
	}{
		{
			name:      "no matches is identity",
			basePrice: 100,
			wantPrice: 100,
		},
		{
			name:      "single percentage discount",
			basePrice: 100,
			matches:   []match{pctMatch("a", -10, 1)},
			wantPrice: 90,
		},
		{
			name:      "single fixed surcharge",
			basePrice: 100,
			matches:   []match{fixedMatch("a", 15, 1)},
			wantPrice: 115,
		},
		{
			name:      "percentages compound against the running price",
			basePrice: 100,
			matches:   []match{pctMatch("a", -10, 2), pctMatch("b", -20, 1)},
			wantPrice: 72, // 100 * 0.9 * 0.8, not 100 * 0.7
		},
		{
			name:      "fixed then percentage",
			basePrice: 100,
			matches:   []match{fixedMatch("a", -10, 2), pctMatch("b", -20, 1)},
			wantPrice: 72, // (100 - 10) * 0.8
		},
		{
			name:      "percentage then fixed",
			basePrice: 100,
			matches:   []match{pctMatch("a", -20, 2), fixedMatch("b", -10, 1)},
			wantPrice: 70, // (100 * 0.8) - 10
		},
		{
			name:        "floor clamps at half the base price",
			basePrice:   100,
			matches:     []match{pctMatch("a", -80, 2), pctMatch("b", -50, 1)},
			wantPrice:   50,
			wantClamped: true,
		},
		{
			name:        "fixed discount below floor clamps",
			basePrice:   40,
			matches:     []match{fixedMatch("a", -35, 1)},
			wantPrice:   20,
			wantClamped: true,
		},
		{
			name:      "no ceiling on surcharges",
			basePrice: 100,
			matches:   []match{pctMatch("a", 300, 1)},
			wantPrice: 400,
		},
		{
			name:      "exactly at floor is not a clamp",
			basePrice: 100,
			matches:   []match{pctMatch("a", -50, 1)},
			wantPrice: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := composePrice(tt.basePrice, tt.matches)
			if got != tt.wantPrice {
				t.Errorf("composePrice() = %v, want %v", got, tt.wantPrice)
			}
			if clamped != tt.wantClamped {
				t.Errorf("clamped = %v, want %v", clamped, tt.wantClamped)
			}
		})
	}
}

func TestComposePrice_ResortsByPriorityDescending(t *testing.T) {
	// matches arrive out of order; compose must still apply the higher
	// priority first: (100 - 10) * 0.8 = 72
	matches := []match{
		pctMatch("low priority", -20, 1),
		fixedMatch("high priority", -10, 9),
	}

	got, _ := composePrice(100, matches)
	if got != 72 {
		t.Errorf("composePrice() = %v, want 72", got)
	}
}

func TestComposePrice_StableForEqualPriorities(t *testing.T) {
	// equal priorities keep encounter order: (100 - 10) * 0.8 = 72
	matches := []match{
		fixedMatch("first", -10, 5),
		pctMatch("second", -20, 5),
	}

	got, _ := composePrice(100, matches)
	if got != 72 {
		t.Errorf("composePrice() = %v, want 72", got)
	}
}
