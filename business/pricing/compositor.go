package pricing

import (
	"sort"

	"jammshop/domain"
)

// floorRatio is the lowest a quote may fall relative to the base price.
const floorRatio = 0.5

// match pairs a rule with the descriptor its evaluator produced.
type match struct {
	rule       domain.PricingRule
	adjustment domain.PriceAdjustment
}

// composePrice folds matched adjustments into the base price.
//
// Matches are expected in priority-descending order (the rule store
// contract) but are re-sorted defensively; encounter order is kept for
// equal priorities. Percentage adjustments compound against the running
// price, not the base, so ordering changes the result. The fold is
// followed by the floor clamp; there is no ceiling.
func composePrice(basePrice float64, matches []match) (float64, bool) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rule.Priority > matches[j].rule.Priority
	})

	finalPrice := basePrice
	for _, m := range matches {
		switch m.rule.AdjustmentType {
		case domain.AdjustmentPercentage:
			finalPrice *= 1 + m.adjustment.Value/100
		case domain.AdjustmentFixed:
			finalPrice += m.adjustment.Value
		}
	}

	floor := basePrice * floorRatio
	if finalPrice < floor {
		return floor, true
	}

	return finalPrice, false
}
