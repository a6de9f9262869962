package pricing

import (
	"fmt"

	"jammshop/domain"

	"gorm.io/datatypes"
)

// Condition bags are stored as jsonb and only make sense for the rule type
// that owns them. Decoding to a typed struct up front means a malformed bag
// fails for that one rule instead of poisoning the whole calculation.

type DemandConditions struct {
	Threshold int64
}

type InventoryConditions struct {
	LowStockThreshold int
}

type TimeConditions struct {
	WeekendDiscount bool
	PeakHours       bool
	PeakStart       int
	PeakEnd         int
}

type SegmentConditions struct {
	LoyaltyDiscount bool
	RequiredTier    string
}

func decodeDemandConditions(bag datatypes.JSONMap) (DemandConditions, error) {
	threshold, err := intField(bag, "threshold")
	if err != nil {
		return DemandConditions{}, err
	}
	return DemandConditions{Threshold: threshold}, nil
}

func decodeInventoryConditions(bag datatypes.JSONMap) (InventoryConditions, error) {
	threshold, err := intField(bag, "low_stock_threshold")
	if err != nil {
		return InventoryConditions{}, err
	}
	return InventoryConditions{LowStockThreshold: int(threshold)}, nil
}

func decodeTimeConditions(bag datatypes.JSONMap) (TimeConditions, error) {
	cond := TimeConditions{
		WeekendDiscount: boolField(bag, "weekend_discount"),
		PeakHours:       boolField(bag, "peak_hours"),
		// sensible defaults when peak window is omitted
		PeakStart: 17,
		PeakEnd:   21,
	}

	if _, ok := bag["peak_start"]; ok {
		v, err := intField(bag, "peak_start")
		if err != nil {
			return TimeConditions{}, err
		}
		cond.PeakStart = int(v)
	}
	if _, ok := bag["peak_end"]; ok {
		v, err := intField(bag, "peak_end")
		if err != nil {
			return TimeConditions{}, err
		}
		cond.PeakEnd = int(v)
	}

	if cond.PeakStart < 0 || cond.PeakStart > 23 || cond.PeakEnd < 0 || cond.PeakEnd > 23 {
		return TimeConditions{}, fmt.Errorf("peak window out of range: start=%d end=%d", cond.PeakStart, cond.PeakEnd)
	}

	return cond, nil
}

func decodeSegmentConditions(bag datatypes.JSONMap) (SegmentConditions, error) {
	cond := SegmentConditions{
		LoyaltyDiscount: boolField(bag, "loyalty_discount"),
	}

	tier, ok := bag["required_tier"].(string)
	if !ok || tier == "" {
		return SegmentConditions{}, fmt.Errorf("missing required_tier")
	}
	cond.RequiredTier = tier

	return cond, nil
}

// intField reads a numeric field; jsonb numbers decode as float64.
func intField(bag datatypes.JSONMap, key string) (int64, error) {
	raw, ok := bag[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}

	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("field %s is not a number", key)
	}
}

func boolField(bag datatypes.JSONMap, key string) bool {
	v, ok := bag[key].(bool)
	return ok && v
}

// validateConditions is used by the admin rule API to reject bags the
// evaluators would not be able to decode.
func ValidateConditions(ruleType string, bag datatypes.JSONMap) error {
	var err error
	switch ruleType {
	case domain.RuleTypeDemand:
		_, err = decodeDemandConditions(bag)
	case domain.RuleTypeInventory:
		_, err = decodeInventoryConditions(bag)
	case domain.RuleTypeTime:
		_, err = decodeTimeConditions(bag)
	case domain.RuleTypeUserSegment:
		_, err = decodeSegmentConditions(bag)
	default:
		err = fmt.Errorf("unknown rule type: %s", ruleType)
	}
	return err
}
