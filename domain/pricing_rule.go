package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.pricing_rules (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name             TEXT NOT NULL,
//     rule_type        TEXT NOT NULL,
//     conditions       JSONB NOT NULL DEFAULT '{}',
//     adjustment_type  TEXT NOT NULL,
//     adjustment_value NUMERIC NOT NULL,
//     priority         INT NOT NULL DEFAULT 0,
//     active           BOOLEAN NOT NULL DEFAULT TRUE,
//     created_at       TIMESTAMPTZ DEFAULT NOW(),
//     updated_at       TIMESTAMPTZ DEFAULT NOW()
// );

const (
	RuleTypeDemand      = "demand"
	RuleTypeInventory   = "inventory"
	RuleTypeTime        = "time"
	RuleTypeUserSegment = "user_segment"
)

const (
	AdjustmentPercentage = "percentage"
	AdjustmentFixed      = "fixed"
)

type PricingRule struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string            `gorm:"column:name;type:text;not null" json:"name"`
	RuleType        string            `gorm:"column:rule_type;type:text;not null" json:"rule_type"`
	Conditions      datatypes.JSONMap `gorm:"column:conditions;type:jsonb" json:"conditions"`
	AdjustmentType  string            `gorm:"column:adjustment_type;type:text;not null" json:"adjustment_type"`
	AdjustmentValue float64           `gorm:"column:adjustment_value;type:numeric;not null" json:"adjustment_value"`
	Priority        int               `gorm:"column:priority;not null;default:0" json:"priority"`
	Active          bool              `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt       time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (PricingRule) TableName() string {
	return "pricing_rules"
}

// PriceAdjustment is one matched rule's contribution, kept for audit/display.
// Kind is a semantic label ("demand_surge", "low_inventory", ...), not the
// rule_type column.
type PriceAdjustment struct {
	RuleName string  `json:"rule_name"`
	Kind     string  `json:"type"`
	Value    float64 `json:"value"`
	Reason   string  `json:"reason"`
}

type PriceQuote struct {
	ProductID   uint64            `json:"product_id"`
	BasePrice   float64           `json:"base_price"`
	Price       float64           `json:"price"`
	Adjustments []PriceAdjustment `json:"adjustments"`
}
