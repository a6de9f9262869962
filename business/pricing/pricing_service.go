package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"
)

// ---- Repository interfaces ----

// RuleRepository returns active rules already ordered by priority
// descending; that ordering is the store's contract with the engine.
type RuleRepository interface {
	FindActiveOrdered(ctx context.Context) ([]domain.PricingRule, error)
}

// ViewRepository reports the aggregate view count for a product over a
// trailing window of whole days.
type ViewRepository interface {
	ViewCount(ctx context.Context, productID uint64, windowDays int) (int64, error)
}

type InventoryRepository interface {
	Stock(ctx context.Context, productID uint64) (int, error)
}

type TierRepository interface {
	Tier(ctx context.Context, userID uint64) (string, error)
}

// ---- Service ----

const defaultReadTimeout = 2 * time.Second

type PricingService struct {
	ruleRepo      RuleRepository
	viewRepo      ViewRepository
	inventoryRepo InventoryRepository
	tierRepo      TierRepository
	clock         Clock
	readTimeout   time.Duration
}

func NewPricingService(
	ruleRepo RuleRepository,
	viewRepo ViewRepository,
	inventoryRepo InventoryRepository,
	tierRepo TierRepository,
) *PricingService {
	return &PricingService{
		ruleRepo:      ruleRepo,
		viewRepo:      viewRepo,
		inventoryRepo: inventoryRepo,
		tierRepo:      tierRepo,
		clock:         systemClock{},
		readTimeout:   defaultReadTimeout,
	}
}

// WithClock replaces the wall clock; tests use this to pin the time
// evaluator.
func (s *PricingService) WithClock(clock Clock) *PricingService {
	s.clock = clock
	return s
}

// CalculatePrice runs every active rule against the product (and user, when
// authenticated; userID 0 means anonymous) and folds the matches into a
// final price with an audit trail.
//
// Pricing never becomes unavailable: an empty or unreachable rule store,
// a rule whose evaluator fails, or a timed-out external read all degrade
// to "no adjustment", and the quote falls back to the base price.
func (s *PricingService) CalculatePrice(ctx context.Context, productID uint64, basePrice float64, userID uint64) (domain.PriceQuote, error) {
	if basePrice <= 0 {
		return domain.PriceQuote{}, errors.New("base price must be greater than 0")
	}

	if err := ctx.Err(); err != nil {
		return domain.PriceQuote{}, fmt.Errorf("context error: %w", err)
	}

	quote := domain.PriceQuote{
		ProductID:   productID,
		BasePrice:   basePrice,
		Price:       basePrice,
		Adjustments: []domain.PriceAdjustment{},
	}

	rules, err := s.ruleRepo.FindActiveOrdered(ctx)
	if err != nil {
		logger.Warn("pricing: rule fetch failed, serving base price",
			"product_id", productID,
			"error", err,
		)
		return quote, nil
	}
	if len(rules) == 0 {
		return quote, nil
	}

	matches := make([]match, 0, len(rules))
	for _, rule := range rules {
		adj, err := s.evaluateRule(ctx, rule, productID, userID)
		if err != nil {
			EvaluatorFailuresTotal.WithLabelValues(rule.RuleType).Inc()
			logger.Warn("pricing: evaluator failed, treating rule as no-match",
				"rule", rule.Name,
				"rule_type", rule.RuleType,
				"product_id", productID,
				"error", err,
			)
			continue
		}
		if adj == nil {
			continue
		}

		RuleMatchesTotal.WithLabelValues(rule.RuleType).Inc()
		matches = append(matches, match{rule: rule, adjustment: *adj})
	}

	finalPrice, clamped := composePrice(basePrice, matches)
	if clamped {
		FloorClampsTotal.Inc()
		logger.Debug("pricing: quote clamped to floor",
			"product_id", productID,
			"base_price", basePrice,
		)
	}

	quote.Price = finalPrice
	for _, m := range matches {
		quote.Adjustments = append(quote.Adjustments, m.adjustment)
	}

	return quote, nil
}

// evaluateRule dispatches on the rule type. External reads run under a
// short per-read timeout so one slow source cannot stall the quote.
func (s *PricingService) evaluateRule(ctx context.Context, rule domain.PricingRule, productID, userID uint64) (*domain.PriceAdjustment, error) {
	switch rule.RuleType {
	case domain.RuleTypeDemand:
		readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
		return s.evaluateDemand(readCtx, rule, productID)

	case domain.RuleTypeInventory:
		readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
		return s.evaluateInventory(readCtx, rule, productID)

	case domain.RuleTypeTime:
		return s.evaluateTime(rule)

	case domain.RuleTypeUserSegment:
		readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
		return s.evaluateSegment(readCtx, rule, userID)

	default:
		return nil, fmt.Errorf("unknown rule type: %s", rule.RuleType)
	}
}
