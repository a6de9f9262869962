package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type RuleAdminService interface {
	ListRules(ctx context.Context) ([]domain.PricingRule, error)
	GetRule(ctx context.Context, id uint64) (*domain.PricingRule, error)
	CreateRule(ctx context.Context, actor string, rule *domain.PricingRule) (*domain.PricingRule, error)
	UpdateRule(ctx context.Context, actor string, rule *domain.PricingRule) (*domain.PricingRule, error)
	DeleteRule(ctx context.Context, actor string, id uint64) error
}

type PricingAdminHandler struct {
	ruleService RuleAdminService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewPricingAdminHandler(ruleService RuleAdminService) *PricingAdminHandler {
	return &PricingAdminHandler{
		ruleService: ruleService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type PricingRuleRequest struct {
	Name            string                 `json:"name" validate:"required"`
	RuleType        string                 `json:"rule_type" validate:"required,oneof=demand inventory time user_segment"`
	Conditions      map[string]interface{} `json:"conditions"`
	AdjustmentType  string                 `json:"adjustment_type" validate:"required,oneof=percentage fixed"`
	AdjustmentValue float64                `json:"adjustment_value"`
	Priority        int                    `json:"priority"`
	Active          *bool                  `json:"active"`
}

func (r *PricingRuleRequest) toDomain(id uint64) *domain.PricingRule {
	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &domain.PricingRule{
		ID:              id,
		Name:            r.Name,
		RuleType:        r.RuleType,
		Conditions:      datatypes.JSONMap(r.Conditions),
		AdjustmentType:  r.AdjustmentType,
		AdjustmentValue: r.AdjustmentValue,
		Priority:        r.Priority,
		Active:          active,
	}
}

func actorFromContext(c echo.Context) string {
	if v, ok := c.Get("user_id").(uint64); ok && v > 0 {
		return fmt.Sprintf("user:%d", v)
	}
	return "unknown"
}

func (h *PricingAdminHandler) ListRules(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rules, err := h.ruleService.ListRules(ctx)
	if err != nil {
		logger.Error("Failed to list pricing rules", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rules))
}

func (h *PricingAdminHandler) GetRule(c echo.Context) error {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid rule id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rule, err := h.ruleService.GetRule(ctx, ruleID)
	if err != nil {
		if err.Error() == "pricing rule not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rule))
}

func (h *PricingAdminHandler) CreateRule(c echo.Context) error {
	var req PricingRuleRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate pricing rule request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rule, err := h.ruleService.CreateRule(ctx, actorFromContext(c), req.toDomain(0))
	if err != nil {
		logger.Error("Failed to create pricing rule", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(rule))
}

func (h *PricingAdminHandler) UpdateRule(c echo.Context) error {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid rule id"})
	}

	var req PricingRuleRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate pricing rule request", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rule, err := h.ruleService.UpdateRule(ctx, actorFromContext(c), req.toDomain(ruleID))
	if err != nil {
		logger.Error("Failed to update pricing rule", "error", err)
		if err.Error() == "pricing rule not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rule))
}

func (h *PricingAdminHandler) DeleteRule(c echo.Context) error {
	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid rule id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ruleService.DeleteRule(ctx, actorFromContext(c), ruleID); err != nil {
		logger.Error("Failed to delete pricing rule", "error", err)
		if err.Error() == "pricing rule not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Pricing rule deleted successfully"))
}
