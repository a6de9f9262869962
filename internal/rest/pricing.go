package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"
	"jammshop/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// PriceService quotes a dynamic price for a product.
type PriceService interface {
	CalculatePrice(ctx context.Context, productID uint64, basePrice float64, userID uint64) (domain.PriceQuote, error)
}

// ProductGetter is the catalog lookup the price endpoint needs.
type ProductGetter interface {
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
}

type PricingHandler struct {
	priceService PriceService
	products     ProductGetter
	timeout      time.Duration
}

func NewPricingHandler(priceService PriceService, products ProductGetter) *PricingHandler {
	return &PricingHandler{
		priceService: priceService,
		products:     products,
		timeout:      10 * time.Second,
	}
}

// userIDFromContext reads the authenticated user id set by the auth
// middleware. Zero means anonymous.
func userIDFromContext(c echo.Context) uint64 {
	if v, ok := c.Get("user_id").(uint64); ok {
		return v
	}
	return 0
}

// GetPrice returns the current dynamic price for a product. Works for
// anonymous visitors; a logged-in user may additionally hit segment rules.
func (h *PricingHandler) GetPrice(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.PriceQuoteLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.PriceQuoteRequests.Inc()

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.products.GetProductByID(ctx, productID)
	if err != nil {
		if err.Error() == "product not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to load product for pricing", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	quote, err := h.priceService.CalculatePrice(ctx, productID, product.BasePrice, userIDFromContext(c))
	if err != nil {
		logger.Error("Failed to calculate price", "product_id", productID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(quote))
}
