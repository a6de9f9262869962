package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type RecommendService interface {
	GetTrending(ctx context.Context, limit int) ([]domain.Recommendation, error)
}

type RecommendHandler struct {
	recommendService RecommendService
	timeout          time.Duration
}

func NewRecommendHandler(recommendService RecommendService) *RecommendHandler {
	return &RecommendHandler{
		recommendService: recommendService,
		timeout:          10 * time.Second,
	}
}

// GetTrending lists the most viewed products of the trailing week.
func (h *RecommendHandler) GetTrending(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.recommendService.GetTrending(ctx, limit)
	if err != nil {
		logger.Error("Failed to get trending products", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
