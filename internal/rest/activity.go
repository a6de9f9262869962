package rest

import (
	"net/http"
	"strconv"

	"jammshop/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// ActivityReader exposes the in-memory back-office activity log.
type ActivityReader interface {
	Recent(limit int) []domain.ActivityEntry
}

type ActivityHandler struct {
	activity ActivityReader
}

func NewActivityHandler(activity ActivityReader) *ActivityHandler {
	return &ActivityHandler{
		activity: activity,
	}
}

const defaultActivityLimit = 100

// GetRecent lists the latest admin actions, newest first.
func (h *ActivityHandler) GetRecent(c echo.Context) error {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		limit = n
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.activity.Recent(limit)))
}
