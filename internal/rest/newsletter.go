package rest

import (
	"context"
	"net/http"
	"time"

	"jammshop/domain"
	"jammshop/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, email, fullName string) (domain.NewsletterSubscriber, error)
	Confirm(ctx context.Context, token string) error
	Unsubscribe(ctx context.Context, email string) error
}

type NewsletterHandler struct {
	newsletterService NewsletterService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewNewsletterHandler(newsletterService NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletterService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type SubscribeRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req SubscribeRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sub, err := h.newsletterService.Subscribe(ctx, req.Email, req.FullName)
	if err != nil {
		logger.Error("Failed to subscribe to newsletter", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(sub))
}

func (h *NewsletterHandler) Confirm(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing confirmation token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.newsletterService.Confirm(ctx, token); err != nil {
		logger.Error("Failed to confirm newsletter subscription", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Subscription confirmed"))
}

func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req UnsubscribeRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.newsletterService.Unsubscribe(ctx, req.Email); err != nil {
		logger.Error("Failed to unsubscribe from newsletter", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Unsubscribed"))
}
