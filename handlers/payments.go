package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/handmade-hub/handmade-hub-backend-go/services"
)

type PaymentIntentRequest struct {
	// Amount is in the currency's minor unit, e.g. cents.
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req PaymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	intent, err := h.payments.CreateIntent(c.Request().Context(), req.Amount, req.Currency)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: intent.ClientSecret})
}
