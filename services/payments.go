package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

//go:generate mockgen -source=./payments.go -package=svcmocks -destination=mocks/payments.mock.go PaymentGateway
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*models.PaymentIntent, error)
}

type PaymentService struct {
	gateway PaymentGateway
}

func NewPaymentService(gateway PaymentGateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateIntent asks the gateway for a payment intent. amount is in the currency's minor unit.
func (s *PaymentService) CreateIntent(ctx context.Context, amount int64, currency string) (*models.PaymentIntent, error) {
	if amount <= 0 {
		return nil, errs.Validation("amount must be positive")
	}
	currency = strings.ToLower(strings.TrimSpace(currency))
	if currency == "" {
		currency = "usd"
	}
	intent, err := s.gateway.CreateIntent(ctx, amount, currency)
	if err != nil {
		var appErr *errs.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, errs.Internal("failed to create payment intent", err)
	}
	return intent, nil
}
