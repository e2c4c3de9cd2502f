package utils

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/errs"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

// StripeGateway creates card payment intents through the Stripe API.
type StripeGateway struct {
	client *paymentintent.Client
}

func NewStripeGateway(cfg config.Config) *StripeGateway {
	if cfg.StripeSecretKey == "" {
		return &StripeGateway{}
	}
	return &StripeGateway{
		client: &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.StripeSecretKey},
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (*models.PaymentIntent, error) {
	if g.client == nil {
		return nil, errs.Internal("stripe secret key not configured", nil)
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := g.client.New(params)
	if err != nil {
		return nil, errors.Wrap(err, "stripe create payment intent")
	}
	return &models.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
