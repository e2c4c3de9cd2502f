package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/errs"
)

func TestStripeGatewayWithoutKey(t *testing.T) {
	g := NewStripeGateway(config.Config{})

	_, err := g.CreateIntent(context.Background(), 1000, "usd")
	require.Error(t, err)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	assert.Equal(t, "stripe secret key not configured", errs.Message(err))
}
