//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/database"
	"github.com/handmade-hub/handmade-hub-backend-go/handlers"
	"github.com/handmade-hub/handmade-hub-backend-go/middleware"
	"github.com/handmade-hub/handmade-hub-backend-go/repository"
	"github.com/handmade-hub/handmade-hub-backend-go/routes"
	"github.com/handmade-hub/handmade-hub-backend-go/services"
	"github.com/handmade-hub/handmade-hub-backend-go/telemetry"
	"github.com/handmade-hub/handmade-hub-backend-go/utils"
)

var repositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewProductRepository,
	repository.NewOrderRepository,
	repository.NewArtisanRequestRepository,
	repository.NewCartRepository,
	repository.NewReviewRepository,
	wire.Bind(new(services.UserStore), new(*repository.UserRepository)),
	wire.Bind(new(services.ProductStore), new(*repository.ProductRepository)),
	wire.Bind(new(services.OrderStore), new(*repository.OrderRepository)),
	wire.Bind(new(services.ArtisanRequestStore), new(*repository.ArtisanRequestRepository)),
	wire.Bind(new(services.CartStore), new(*repository.CartRepository)),
	wire.Bind(new(services.ReviewStore), new(*repository.ReviewRepository)),
)

var serviceSet = wire.NewSet(
	utils.NewJWT,
	utils.NewStripeGateway,
	wire.Bind(new(services.TokenIssuer), new(*utils.JWT)),
	wire.Bind(new(middleware.ActorResolver), new(*utils.JWT)),
	wire.Bind(new(services.PaymentGateway), new(*utils.StripeGateway)),
	services.NewAuthService,
	services.NewOrderService,
	services.NewArtisanRequestService,
	services.NewCatalogService,
	services.NewUserService,
	services.NewCartService,
	services.NewReviewService,
	services.NewPaymentService,
)

var handlerSet = wire.NewSet(
	handlers.NewAuthHandler,
	handlers.NewOrderHandler,
	handlers.NewArtisanRequestHandler,
	handlers.NewProductHandler,
	handlers.NewUserHandler,
	handlers.NewCartHandler,
	handlers.NewReviewHandler,
	handlers.NewPaymentHandler,
	wire.Struct(new(routes.Handlers), "*"),
)

var metricsSet = wire.NewSet(
	telemetry.NewMetricsRegistry,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	middleware.NewServerMetrics,
)

func InitializeServer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*echo.Echo, func(), error) {
	wire.Build(
		database.Connect,
		repositorySet,
		serviceSet,
		handlerSet,
		metricsSet,
		routes.NewServer,
	)
	return nil, nil, nil
}
