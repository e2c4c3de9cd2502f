package routes

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/handlers"
	customMiddleware "github.com/handmade-hub/handmade-hub-backend-go/middleware"
	"github.com/handmade-hub/handmade-hub-backend-go/telemetry"
)

// NewServer builds the echo instance with the middleware stack and every route mounted.
func NewServer(
	cfg config.Config,
	logger *zap.Logger,
	h Handlers,
	resolver customMiddleware.ActorResolver,
	metrics *customMiddleware.ServerMetrics,
	gatherer prometheus.Gatherer,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)
	e.Validator = handlers.NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(telemetry.ServiceName)))
	e.Use(metrics.Middleware())
	e.Use(customMiddleware.RequestLogger(logger))
	e.Use(echomw.SecureWithConfig(echomw.DefaultSecureConfig))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"},
	}))
	e.Use(echomw.BodyLimit("2M"))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	SetupRoutes(e, h, resolver)
	return e
}
