package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/logger"
	"github.com/handmade-hub/handmade-hub-backend-go/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	zl, syncLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer syncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		zl.Fatal("JWT_SECRET is not set")
	}

	shutdownTracing, err := telemetry.InitTracerProvider(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("init tracing", zap.Error(err))
	}

	e, cleanup, err := InitializeServer(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize server", zap.Error(err))
	}
	defer cleanup()

	go func() {
		zl.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zl.Error("tracer shutdown", zap.Error(err))
	}
}
