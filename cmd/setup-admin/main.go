// Command setup-admin creates the marketplace admin account or resets its password.
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/database"
	"github.com/handmade-hub/handmade-hub-backend-go/logger"
	"github.com/handmade-hub/handmade-hub-backend-go/repository"
	"github.com/handmade-hub/handmade-hub-backend-go/services"
	"github.com/handmade-hub/handmade-hub-backend-go/utils"
)

const adminEmail = "admin@handmadehub.com"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	zl, syncLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer syncLogger()

	if err := run(context.Background(), cfg, zl); err != nil {
		zl.Error("setup-admin failed", zap.Error(err))
		syncLogger()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, zl *zap.Logger) error {
	db, cleanup, err := database.Connect(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer cleanup()

	auth := services.NewAuthService(repository.NewUserRepository(db), utils.NewJWT(cfg), zl)
	password := config.GetEnv("ADMIN_PASSWORD", "password123")
	created, err := auth.EnsureAdmin(ctx, adminEmail, password)
	if err != nil {
		return err
	}
	if created {
		zl.Info("admin user created", zap.String("email", adminEmail))
	} else {
		zl.Info("admin user already exists, password has been reset")
	}
	return nil
}
