package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
)

// New builds the process logger: JSON in production, colored console output in development.
func New(cfg config.Config) (*zap.Logger, func(), error) {
	var zcfg zap.Config
	if cfg.IsDevelopment() {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "time"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	l, err := zcfg.Build()
	if err != nil {
		return nil, nil, err
	}
	l = l.With(zap.String("service", "handmade-hub"))
	return l, func() { _ = l.Sync() }, nil
}
