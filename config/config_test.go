package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_ENV", "MONGODB_URI", "MONGODB_DATABASE", "JWT_TTL", "FRONTEND_URL", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		t.Setenv(k, "")
	}
	t.Setenv("PORT", "3000")
	t.Setenv("MONGODB_DATABASE", "handmade-hub")
	t.Setenv("JWT_TTL", "bogus")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "handmade-hub", cfg.MongoDatabase)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "Development")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("FRONTEND_URL", "http://a.test, http://b.test")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestAllowedOriginsFallsBackToWildcard(t *testing.T) {
	cfg := Config{FrontendURL: " , "}
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestGetEnv(t *testing.T) {
	t.Setenv("HH_PRESENT", "")
	assert.Equal(t, "", GetEnv("HH_PRESENT", "fallback"))
	assert.Equal(t, "fallback", GetEnv("HH_DEFINITELY_UNSET_KEY", "fallback"))
}
