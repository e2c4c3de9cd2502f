package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	TokenTTL        time.Duration
	StripeSecretKey string
	FrontendURL     string
	OTLPEndpoint    string
}

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// GetEnv retrieves environment variables with a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load reads the process environment into a Config. Call LoadEnv first to pick up .env.
func Load() Config {
	ttl, err := time.ParseDuration(GetEnv("JWT_TTL", "168h"))
	if err != nil || ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return Config{
		Port:            GetEnv("PORT", "3000"),
		Env:             strings.ToLower(GetEnv("APP_ENV", "production")),
		MongoURI:        GetEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:   GetEnv("MONGODB_DATABASE", "handmade-hub"),
		JWTSecret:       GetEnv("JWT_SECRET", ""),
		TokenTTL:        ttl,
		StripeSecretKey: GetEnv("STRIPE_SECRET_KEY", ""),
		FrontendURL:     GetEnv("FRONTEND_URL", "http://localhost:5173"),
		OTLPEndpoint:    GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// AllowedOrigins splits FrontendURL on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.FrontendURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
