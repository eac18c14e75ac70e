// Package config loads application configuration from the environment, with
// an optional .env bootstrap for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	DatabaseURL  string
	IsProduction bool

	MigrationsPath string

	JWTSecret                  string
	JWTIssuer                  string
	JWTExpiryDuration          time.Duration
	RefreshTokenExpiryDuration time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	AuthRateLimit string // ulule/limiter format, e.g. "20-M"

	PosthogAPIKey string

	CORSAllowedOrigins []string
}

// LoadConfig reads configuration from environment variables. A .env file is
// loaded first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_ISSUER", "mata_gestion_app")
	v.SetDefault("JWT_EXPIRY_MINUTES", 60)
	v.SetDefault("REFRESH_TOKEN_EXPIRY_HOURS", 24*7)
	v.SetDefault("AUTH_RATE_LIMIT", "20-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", []string{"*"})

	cfg := &Config{
		Port:                       v.GetString("PORT"),
		DatabaseURL:                v.GetString("PGSQL_URL"),
		IsProduction:               v.GetBool("IS_PRODUCTION"),
		MigrationsPath:             v.GetString("MIGRATIONS_PATH"),
		JWTSecret:                  v.GetString("JWT_SECRET"),
		JWTIssuer:                  v.GetString("JWT_ISSUER"),
		JWTExpiryDuration:          time.Duration(v.GetInt("JWT_EXPIRY_MINUTES")) * time.Minute,
		RefreshTokenExpiryDuration: time.Duration(v.GetInt("REFRESH_TOKEN_EXPIRY_HOURS")) * time.Hour,
		GoogleClientID:             v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:         v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:          v.GetString("GOOGLE_REDIRECT_URL"),
		AuthRateLimit:              v.GetString("AUTH_RATE_LIMIT"),
		PosthogAPIKey:              v.GetString("POSTHOG_API_KEY"),
		CORSAllowedOrigins:         v.GetStringSlice("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}
