// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable. The defaults are for local development only and
// must be overridden in production, in particular JWTSecret.
type Config struct {
	AppEnv   string
	LogLevel slog.Level
	Addr     string
	WebDir   string

	// DatabaseURL is the PostgreSQL connection string. Empty selects the
	// in-memory store, which loses data on restart.
	DatabaseURL string

	JWTSecret string
	TokenTTL  time.Duration

	WeatherAPIKey  string
	WeatherBaseURL string
	WeatherTimeout time.Duration
	WeatherRPS     float64
	WeatherBurst   int

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
}

// Load reads configuration from the environment, with a .env file as an
// optional overlay for development.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           getenvDefault("APP_ENV", "dev"),
		Addr:             getenvDefault("ADDR", ":8080"),
		WebDir:           getenvDefault("WEB_DIR", "web"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        getenvDefault("JWT_SECRET", "dev_secret_change_me"),
		WeatherAPIKey:    os.Getenv("WEATHER_API_KEY"),
		WeatherBaseURL:   getenvDefault("WEATHER_BASE_URL", "http://api.weatherapi.com/v1"),
		OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
	}

	switch cfg.AppEnv {
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", cfg.AppEnv)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Token lifetime: 7 days by default.
	cfg.TokenTTL, err = getenvDuration("TOKEN_TTL", 168*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.WeatherRPS = getenvFloat("WEATHER_RPS", 1)
	cfg.WeatherBurst = getenvInt("WEATHER_BURST", 3)

	return cfg, nil
}

// SSOConfigured reports whether every OIDC setting needed for SSO is present.
func (c *Config) SSOConfigured() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != "" && c.OIDCClientSecret != "" && c.OIDCRedirectURL != ""
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
