package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	adapthttp "envmetrics/internal/adapter/http"
	"envmetrics/internal/adapter/memory"
	"envmetrics/internal/adapter/postgres"
	"envmetrics/internal/adapter/weatherapi"
	"envmetrics/internal/app"
	"envmetrics/internal/config"
	"envmetrics/internal/domain"
	"envmetrics/internal/logging"
	"envmetrics/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg, "envmetrics")

	var (
		measurements domain.MeasurementRepository
		users        domain.UserRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error("db open", "err", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		measurements, users = db, db
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store (data is lost on restart)")
		mem := memory.New()
		measurements, users = mem, mem
	}

	var provider domain.WeatherProvider = weatherapi.New(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.WeatherTimeout)
	if cfg.WeatherRPS > 0 {
		provider = weatherapi.NewRateLimited(provider, cfg.WeatherRPS, cfg.WeatherBurst)
	}

	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	measurementSvc := app.NewMeasurementService(measurements)
	authSvc := app.NewAuthService(users, tokens)
	weatherSvc := app.NewWeatherService(provider, measurements)

	var oidcCfg *adapthttp.OIDCConfig
	if cfg.SSOConfigured() {
		oidcCfg, err = adapthttp.NewOIDCConfig(context.Background(), cfg.OIDCIssuer, cfg.OIDCClientID, cfg.OIDCClientSecret, cfg.OIDCRedirectURL)
		if err != nil {
			log.Error("oidc setup", "err", err)
			os.Exit(1)
		}
		log.Info("sso enabled", "issuer", cfg.OIDCIssuer)
	}

	h := adapthttp.New(measurementSvc, authSvc, weatherSvc, tokens, log, cfg.WebDir, oidcCfg).Handler()
	log.Info("listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}
