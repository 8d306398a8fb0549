// Package adapthttp implements the HTTP gateway for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"envmetrics/internal/app"
	"envmetrics/internal/token"
)

// Server is the driving HTTP adapter that routes requests to application
// services and maps domain errors to status codes.
type Server struct {
	measurements *app.MeasurementService
	auth         *app.AuthService
	weather      *app.WeatherService
	tokens       *token.Manager
	log          *slog.Logger
	webDir       string
	oidc         *OIDCConfig
}

// New creates a Server wired to the given application services. oidc may be
// nil when SSO is not configured.
func New(ms *app.MeasurementService, as *app.AuthService, ws *app.WeatherService, tm *token.Manager, log *slog.Logger, webDir string, oidc *OIDCConfig) *Server {
	return &Server{
		measurements: ms,
		auth:         as,
		weather:      ws,
		tokens:       tm,
		log:          log,
		webDir:       webDir,
		oidc:         oidc,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/measurements", s.handleQueryRange)
	api.HandleFunc("/measurements/metrics", s.handleMetrics)
	api.Handle("/measurements/weather", s.requireAuth(http.HandlerFunc(s.handleRecordWeather)))

	auth := http.NewServeMux()
	auth.HandleFunc("/register", s.handleRegister)
	auth.HandleFunc("/login", s.handleLogin)
	auth.Handle("/verify", s.requireAuth(http.HandlerFunc(s.handleVerify)))
	auth.HandleFunc("/sso/login", s.handleSSOLogin)
	auth.HandleFunc("/sso/callback", s.handleSSOCallback)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/auth/", http.StripPrefix("/auth", auth))
	root.Handle("/", staticFromDisk(s.webDir))

	return s.withRequestLog(root)
}
