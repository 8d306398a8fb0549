package adapthttp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"envmetrics/internal/token"
)

type contextKey string

const claimsContextKey contextKey = "claims"

var (
	errMissingToken = errors.New("missing Authorization token")
	errInvalidToken = errors.New("invalid or expired token")
)

// requireAuth validates the Authorization: Bearer header and stores the token
// claims in the request context. Verification is stateless; there is no
// server-side revocation list.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, errMissingToken)
			return
		}

		claims, err := s.tokens.Parse(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, errInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFrom returns the verified claims stored by requireAuth.
func claimsFrom(r *http.Request) *token.Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*token.Claims)
	return claims
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestLog logs every request with method, path, status and duration.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		startedAt := time.Now()
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(startedAt),
		)
	})
}
