package adapthttp

import (
	"errors"
	"net/http"

	"envmetrics/internal/app"
	"envmetrics/internal/domain"
)

func publicUser(u *domain.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.auth.Register(r.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingFields), errors.Is(err, app.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, domain.ErrDuplicateUser):
			writeError(w, http.StatusConflict, err)
		default:
			writeServerError(w, "Server error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user": publicUser(res.User)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, app.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, err)
		default:
			writeServerError(w, "Server error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "user": publicUser(res.User)})
}

// handleVerify re-fetches the user behind a valid token, so a token issued for
// a since-deleted user is rejected rather than echoing stale claims.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	claims := claimsFrom(r)
	user, err := s.auth.Verify(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		writeServerError(w, "Server error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": publicUser(user)})
}
