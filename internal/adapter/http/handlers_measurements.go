package adapthttp

import (
	"errors"
	"net/http"

	"envmetrics/internal/app"
)

// handleQueryRange serves GET /api/measurements?field=&start_date=&end_date=.
// The read path is deliberately unauthenticated: only the weather-recording
// write path requires a token.
func (s *Server) handleQueryRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	points, err := s.measurements.QueryRange(r.Context(), q.Get("field"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidField),
			errors.Is(err, app.ErrMissingRange),
			errors.Is(err, app.ErrInvalidDateFormat):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, app.ErrNoDataInRange):
			writeError(w, http.StatusNotFound, err)
		default:
			writeServerError(w, "Server error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// handleMetrics serves GET /api/measurements/metrics?field=. Metrics cover the
// whole dataset, never the dashboard's current date window.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	field := r.URL.Query().Get("field")
	m, err := s.measurements.Metrics(r.Context(), field)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidField):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, app.ErrNoData):
			writeError(w, http.StatusNotFound, err)
		default:
			writeServerError(w, "Server error", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"field": field, "metrics": m})
}

// handleRecordWeather serves POST /api/measurements/weather. requireAuth has
// already validated the bearer token.
func (s *Server) handleRecordWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		City string `json:"city"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.weather.RecordFromCity(r.Context(), body.City)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingCity):
			writeError(w, http.StatusBadRequest, err)
		default:
			writeServerError(w, "Failed to fetch or save weather data", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Weather data recorded successfully",
		"data":    rec,
	})
}
