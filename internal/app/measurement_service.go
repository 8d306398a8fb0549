// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"math"
	"time"

	"envmetrics/internal/domain"
)

var (
	// ErrInvalidField indicates a field name outside field1/field2/field3.
	ErrInvalidField = errors.New("invalid or missing field name (field1, field2, field3)")
	// ErrMissingRange indicates an absent start_date or end_date.
	ErrMissingRange = errors.New("start_date and end_date are required")
	// ErrInvalidDateFormat indicates a date that is not strict YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format. Use YYYY-MM-DD")
	// ErrNoDataInRange indicates a valid query that matched no records.
	ErrNoDataInRange = errors.New("no data found for the selected range")
	// ErrNoData indicates that the store is empty, so metrics cannot be computed.
	ErrNoData = errors.New("no data available to calculate metrics")
)

const dayLayout = "2006-01-02"

// MeasurementService encapsulates the measurement query and aggregation use
// cases.
type MeasurementService struct {
	repo domain.MeasurementRepository
}

// NewMeasurementService creates a MeasurementService backed by the given
// repository.
func NewMeasurementService(repo domain.MeasurementRepository) *MeasurementService {
	return &MeasurementService{repo: repo}
}

// QueryRange returns the points for field whose timestamps fall on the
// calendar days [startDate, endDate], both inclusive, ordered ascending.
// Dates are parsed strictly: "2024-1-1" and "2024-13-40" are rejected.
// An empty result is reported as ErrNoDataInRange rather than an empty slice,
// so "no data" stays distinguishable from "some data".
func (s *MeasurementService) QueryRange(ctx context.Context, field, startDate, endDate string) ([]domain.FieldPoint, error) {
	if !domain.ValidField(field) {
		return nil, ErrInvalidField
	}
	if startDate == "" || endDate == "" {
		return nil, ErrMissingRange
	}

	start, err := time.Parse(dayLayout, startDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	end, err := time.Parse(dayLayout, endDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	points, err := s.repo.FieldRange(ctx, field, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoDataInRange
	}
	return points, nil
}

// Metrics computes mean, min, max and population standard deviation for field
// over every stored record. Metrics are dataset-global on purpose: they are
// never scoped to the query range the dashboard currently displays.
// Average and StdDev are rounded to 2 decimal places; min/max keep native
// precision.
func (s *MeasurementService) Metrics(ctx context.Context, field string) (domain.FieldMetrics, error) {
	if !domain.ValidField(field) {
		return domain.FieldMetrics{}, ErrInvalidField
	}

	m, err := s.repo.FieldMetrics(ctx, field)
	if err != nil {
		return domain.FieldMetrics{}, err
	}
	if m.Count == 0 {
		return domain.FieldMetrics{}, ErrNoData
	}

	m.Average = round2(m.Average)
	m.StdDev = round2(m.StdDev)
	return m, nil
}

// Record appends a measurement. A zero timestamp is filled with the current
// time; no other validation is applied.
func (s *MeasurementService) Record(ctx context.Context, m domain.Measurement) (int64, error) {
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return s.repo.Append(ctx, m)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
