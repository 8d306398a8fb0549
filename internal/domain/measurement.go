// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// Measurement is a single timestamped record of the three measurement channels.
// Records are append-only: once stored they are never mutated, and they are only
// removed by a bulk administrative clear (seed reset).
type Measurement struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Field1    float64   `json:"field1"`
	Field2    float64   `json:"field2"`
	Field3    float64   `json:"field3"`
}

// FieldPoint is the projection returned by range queries: the record timestamp
// plus the value of the single requested field.
type FieldPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// FieldMetrics holds aggregate statistics for one field over the whole dataset.
// StdDev is the population standard deviation (divide by N, not N-1).
type FieldMetrics struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"stdDev"`
	Count   int64   `json:"-"`
}

// Field names accepted by range queries and metrics.
const (
	Field1 = "field1"
	Field2 = "field2"
	Field3 = "field3"
)

// ValidField reports whether name is one of the three measurement channels.
func ValidField(name string) bool {
	return name == Field1 || name == Field2 || name == Field3
}

// ErrUnknownField is returned by repositories when asked for a field name
// outside the fixed channel set.
var ErrUnknownField = errors.New("unknown measurement field")

// MeasurementRepository is the port for measurement persistence.
type MeasurementRepository interface {
	// Append stores a new record and returns its id.
	Append(ctx context.Context, m Measurement) (int64, error)
	// FieldRange returns points for field with start <= timestamp < end,
	// ordered ascending by timestamp.
	FieldRange(ctx context.Context, field string, start, end time.Time) ([]FieldPoint, error)
	// FieldMetrics computes aggregate statistics for field over every stored
	// record. Count is 0 when the store is empty.
	FieldMetrics(ctx context.Context, field string) (FieldMetrics, error)
	// DeleteAll removes every record. Used only by the seed routine.
	DeleteAll(ctx context.Context) error
}
