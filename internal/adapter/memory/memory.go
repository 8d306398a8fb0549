// Package memory implements in-memory repositories for development and testing.
// It mirrors the semantics of the postgres adapter: ascending range queries,
// population standard deviation, and a combined username/email uniqueness
// check.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"envmetrics/internal/domain"
)

// DB implements the domain repository ports against process memory.
type DB struct {
	mu           sync.Mutex
	measurements []domain.Measurement
	users        []*domain.User

	measurementID int64
	userID        int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.MeasurementRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)

// --- MeasurementRepository ---

// Append stores a new measurement.
func (db *DB) Append(ctx context.Context, m domain.Measurement) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.measurementID++
	m.ID = db.measurementID
	m.Timestamp = m.Timestamp.UTC()
	db.measurements = append(db.measurements, m)
	return m.ID, nil
}

// FieldRange returns points with start <= timestamp < end, ascending.
func (db *DB) FieldRange(ctx context.Context, field string, start, end time.Time) ([]domain.FieldPoint, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.FieldPoint, 0)
	for i := range db.measurements {
		m := &db.measurements[i]
		if m.Timestamp.Before(start) || !m.Timestamp.Before(end) {
			continue
		}
		v, err := fieldValue(m, field)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.FieldPoint{Timestamp: m.Timestamp, Value: v})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// FieldMetrics computes aggregate statistics over every stored record.
func (db *DB) FieldMetrics(ctx context.Context, field string) (domain.FieldMetrics, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !domain.ValidField(field) {
		return domain.FieldMetrics{}, domain.ErrUnknownField
	}
	if len(db.measurements) == 0 {
		return domain.FieldMetrics{}, nil
	}

	var sum float64
	min := math.Inf(1)
	max := math.Inf(-1)
	values := make([]float64, 0, len(db.measurements))

	for i := range db.measurements {
		v, err := fieldValue(&db.measurements[i], field)
		if err != nil {
			return domain.FieldMetrics{}, err
		}
		values = append(values, v)
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	n := float64(len(values))
	mean := sum / n
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return domain.FieldMetrics{
		Average: mean,
		Min:     min,
		Max:     max,
		StdDev:  math.Sqrt(sq / n),
		Count:   int64(len(values)),
	}, nil
}

// DeleteAll removes every measurement.
func (db *DB) DeleteAll(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.measurements = nil
	return nil
}

func fieldValue(m *domain.Measurement, field string) (float64, error) {
	switch field {
	case domain.Field1:
		return m.Field1, nil
	case domain.Field2:
		return m.Field2, nil
	case domain.Field3:
		return m.Field3, nil
	default:
		return 0, domain.ErrUnknownField
	}
}

// --- UserRepository ---

// Create stores a user, rejecting duplicate usernames or emails with a single
// combined check under the lock.
func (db *DB) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username || u.Email == email {
			return nil, domain.ErrDuplicateUser
		}
	}

	db.userID++
	u := &domain.User{
		ID:           db.userID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)

	cp := *u
	return &cp, nil
}

// GetByUsername returns the user with the given username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByID returns the user with the given id.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
