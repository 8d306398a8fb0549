package memory

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"envmetrics/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFieldRange_SortedRegardlessOfInsertionOrder(t *testing.T) {
	db := New()
	ctx := context.Background()

	// Insert out of order.
	for _, d := range []int{5, 2, 9, 1, 7} {
		if _, err := db.Append(ctx, domain.Measurement{Timestamp: day(d), Field1: float64(d)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	points, err := db.FieldRange(ctx, "field1", day(1), day(10))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Timestamp.Before(points[i-1].Timestamp) {
			t.Fatalf("points not ascending at %d: %v", i, points)
		}
	}
}

func TestFieldRange_Bounds(t *testing.T) {
	db := New()
	ctx := context.Background()

	atStart := day(10)                                      // exactly start 00:00:00
	insideEnd := day(12).Add(23*time.Hour + 59*time.Minute) // within the end day
	afterEnd := day(13)                                     // first instant after the end day

	for i, ts := range []time.Time{atStart, insideEnd, afterEnd} {
		if _, err := db.Append(ctx, domain.Measurement{Timestamp: ts, Field2: float64(i)}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	// Query days [10, 12]: repository bound is exclusive at day 13.
	points, err := db.FieldRange(ctx, "field2", day(10), day(13))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(points), points)
	}
	if !points[0].Timestamp.Equal(atStart) {
		t.Errorf("record at start-of-day boundary must be included")
	}
	if !points[1].Timestamp.Equal(insideEnd) {
		t.Errorf("record inside the end day must be included")
	}
}

func TestFieldRange_UnknownField(t *testing.T) {
	db := New()
	_, err := db.FieldRange(context.Background(), "field4", day(1), day(2))
	if err == nil {
		// Empty store short-circuits; add a record and retry.
		if _, aerr := db.Append(context.Background(), domain.Measurement{Timestamp: day(1)}); aerr != nil {
			t.Fatalf("append: %v", aerr)
		}
		_, err = db.FieldRange(context.Background(), "field4", day(1), day(2))
	}
	if !errors.Is(err, domain.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestFieldMetrics_PopulationStdDev(t *testing.T) {
	db := New()
	ctx := context.Background()

	for i, v := range []float64{10, 20, 30} {
		if _, err := db.Append(ctx, domain.Measurement{Timestamp: day(i + 1), Field1: v}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	m, err := db.FieldMetrics(ctx, "field1")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.Count != 3 {
		t.Fatalf("count = %d, want 3", m.Count)
	}
	if !almostEqual(m.Average, 20) {
		t.Errorf("average = %v, want 20", m.Average)
	}
	if m.Min != 10 || m.Max != 30 {
		t.Errorf("min/max = %v/%v, want 10/30", m.Min, m.Max)
	}
	// Population formula: sqrt(((10-20)^2+(20-20)^2+(30-20)^2)/3) = sqrt(200/3).
	want := math.Sqrt(200.0 / 3.0)
	if !almostEqual(m.StdDev, want) {
		t.Errorf("stdDev = %v, want %v (divide by N, not N-1)", m.StdDev, want)
	}
}

func TestFieldMetrics_Empty(t *testing.T) {
	db := New()
	m, err := db.FieldMetrics(context.Background(), "field3")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.Count != 0 {
		t.Fatalf("count = %d, want 0", m.Count)
	}
}

func TestDeleteAll(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.Append(ctx, domain.Measurement{Timestamp: day(1), Field1: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := db.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	m, err := db.FieldMetrics(ctx, "field1")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if m.Count != 0 {
		t.Fatalf("expected empty store after DeleteAll, count = %d", m.Count)
	}
}

func TestUserCreate_CombinedUniqueness(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, err := db.Create(ctx, "alice", "alice@example.com", "h"); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := db.Create(ctx, "alice", "new@example.com", "h"); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Errorf("duplicate username: got %v", err)
	}
	if _, err := db.Create(ctx, "bob", "alice@example.com", "h"); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Errorf("duplicate email: got %v", err)
	}
}

func TestUserLookups(t *testing.T) {
	db := New()
	ctx := context.Background()

	created, err := db.Create(ctx, "alice", "alice@example.com", "h")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byName, err := db.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	byID, err := db.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byName.ID != byID.ID || byName.Email != byID.Email {
		t.Errorf("lookups disagree: %+v vs %+v", byName, byID)
	}

	if _, err := db.GetByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown username: got %v", err)
	}
	if _, err := db.GetByID(ctx, 999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("unknown id: got %v", err)
	}
}
