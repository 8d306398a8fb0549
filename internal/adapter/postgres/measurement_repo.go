package postgres

import (
	"context"
	"database/sql"
	"time"

	"envmetrics/internal/domain"
)

// fieldColumns whitelists the columns a query may project. Field names come in
// from the API, so they are never interpolated without passing through here.
var fieldColumns = map[string]string{
	domain.Field1: "field1",
	domain.Field2: "field2",
	domain.Field3: "field3",
}

// Append inserts a new measurement record.
func (d *DB) Append(ctx context.Context, m domain.Measurement) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO measurements(ts, field1, field2, field3) VALUES($1, $2, $3, $4) RETURNING id;`,
		m.Timestamp.UTC(), m.Field1, m.Field2, m.Field3,
	).Scan(&id)
	return id, err
}

// FieldRange returns points for field with start <= ts < end, ascending.
func (d *DB) FieldRange(ctx context.Context, field string, start, end time.Time) ([]domain.FieldPoint, error) {
	col, ok := fieldColumns[field]
	if !ok {
		return nil, domain.ErrUnknownField
	}

	rows, err := d.sql.QueryContext(ctx,
		`SELECT ts, `+col+` FROM measurements WHERE ts >= $1 AND ts < $2 ORDER BY ts ASC;`,
		start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.FieldPoint, 0)
	for rows.Next() {
		var p domain.FieldPoint
		if err := rows.Scan(&p.Timestamp, &p.Value); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// FieldMetrics computes aggregates over every stored record in SQL.
// STDDEV_POP gives the population standard deviation (divide by N).
func (d *DB) FieldMetrics(ctx context.Context, field string) (domain.FieldMetrics, error) {
	col, ok := fieldColumns[field]
	if !ok {
		return domain.FieldMetrics{}, domain.ErrUnknownField
	}

	row := d.sql.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(`+col+`), MIN(`+col+`), MAX(`+col+`), STDDEV_POP(`+col+`) FROM measurements;`)

	var m domain.FieldMetrics
	var avg, min, max, stddev sql.NullFloat64
	if err := row.Scan(&m.Count, &avg, &min, &max, &stddev); err != nil {
		return domain.FieldMetrics{}, err
	}
	if m.Count == 0 {
		return domain.FieldMetrics{}, nil
	}
	m.Average = avg.Float64
	m.Min = min.Float64
	m.Max = max.Float64
	m.StdDev = stddev.Float64
	return m, nil
}

// DeleteAll removes every measurement. Only the seed routine calls this.
func (d *DB) DeleteAll(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, `DELETE FROM measurements;`)
	return err
}
