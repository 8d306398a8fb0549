package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"envmetrics/internal/domain"
)

const uniqueViolation = "23505"

// Create inserts a user. The unique indexes on username and email are the
// duplicate check: a constraint violation maps to domain.ErrDuplicateUser, so
// two concurrent registrations cannot both succeed.
func (d *DB) Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO users(username, email, password_hash, created_at) VALUES($1, $2, $3, $4) RETURNING id;`,
		username, email, passwordHash, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// GetByUsername returns the user with the given username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1;`, username))
}

// GetByID returns the user with the given id.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return d.scanUser(d.sql.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1;`, id))
}

func (d *DB) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
