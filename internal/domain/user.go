package domain

import (
	"context"
	"errors"
	"time"
)

// User represents an authenticated user in the system. PasswordHash is never
// serialized into API responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// ErrDuplicateUser is returned by Create when the username or email is already
// taken. Uniqueness is enforced by the storage layer's unique indexes, so two
// concurrent registrations cannot both succeed.
var ErrDuplicateUser = errors.New("username or email already exists")

// ErrUserNotFound is returned by lookups when no matching user exists.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
