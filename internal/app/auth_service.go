package app

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"envmetrics/internal/domain"
	"envmetrics/internal/token"
)

var (
	// ErrMissingFields indicates an absent username, email or password.
	ErrMissingFields = errors.New("username, email and password are required")
	// ErrMissingCredentials indicates an absent username or password at login.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrWeakPassword indicates a password shorter than the minimum length.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrInvalidCredentials is returned for both an unknown username and a
	// wrong password, so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPasswordLen = 6

// AuthResult is what a successful register or login returns: a bearer token
// and the user's public fields.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService registers users, verifies credentials and issues bearer tokens.
type AuthService struct {
	users  domain.UserRepository
	tokens *token.Manager
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt password hash and issues a token.
// Duplicate usernames or emails surface as domain.ErrDuplicateUser, enforced
// by the storage layer's unique indexes rather than a check-then-insert.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, email, string(hash))
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login verifies the credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Verify re-fetches the public user fields for an already validated token.
// It fails with domain.ErrUserNotFound if the user was deleted after the
// token was issued.
func (s *AuthService) Verify(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// EnsureUser fetches or auto-provisions a user for an identity already
// authenticated elsewhere (SSO). Provisioned users get an empty password hash
// and can only log in through the same external identity.
func (s *AuthService) EnsureUser(ctx context.Context, username, email string) (*AuthResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.users.Create(ctx, username, email, "")
		if errors.Is(err, domain.ErrDuplicateUser) {
			// Lost a provisioning race; the row exists now.
			user, err = s.users.GetByUsername(ctx, username)
		}
	}
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	t, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: t, User: user}, nil
}
