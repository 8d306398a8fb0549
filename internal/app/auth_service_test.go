package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"envmetrics/internal/adapter/memory"
	"envmetrics/internal/app"
	"envmetrics/internal/domain"
	"envmetrics/internal/token"
)

func newAuthService() (*app.AuthService, *token.Manager) {
	tm := token.NewManager([]byte("test-secret"), time.Hour)
	return app.NewAuthService(memory.New(), tm), tm
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newAuthService()

	cases := []struct{ username, email, password string }{
		{"", "a@b.c", "secret1"},
		{"alice", "", "secret1"},
		{"alice", "a@b.c", ""},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.username, tc.email, tc.password)
		if !errors.Is(err, app.ErrMissingFields) {
			t.Errorf("%+v: expected ErrMissingFields, got %v", tc, err)
		}
	}
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "12345")
	if !errors.Is(err, app.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Same username, different email.
	_, err := svc.Register(ctx, "alice", "other@example.com", "secret1")
	if !errors.Is(err, domain.ErrDuplicateUser) {
		t.Errorf("duplicate username: expected ErrDuplicateUser, got %v", err)
	}

	// Same email, different username.
	_, err = svc.Register(ctx, "bob", "alice@example.com", "secret1")
	if !errors.Is(err, domain.ErrDuplicateUser) {
		t.Errorf("duplicate email: expected ErrDuplicateUser, got %v", err)
	}
}

func TestRegisterThenLogin_RoundTrip(t *testing.T) {
	svc, tm := newAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, "alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if reg.Token == "" {
		t.Fatal("register returned empty token")
	}

	login, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if reg.User.ID != login.User.ID || reg.User.Username != login.User.Username || reg.User.Email != login.User.Email {
		t.Errorf("register user %+v != login user %+v", reg.User, login.User)
	}

	claims, err := tm.Parse(login.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != login.User.ID {
		t.Errorf("claims user id = %d, want %d", claims.UserID, login.User.ID)
	}
}

func TestLogin_NoCredentialLeak(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, errPass := svc.Login(ctx, "alice", "wrong-password")
	_, errUser := svc.Login(ctx, "nobody", "secret1")

	if !errors.Is(errPass, app.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errPass)
	}
	if !errors.Is(errUser, app.ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", errUser)
	}
	if errPass.Error() != errUser.Error() {
		t.Errorf("errors differ: %q vs %q", errPass, errUser)
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Login(context.Background(), "", "secret1")
	if !errors.Is(err, app.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestVerify_DeletedUser(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Verify(context.Background(), 9999)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestEnsureUser_Provisions(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	res, err := svc.EnsureUser(ctx, "sso-user", "sso@example.com")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if res.User.Username != "sso-user" {
		t.Errorf("username = %q", res.User.Username)
	}

	// Second call must return the same user, not a duplicate.
	again, err := svc.EnsureUser(ctx, "sso-user", "sso@example.com")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if again.User.ID != res.User.ID {
		t.Errorf("expected same user id, got %d and %d", res.User.ID, again.User.ID)
	}
}
