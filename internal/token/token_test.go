package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envmetrics/internal/domain"
)

var testUser = &domain.User{ID: 42, Username: "alice", Email: "alice@example.com"}

func TestIssueAndParse(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)

	s, err := m.Issue(testUser)
	require.NoError(t, err)
	require.NotEmpty(t, s)

	claims, err := m.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestParseExpired(t *testing.T) {
	m := NewManager([]byte("secret"), -time.Minute)

	s, err := m.Issue(testUser)
	require.NoError(t, err)

	_, err = m.Parse(s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	s, err := m.Issue(testUser)
	require.NoError(t, err)

	other := NewManager([]byte("different"), time.Hour)
	_, err = other.Parse(s)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)
	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUniqueTokenIDs(t *testing.T) {
	m := NewManager([]byte("secret"), time.Hour)

	a, err := m.Issue(testUser)
	require.NoError(t, err)
	b, err := m.Issue(testUser)
	require.NoError(t, err)

	ca, err := m.Parse(a)
	require.NoError(t, err)
	cb, err := m.Parse(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}
