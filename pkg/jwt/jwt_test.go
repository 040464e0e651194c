package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken(42, "buyer@example.com", "customer")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, issuer, claims.Issuer)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour).GenerateToken(1, "a@b.c", "admin")
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute)
	m.ttl = -time.Minute // NewManager replaces non-positive ttl with the default

	token, err := m.GenerateToken(1, "a@b.c", "customer")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateEmpty(t *testing.T) {
	_, err := NewManager("secret", time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateGarbage(t *testing.T) {
	_, err := NewManager("secret", time.Hour).ValidateToken("admin-session-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
