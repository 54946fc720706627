package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken("user-456")
	assert.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
}

func TestAccessTokenRejectedByRefreshValidator(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("user-123")
	assert.NoError(t, err)

	_, err = m.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("different-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)

	token, err := m.GenerateAccessToken("user-123")
	assert.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", -time.Minute, 240*time.Hour)

	token, err := m.GenerateAccessToken("user-123")
	assert.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
