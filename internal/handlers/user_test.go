package handlers

import (
	"testing"
	"time"

	"videohub/internal/auth"

	"github.com/stretchr/testify/assert"
)

func TestAuthCookieMaxAgesFollowTokenTTLs(t *testing.T) {
	tm := auth.NewTokenManager("access-secret", "refresh-secret", 30*time.Minute, 72*time.Hour)
	h := NewUserHandler(nil, nil, tm, false)

	assert.Equal(t, 30*60, h.accessMaxAge())
	assert.Equal(t, 72*60*60, h.refreshMaxAge())
}
