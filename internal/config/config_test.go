package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/videohub?sslmode=disable")
	t.Setenv("STORAGE_ENDPOINT", "https://storage.example.com")
	t.Setenv("STORAGE_ACCESS_KEY", "access")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("GIN_MODE", "")
	t.Setenv("STORAGE_PUBLIC_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("REFRESH_TOKEN_TTL_HOURS", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "videohub-media", cfg.Storage.BucketName)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 240*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadPublicURLDefaultsToEndpoint(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORAGE_ENDPOINT", "https://storage.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://storage.example.com/videohub-media", cfg.Storage.PublicURL)
}

func TestLoadExplicitPublicURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORAGE_PUBLIC_URL", "https://cdn.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com", cfg.Storage.PublicURL)
}

func TestLoadParsesOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestLoadReleaseModeSecuresCookies(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GIN_MODE", "release")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.SecureCookies)
}

func TestLoadTokenTTLOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "30")
	t.Setenv("REFRESH_TOKEN_TTL_HOURS", "72")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 72*time.Hour, cfg.Auth.RefreshTokenTTL)
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingDatabaseURL)
}

func TestLoadMissingStorageConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STORAGE_ACCESS_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingStorageConfig)
}

func TestLoadMissingTokenSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingTokenSecrets)
}
