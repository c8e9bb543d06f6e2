package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Roster", cfg.AppName)
	assert.Equal(t, ":8080", cfg.Address())
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/roster")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
}

func TestLoadProductionRequiresBackends(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "super-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestDurationOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOKEN_TTL", "45m")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.ShutdownPeriod)
}

func TestInvalidDuration(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
