package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "jobcard")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "jobcard")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "30")
	t.Setenv("BCRYPT_COST", "10")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.Equal(t, 30, cfg.RefreshTTLDays)
	assert.Equal(t, "./data/uploads", cfg.UploadDir)
	assert.Empty(t, cfg.ResendAPIKey)
	assert.Equal(t, "jobcards@nordx.co.za", cfg.EmailFrom)
}

func TestLoadCustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPLOAD_DIR", "/srv/media")
	t.Setenv("RESEND_API_KEY", "re_test_123")
	t.Setenv("EMAIL_FROM", "noreply@example.com")

	cfg := Load()

	assert.Equal(t, "/srv/media", cfg.UploadDir)
	assert.Equal(t, "re_test_123", cfg.ResendAPIKey)
	assert.Equal(t, "noreply@example.com", cfg.EmailFrom)
}

func TestLoadRateLimitDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 20, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Minute, cfg.TTL)
	assert.Equal(t, "ip_route", cfg.KeyBy)
}

func TestLoadRateLimitDisabled(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "false")
	t.Setenv("RATELIMIT_CAPACITY", "5")

	cfg := LoadRateLimitConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 5, cfg.Capacity)
}
