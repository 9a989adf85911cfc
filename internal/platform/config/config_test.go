package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HEALTHBOOK_AUTH_JWT_SECRET", "jwt-secret")
	t.Setenv("HEALTHBOOK_PAYSTACK_SECRET_KEY", "sk_test_123")
	t.Setenv("HEALTHBOOK_OUTBOX_CLAIM_LEASE", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Booking.PendingTTL)
	assert.Equal(t, "https://api.paystack.co", cfg.Paystack.BaseURL)
	assert.Equal(t, "sk_test_123", cfg.Paystack.SecretKey)
	assert.Equal(t, 90*time.Second, cfg.Outbox.ClaimLease)
	assert.Equal(t, 10, cfg.Outbox.MaxAttempts)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "healthbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth:
  jwt_secret: from-file
cache:
  backend: redis
ratelimit:
  requests: 5
  window: 10s
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HEALTHBOOK_RATELIMIT_REQUESTS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 7, cfg.RateLimit.Requests)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.Window)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HEALTHBOOK_AUTH_JWT_SECRET=dotenv-secret\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("HEALTHBOOK_AUTH_JWT_SECRET") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.Auth.JWTSecret)
}

func TestValidate(t *testing.T) {
	base := Config{
		Auth:      AuthConfig{JWTSecret: "s"},
		Cache:     CacheConfig{Backend: "memory"},
		RateLimit: RateLimitConfig{Requests: 1, Window: time.Second},
	}
	assert.NoError(t, base.Validate())

	noSecret := base
	noSecret.Auth.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badBackend := base
	badBackend.Cache.Backend = "memcached"
	assert.Error(t, badBackend.Validate())
}
