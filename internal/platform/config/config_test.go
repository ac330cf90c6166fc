package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("development defaults", func(t *testing.T) {
		for _, key := range []string{"CONSENTD_ADDR", "DATABASE_URL", "REDIS_URL", "JWT_SIGNING_KEY", "SEED_BOOTSTRAP", "WHITELIST_CACHE_TTL"} {
			t.Setenv(key, "")
		}
		cfg := FromEnv()

		assert.Equal(t, ":8080", cfg.Addr)
		assert.NotEmpty(t, cfg.JWTSigningKey)
		assert.Empty(t, cfg.Database.URL)
		assert.Empty(t, cfg.Redis.URL)
		assert.False(t, cfg.SeedBootstrap)
		assert.Equal(t, 5*time.Minute, cfg.WhitelistCacheTTL)
		assert.Equal(t, 10, cfg.Redis.PoolSize)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("CONSENTD_ADDR", ":9090")
		t.Setenv("DATABASE_URL", "postgres://localhost/consentd")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("SEED_BOOTSTRAP", "true")
		t.Setenv("WHITELIST_CACHE_TTL", "30s")
		t.Setenv("REDIS_POOL_SIZE", "not-a-number")

		cfg := FromEnv()
		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "postgres://localhost/consentd", cfg.Database.URL)
		assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
		assert.True(t, cfg.SeedBootstrap)
		assert.Equal(t, 30*time.Second, cfg.WhitelistCacheTTL)
		assert.Equal(t, 10, cfg.Redis.PoolSize)
	})
}
