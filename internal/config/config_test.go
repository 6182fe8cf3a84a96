package config_test

import (
	"testing"
	"time"

	"github.com/cuti-management/backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("requires jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.FromEnv()

		assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "")
		t.Setenv("JWT_EXPIRES_IN", "")
		t.Setenv("REDIS_ADDR", "")

		cfg, err := config.FromEnv()

		assert.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
		assert.Equal(t, "", cfg.Redis.Addr)
		assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, 5, cfg.DB.MaxRetries)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "8080")
		t.Setenv("JWT_EXPIRES_IN", "7d")
		t.Setenv("APP_ENV", "production")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		t.Setenv("DB_AUTO_MIGRATE", "false")

		cfg, err := config.FromEnv()

		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.ExpiresIn)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
		assert.False(t, cfg.DB.AutoMigrate)
	})

	t.Run("bad duration falls back", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("JWT_EXPIRES_IN", "soon")

		cfg, err := config.FromEnv()

		assert.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	})
}
