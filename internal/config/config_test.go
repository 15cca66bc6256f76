package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_BACKEND", "")
	t.Cleanup(func() { AppConfig = nil })

	require.NoError(t, LoadConfig())

	assert.Equal(t, 8080, AppConfig.Port)
	assert.Equal(t, SessionBackendCookie, AppConfig.SessionBackend)
	assert.Equal(t, 168, AppConfig.SessionTTLHours)
	assert.False(t, AppConfig.Production())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Cleanup(func() { AppConfig = nil })

	require.NoError(t, LoadConfig())

	assert.Equal(t, 9090, AppConfig.Port)
	assert.Equal(t, SessionBackendRedis, AppConfig.SessionBackend)
	assert.Equal(t, "redis://cache:6379/1", AppConfig.RedisURL)
}

func TestValidate(t *testing.T) {
	valid := Config{SessionBackend: SessionBackendCookie, SecretKey: "s3cr3t", JWTSecret: "j3t"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown backend", func(c *Config) { c.SessionBackend = "memcached" }, "SESSION_BACKEND"},
		{"production with real secrets", func(c *Config) { c.AppEnv = "production" }, ""},
		{"production with default secret", func(c *Config) {
			c.AppEnv = "Production"
			c.SecretKey = "it's a secret"
		}, "SECRET_KEY"},
		{"production without jwt secret", func(c *Config) {
			c.AppEnv = "production"
			c.JWTSecret = ""
		}, "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
