package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	require.Equal(t, 30, cfg.API.Timeout)
	require.Equal(t, "file", cfg.Session.Backend)
	require.Equal(t, 3*time.Second, cfg.UI.NoticeDuration)
	require.Equal(t, "append", cfg.UI.CreateMode)
	require.Empty(t, cfg.Stub.Database.DSN)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://api.internal/api")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("UI_CREATE_MODE", "refetch")
	t.Setenv("STUB_JWT_EXPIRATION", "60")
	t.Setenv("STUB_DATABASE_DSN", "postgres://localhost/gestor")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "http://api.internal/api", cfg.API.BaseURL)
	require.Equal(t, "redis", cfg.Session.Backend)
	require.Equal(t, 6380, cfg.Redis.Port)
	require.Equal(t, "refetch", cfg.UI.CreateMode)
	require.Equal(t, 60, cfg.Stub.JWT.Expiration)
	require.Equal(t, "postgres://localhost/gestor", cfg.Stub.Database.DSN)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("API_TIMEOUT", "treinta")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "unknown backend", modify: func(c *Config) { c.Session.Backend = "sqlite" }},
		{name: "unknown create mode", modify: func(c *Config) { c.UI.CreateMode = "merge" }},
		{name: "zero timeout", modify: func(c *Config) { c.API.Timeout = 0 }},
		{name: "default secret in production", modify: func(c *Config) { c.Environment = "production" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tt.modify(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
