package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "https://api.groq.com/openai/v1", cfg.Cloud.BaseURL)
	require.Equal(t, 500, cfg.Cloud.MinDelayMillis)
	require.Equal(t, 1500, cfg.Cloud.MaxDelayMillis)
	require.False(t, cfg.Local.Enabled)
	require.Equal(t, "automatic", cfg.Defaults.Preference)
	require.Equal(t, "openai/gpt-oss-20b", cfg.Defaults.TextModel)
	require.Equal(t, 3600, cfg.Cache.TTLSeconds)
	require.Empty(t, cfg.Cache.RedisAddr)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CLOUD_BASE_URL", "http://localhost:4000/v1")
	t.Setenv("LOCAL_ENABLED", "true")
	t.Setenv("PROVIDER_PREFERENCE", "cloud-only")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.studysnap.io,https://studysnap.io")

	cfg := Load()

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "http://localhost:4000/v1", cfg.Cloud.BaseURL)
	require.True(t, cfg.Local.Enabled)
	require.Equal(t, "cloud-only", cfg.Defaults.Preference)
	require.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	require.Equal(t, []string{"https://app.studysnap.io", "https://studysnap.io"}, cfg.CORS.AllowedOrigins)
}

func TestParseDependenciesConfig_PointsIntoConfig(t *testing.T) {
	cfg := Load()
	deps := ParseDependenciesConfig(cfg)

	require.Same(t, &cfg.Server, deps.Server)
	require.Same(t, &cfg.Cloud, deps.Cloud)
	require.Same(t, &cfg.Defaults, deps.Defaults)
}
