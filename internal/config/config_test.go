package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.API.Address())
	assert.Equal(t, "HS256", cfg.Auth.Algorithm)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.True(t, cfg.Database.IsSQLite())
	assert.Equal(t, "resume.db", cfg.Database.DSN())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.MinIO.Enabled())
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, 2, cfg.Worker.Concurrency)
	assert.Equal(t, ":9091", cfg.Worker.MetricsAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRES_MINUTES", "30")
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_RELOAD_ON_CHANGE", "True")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("EMAIL", "Admin@Example.com")
	t.Setenv("PLAINPASS", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.True(t, cfg.API.ReloadOnChange)
	assert.True(t, cfg.Database.Verbose)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, "host=localhost port=5432 user=resume password=pw dbname=resume sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.API.Origins())
	assert.Equal(t, "Admin@Example.com", cfg.Admin.Username)
	assert.Equal(t, "hunter2", cfg.Admin.Password)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret", env: map[string]string{"SECRET_KEY": ""}},
		{name: "asymmetric algorithm", env: map[string]string{"SECRET_KEY": "s", "ALGORITHM": "RS256"}},
		{name: "unknown database", env: map[string]string{"SECRET_KEY": "s", "DB_TYPE": "mysql"}},
		{name: "postgres without password", env: map[string]string{"SECRET_KEY": "s", "DB_TYPE": "postgres"}},
		{name: "minio without keys", env: map[string]string{"SECRET_KEY": "s", "MINIO_ENDPOINT": "localhost:9000"}},
		{name: "bad log level", env: map[string]string{"SECRET_KEY": "s", "API_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAPIConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelError},
		{"verbose", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, APIConfig{LogLevel: tt.level}.SlogLevel())
		})
	}
}

func TestLoad_LogLevelFromEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("API_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.API.SlogLevel())
}
