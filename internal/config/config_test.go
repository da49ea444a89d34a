package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "./uploads", cfg.Storage.BasePath)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 30*time.Second, cfg.Intake.SaveLockTTL)
	assert.Equal(t, 10*time.Minute, cfg.Intake.AddressCacheTTL)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("FRONTEND_URL", "https://apply.example.com, https://staff.example.com")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("SAVE_LOCK_TTL", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://apply.example.com", "https://staff.example.com"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, 5*time.Second, cfg.Intake.SaveLockTTL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"DB_PASSWORD": "secret"}},
		{"bad port", map[string]string{"DB_PASSWORD": "secret", "JWT_SECRET_KEY": "x", "APP_PORT": "eighty"}},
		{"bad lock ttl", map[string]string{"DB_PASSWORD": "secret", "JWT_SECRET_KEY": "x", "SAVE_LOCK_TTL": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_PASSWORD", "")
			t.Setenv("JWT_SECRET_KEY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Name: "intake", SSLMode: "disable"}}
	assert.Equal(t, "postgres://u:p@db:5432/intake?sslmode=disable", cfg.DatabaseURL())
}
