package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "grindzone.db", cfg.SQLitePath)
	assert.Equal(t, "grindzone/", cfg.R2KeyPrefix)
	assert.True(t, cfg.SeedDefaults)
	assert.Equal(t, 30*time.Second, cfg.StatusSweepInterval)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, LogFormatJSON, cfg.LogFormat)
	assert.False(t, cfg.R2Configured())
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"SERVER_PORT":           "9090",
		"STORAGE_BACKEND":       "SQLite",
		"SQLITE_PATH":           "/tmp/gz.db",
		"SEED_DEFAULTS":         "false",
		"STATUS_SWEEP_INTERVAL": "1m",
		"CORS_ALLOWED_ORIGINS":  "https://grindzone.gg, http://localhost:5173 ,",
		"LOG_LEVEL":             "debug",
		"LOG_FORMAT":            "TEXT",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, "/tmp/gz.db", cfg.SQLitePath)
	assert.False(t, cfg.SeedDefaults)
	assert.Equal(t, time.Minute, cfg.StatusSweepInterval)
	assert.Equal(t, []string{"https://grindzone.gg", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, LogFormatText, cfg.LogFormat)
}

func TestFromLookup_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port not a number", map[string]string{"SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"seed flag", map[string]string{"SEED_DEFAULTS": "sometimes"}},
		{"sweep interval", map[string]string{"STATUS_SWEEP_INTERVAL": "soon"}},
		{"negative sweep interval", map[string]string{"STATUS_SWEEP_INTERVAL": "-5s"}},
		{"log level", map[string]string{"LOG_LEVEL": "loud"}},
		{"log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "redis"}},
		{"postgres without url", map[string]string{"STORAGE_BACKEND": "postgres"}},
		{"r2 without credentials", map[string]string{"STORAGE_BACKEND": "r2", "R2_BUCKET_NAME": "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestFromLookup_R2(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"STORAGE_BACKEND":      "r2",
		"R2_ACCOUNT_ID":        "acc",
		"R2_ACCESS_KEY_ID":     "key",
		"R2_SECRET_ACCESS_KEY": "secret",
		"R2_BUCKET_NAME":       "bucket",
		"R2_PUBLIC_BASE_URL":   "https://cdn.grindzone.gg",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.R2Configured())
}
