package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бэкенды хранилища.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendR2       = "r2"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort     int
	StorageBackend string
	DatabaseURL    string
	SQLitePath     string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	R2KeyPrefix       string

	SeedDefaults        bool
	StatusSweepInterval time.Duration
	CORSAllowedOrigins  []string

	LogLevel  slog.Level
	LogFormat string
}

// R2Configured reports whether every R2 credential is present.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup собирает конфигурацию из произвольного источника переменных.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	port, err := strconv.Atoi(get("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	seed, err := strconv.ParseBool(get("SEED_DEFAULTS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEFAULTS environment variable: %w", err)
	}

	sweep, err := time.ParseDuration(get("STATUS_SWEEP_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_SWEEP_INTERVAL environment variable: %w", err)
	}
	if sweep <= 0 {
		return nil, fmt.Errorf("STATUS_SWEEP_INTERVAL must be positive, got %s", sweep)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	format := strings.ToLower(get("LOG_FORMAT", LogFormatJSON))
	if format != LogFormatJSON && format != LogFormatText {
		return nil, fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", LogFormatJSON, LogFormatText, format)
	}

	var origins []string
	for _, o := range strings.Split(get("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	cfg := &Config{
		ServerPort:          port,
		StorageBackend:      strings.ToLower(get("STORAGE_BACKEND", BackendMemory)),
		DatabaseURL:         get("DATABASE_URL", ""),
		SQLitePath:          get("SQLITE_PATH", "grindzone.db"),
		R2AccountID:         get("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:       get("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:   get("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:        get("R2_BUCKET_NAME", ""),
		R2PublicBaseURL:     get("R2_PUBLIC_BASE_URL", ""),
		R2KeyPrefix:         get("R2_KEY_PREFIX", "grindzone/"),
		SeedDefaults:        seed,
		StatusSweepInterval: sweep,
		CORSAllowedOrigins:  origins,
		LogLevel:            level,
		LogFormat:           format,
	}

	switch cfg.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH environment variable is not set")
		}
	case BackendR2:
		if !cfg.R2Configured() {
			return nil, fmt.Errorf("STORAGE_BACKEND=r2 requires R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME and R2_PUBLIC_BASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}
