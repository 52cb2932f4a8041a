package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is built once in main and handed to every component that needs it.
type Config struct {
	Env         string
	Port        string
	DatabaseURL string

	// APIKey guards every non-anonymous route. Empty means deny all.
	APIKey string

	CORSAllowedOrigins []string

	RateLimitPermits int
	RateLimitWindow  time.Duration

	SquareSignatureKey   string
	SquareDefaultStoreID int

	LogLevel  string
	LogFormat string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests can supply their own values.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Env:                getOr(getenv, "APP_ENV", EnvDevelopment),
		Port:               getOr(getenv, "APP_PORT", "8080"),
		DatabaseURL:        getenv("DATABASE_URL"),
		APIKey:             getenv("API_KEY"),
		CORSAllowedOrigins: splitList(getOr(getenv, "CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		SquareSignatureKey: getenv("SQUARE_WEBHOOK_SIGNATURE_KEY"),
		LogLevel:           getOr(getenv, "LOG_LEVEL", "info"),
		LogFormat:          getOr(getenv, "LOG_FORMAT", "json"),
	}

	switch cfg.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, cfg.Env)
	}

	var err error
	if cfg.RateLimitPermits, err = intFromEnv(getenv, "RATE_LIMIT_PERMITS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitPermits <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PERMITS must be positive")
	}
	windowSeconds, err := intFromEnv(getenv, "RATE_LIMIT_WINDOW_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	if windowSeconds <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	cfg.RateLimitWindow = time.Duration(windowSeconds) * time.Second

	if cfg.SquareDefaultStoreID, err = intFromEnv(getenv, "SQUARE_DEFAULT_STORE_ID", 1); err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConns, err = intFromEnv(getenv, "DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = intFromEnv(getenv, "DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	lifetime, err := intFromEnv(getenv, "DB_CONN_MAX_LIFETIME_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	cfg.DBConnMaxLifetime = time.Duration(lifetime) * time.Second

	return cfg, nil
}

func getOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intFromEnv(getenv func(string) string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
