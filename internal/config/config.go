package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	AutoMigrate        bool
	CORSAllowedOrigins []string

	AuthJWTSecret string
	AuthIssuer    string
	AuthAudience  string
	AuthClockSkew time.Duration

	CompanyHeader  string
	RootDomain     string
	DefaultCompany string

	ExtractorURL     string
	ExtractorAPIKey  string
	ExtractorTimeout time.Duration

	APIRateLimit     string
	ImportMaxBytes   int64
	ImportRateMax    int
	ImportRateWindow time.Duration

	PayoutProvider string
	PayoutURL      string
	PayoutAPIKey   string

	EmailEnabled bool
	EmailFrom    string

	IdempotencyTTL    time.Duration
	AuditSampleRate   float64
	WorkerConcurrency int

	AnalyticsCacheTTL     time.Duration
	AnalyticsDefaultRange int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		AutoMigrate:        parseBool(k.String("DB_AUTO_MIGRATE")),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		AuthJWTSecret:      k.String("AUTH_JWT_SECRET"),
		AuthIssuer:         strings.TrimSpace(k.String("AUTH_ISSUER")),
		AuthAudience:       strings.TrimSpace(k.String("AUTH_AUDIENCE")),
		AuthClockSkew:      parseDuration(k.String("AUTH_CLOCK_SKEW"), "30s"),
		CompanyHeader:      valueOrDefault(k.String("COMPANY_HEADER"), "X-Company-ID"),
		RootDomain:         strings.TrimSpace(k.String("ROOT_DOMAIN")),
		DefaultCompany:     strings.TrimSpace(k.String("DEFAULT_COMPANY")),
		ExtractorURL:       strings.TrimSpace(k.String("EXTRACTOR_URL")),
		ExtractorAPIKey:    k.String("EXTRACTOR_API_KEY"),
		ExtractorTimeout:   parseDuration(k.String("EXTRACTOR_TIMEOUT"), "30s"),
		APIRateLimit:       valueOrDefault(k.String("API_RATE_LIMIT"), "120-M"),
		ImportMaxBytes:     int64(parseInt(k.String("IMPORT_MAX_MB"), 10)) << 20,
		ImportRateMax:      parseInt(k.String("IMPORT_RATE_MAX"), 10),
		ImportRateWindow:   parseDuration(k.String("IMPORT_RATE_WINDOW"), "1m"),
		PayoutProvider:     valueOrDefault(k.String("PAYOUT_PROVIDER"), "stub"),
		PayoutURL:          strings.TrimSpace(k.String("PAYOUT_URL")),
		PayoutAPIKey:       k.String("PAYOUT_API_KEY"),
		EmailEnabled:       parseBool(k.String("EMAIL_ENABLED")),
		EmailFrom:          valueOrDefault(k.String("EMAIL_FROM"), "billing@localhost"),
		IdempotencyTTL:     parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		AuditSampleRate:    parseFloat(k.String("AUDIT_SAMPLE_RATE"), 1.0),
		WorkerConcurrency:  parseInt(k.String("WORKER_CONCURRENCY"), 10),

		AnalyticsCacheTTL:     parseDuration(k.String("ANALYTICS_CACHE_TTL"), "60s"),
		AnalyticsDefaultRange: parseInt(k.String("ANALYTICS_DEFAULT_RANGE_DAYS"), 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.AuthJWTSecret == "" {
		return nil, errors.New("AUTH_JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(value string, fallback float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
