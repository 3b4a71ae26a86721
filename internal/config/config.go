// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Telemetry exporters.
const (
	ExporterNone     = "none"
	ExporterStdout   = "stdout"
	ExporterOTLPGRPC = "otlp-grpc"
	ExporterOTLPHTTP = "otlp-http"
)

// DefaultHTTPAddr is the listen address of the local API.
const DefaultHTTPAddr = "127.0.0.1:8080"

var exporters = []string{ExporterNone, ExporterStdout, ExporterOTLPGRPC, ExporterOTLPHTTP}

// Config holds all configuration for the application.
type Config struct {
	StorageBackend  string
	SQLitePath      string
	DatabaseURL     string
	LogLevel        string
	LogFormat       string
	DefaultCurrency models.Currency
	SeedSampleData  bool
	HTTPAddr        string
	OtelExporter    string
	OtelEndpoint    string
	ServiceName     string
	LogHashSalt     string
}

// Load reads configuration from environment variables, after loading a
// .env file from the working directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StorageBackend:  strings.ToLower(envOr("STORAGE_BACKEND", BackendSQLite)),
		SQLitePath:      envOr("SQLITE_PATH", defaultSQLitePath()),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       envOr("LOG_FORMAT", "console"),
		DefaultCurrency: models.Currency(strings.ToUpper(envOr("DEFAULT_CURRENCY", string(models.DefaultCurrency)))),
		SeedSampleData:  true,
		HTTPAddr:        envOr("HTTP_ADDR", DefaultHTTPAddr),
		OtelExporter:    strings.ToLower(envOr("OTEL_EXPORTER", ExporterNone)),
		OtelEndpoint:    os.Getenv("OTEL_ENDPOINT"),
		ServiceName:     envOr("OTEL_SERVICE_NAME", "freelance-ledger"),
		LogHashSalt:     os.Getenv("LOG_HASH_SALT"),
	}

	if v := os.Getenv("SEED_SAMPLE_DATA"); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			cfg.SeedSampleData = seed
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that the configuration is usable.
func (c *Config) validate() error {
	var errs []string

	switch c.StorageBackend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for the postgres backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("STORAGE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendPostgres, c.StorageBackend))
	}

	if !models.IsSupportedCurrency(c.DefaultCurrency) {
		errs = append(errs, fmt.Sprintf("DEFAULT_CURRENCY %q is not supported", c.DefaultCurrency))
	}

	if !slices.Contains(exporters, c.OtelExporter) {
		errs = append(errs, fmt.Sprintf("OTEL_EXPORTER must be one of %s", strings.Join(exporters, ", ")))
	}

	if c.LogHashSalt != "" && len(c.LogHashSalt) < logger.MinHashSaltLength {
		errs = append(errs, fmt.Sprintf("LOG_HASH_SALT must be at least %d characters", logger.MinHashSaltLength))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ledger.db"
	}
	return filepath.Join(dir, "freelance-ledger", "ledger.db")
}
