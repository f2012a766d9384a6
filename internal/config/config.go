package config

import (
	"os"
	"strconv"
	"time"

	"distfit/domain/fit"
	"distfit/internal"
	"distfit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Fit    FitConfig
	Server ServerConfig
	Log    LogConfig
}

// FitConfig holds the default fitting options. Raw keeps the unparsed
// values so callers can layer their own overrides before resolving.
type FitConfig struct {
	Raw     fit.RawOptions
	Options fit.Options
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	fitConfig, err := loadFitConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load fit configuration")
	}
	config.Fit = *fitConfig

	serverConfig, err := loadServerConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load server configuration")
	}
	config.Server = *serverConfig

	config.Log = *loadLogConfig()

	return config, nil
}

func loadFitConfig() (*FitConfig, error) {
	parallel, err := getEnvBool("DISTFIT_PARALLEL", false)
	if err != nil {
		return nil, err
	}

	raw := fit.RawOptions{
		SortMetric:    os.Getenv("DISTFIT_SORT_METRIC"),
		ResultCount:   os.Getenv("DISTFIT_RESULT_COUNT"),
		HistogramBins: os.Getenv("DISTFIT_HISTOGRAM_BINS"),
		Parallel:      parallel,
	}
	opts, err := fit.ResolveOptions(raw)
	if err != nil {
		return nil, err
	}
	return &FitConfig{Raw: raw, Options: opts}, nil
}

func loadServerConfig() (*ServerConfig, error) {
	timeout, err := time.ParseDuration(getEnvOrDefault("REQUEST_TIMEOUT", "60s"))
	if err != nil {
		return nil, errors.ConfigInvalid("REQUEST_TIMEOUT must be a duration such as 30s")
	}

	maxBody, err := strconv.ParseInt(getEnvOrDefault("MAX_BODY_BYTES", "33554432"), 10, 64)
	if err != nil || maxBody <= 0 {
		return nil, errors.ConfigInvalid("MAX_BODY_BYTES must be a positive integer")
	}

	return &ServerConfig{
		Port:           getEnvOrDefault("PORT", "8080"),
		RequestTimeout: timeout,
		MaxBodyBytes:   maxBody,
	}, nil
}

func loadLogConfig() *LogConfig {
	level, _ := internal.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	return &LogConfig{Level: level}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.ConfigInvalid(key + " must be true or false")
	}
	return b, nil
}
