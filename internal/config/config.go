// Package config loads WeatherNow settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/weathernow/weathernow/internal/database"
)

// Config holds settings shared by the API server and the CLI.
type Config struct {
	Port     string
	Env      string
	LogLevel zerolog.Level

	OTelEnabled     bool
	OTLPEndpoint    string
	OTelSampleRatio float64

	DBEnabled bool
	Database  database.Config

	GeocodingURL  string
	ForecastURL   string
	AirQualityURL string
	ForecastDays  int

	CORSAllowedOrigins []string
	RequireTLS         bool

	DashboardAPIURL  string
	DashboardTimeout time.Duration
	DashboardZone    *time.Location
}

// Load reads .env files (when present) and then the environment.
// Variables already set in the environment take precedence over .env values.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:               getEnvOrDefault("APP_PORT", "8080"),
		Env:                getEnvOrDefault("APP_ENV", "development"),
		OTelEnabled:        os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:       getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		DBEnabled:          os.Getenv("DB_ENABLED") == "true",
		Database:           database.ConfigFromEnv(),
		GeocodingURL:       os.Getenv("OPENMETEO_GEOCODING_URL"),
		ForecastURL:        os.Getenv("OPENMETEO_FORECAST_URL"),
		AirQualityURL:      os.Getenv("OPENMETEO_AIR_QUALITY_URL"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RequireTLS:         os.Getenv("REQUIRE_TLS") == "true",
	}

	level, err := zerolog.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	cfg.OTelSampleRatio, err = strconv.ParseFloat(getEnvOrDefault("OTEL_TRACES_SAMPLER_ARG", "1"), 64)
	if err != nil || cfg.OTelSampleRatio < 0 || cfg.OTelSampleRatio > 1 {
		return Config{}, fmt.Errorf("OTEL_TRACES_SAMPLER_ARG must be between 0 and 1")
	}

	cfg.ForecastDays, err = strconv.Atoi(getEnvOrDefault("FORECAST_DAYS", "6"))
	if err != nil || cfg.ForecastDays < 1 || cfg.ForecastDays > 15 {
		return Config{}, fmt.Errorf("FORECAST_DAYS must be between 1 and 15")
	}

	cfg.DashboardAPIURL = getEnvOrDefault("DASHBOARD_API_URL", "http://localhost:"+cfg.Port)

	cfg.DashboardTimeout, err = time.ParseDuration(getEnvOrDefault("DASHBOARD_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("DASHBOARD_TIMEOUT: %w", err)
	}

	cfg.DashboardZone = time.Local
	if name := os.Getenv("DASHBOARD_TIMEZONE"); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return Config{}, fmt.Errorf("DASHBOARD_TIMEZONE: %w", err)
		}
		cfg.DashboardZone = loc
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
