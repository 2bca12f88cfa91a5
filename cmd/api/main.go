// Package main provides the entrypoint for the WeatherNow API server and dashboard.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/weathernow/weathernow/internal/api"
	"github.com/weathernow/weathernow/internal/api/handler"
	"github.com/weathernow/weathernow/internal/api/middleware"
	"github.com/weathernow/weathernow/internal/config"
	"github.com/weathernow/weathernow/internal/dashboard"
	"github.com/weathernow/weathernow/internal/database"
	"github.com/weathernow/weathernow/internal/provider/resilience"
	"github.com/weathernow/weathernow/internal/status"
	"github.com/weathernow/weathernow/internal/telemetry"
	"github.com/weathernow/weathernow/internal/weather"
	"github.com/weathernow/weathernow/internal/weather/openmeteo"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "weathernow-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Env).
		Msg("starting WeatherNow API")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Env,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRatio:    cfg.OTelSampleRatio,
		Enabled:        cfg.OTelEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTelEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Status checks need Postgres; without it /api/status answers 503.
	var (
		pool          *pgxpool.Pool
		statusService *status.Service
	)
	if cfg.DBEnabled {
		pool, err = database.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		statusRepo := status.NewPostgresRepository(pool)
		if err := statusRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to prepare status_checks table")
		}
		statusService = status.NewService(statusRepo)

		log.Info().
			Str("database", cfg.Database.Redacted()).
			Msg("database connected")
	} else {
		log.Warn().Msg("database disabled - status checks unavailable")
	}

	providerMetrics, err := telemetry.NewProviderMetrics(openmeteo.ProviderName)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
	}

	registry := resilience.NewRegistry()
	provider := openmeteo.NewClient(openmeteo.ClientConfig{
		GeocodingURL:  cfg.GeocodingURL,
		ForecastURL:   cfg.ForecastURL,
		AirQualityURL: cfg.AirQualityURL,
		Registry:      registry,
		Metrics:       providerMetrics,
		Logger:        log,
	})
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider:     provider,
		Logger:       log,
		ForecastDays: cfg.ForecastDays,
	})
	log.Info().
		Int("providers", registry.ProviderCount()).
		Int("forecast_days", cfg.ForecastDays).
		Msg("weather service initialized")

	// The dashboard reads the weather service directly; going through
	// /api would put every page load behind the loopback rate limit.
	dashboardFetcher := dashboard.NewLocalFetcher(dashboard.LocalFetcherConfig{
		Source:   weatherService,
		Timeout:  cfg.DashboardTimeout,
		Location: cfg.DashboardZone,
	})

	var db handler.Pinger
	if pool != nil {
		db = pool
	}

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		WeatherService:     weatherService,
		StatusService:      statusService,
		Registry:           registry,
		DB:                 db,
		DashboardFetcher:   dashboardFetcher,
		DashboardMapper:    dashboard.NewMapper(cfg.DashboardZone),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RequireTLS:         cfg.RequireTLS,
	})

	// Dashboard pages wait on two backend calls, so writes get the
	// dashboard timeout on top of the usual budget.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.DashboardTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
