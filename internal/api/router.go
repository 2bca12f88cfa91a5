// Package api provides the HTTP surface of WeatherNow: the JSON API under
// /api, operational endpoints under /v1/ops and the dashboard at /.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/weathernow/weathernow/internal/api/handler"
	"github.com/weathernow/weathernow/internal/api/middleware"
	"github.com/weathernow/weathernow/internal/dashboard"
	"github.com/weathernow/weathernow/internal/dashboard/view"
	"github.com/weathernow/weathernow/internal/provider/resilience"
	"github.com/weathernow/weathernow/internal/status"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	// WeatherService backs /api/weather and /api/forecast.
	WeatherService handler.WeatherService

	// StatusService backs /api/status. Nil answers 503.
	StatusService *status.Service

	// Registry and DB feed /v1/ops. Both may be nil.
	Registry *resilience.Registry
	DB       handler.Pinger

	// DashboardFetcher enables the dashboard at / when set.
	DashboardFetcher dashboard.Fetcher
	DashboardMapper  *dashboard.Mapper

	CORSAllowedOrigins []string
	RequireTLS         bool
}

// NewRouter creates a new chi router with all routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "weathernow-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement (REQUIRE_TLS=true)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry, cfg.DB)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherService, cfg.Logger)
	statusHandler := handler.NewStatusHandler(cfg.StatusService, cfg.Logger)

	weatherRateLimit := middleware.RateLimitByIP(middleware.WeatherRateLimit)     // 60 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min
	dashboardRateLimit := middleware.RateLimitByIP(middleware.DashboardRateLimit) // 30 req/min

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.ContentTypeJSON)

		r.With(standardRateLimit).Get("/", weatherHandler.Root)
		r.With(weatherRateLimit).Get("/weather", weatherHandler.GetWeather)
		r.With(weatherRateLimit).Get("/forecast", weatherHandler.GetForecast)

		r.Route("/status", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", statusHandler.ListChecks)
			r.With(middleware.RequireJSON).Post("/", statusHandler.CreateCheck)
		})
	})

	r.Route("/v1/ops", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.ContentTypeJSON)
		r.Get("/health", opsHandler.HealthCheck)
		r.Get("/ready", opsHandler.ReadinessCheck)
		r.Get("/status", opsHandler.SystemStatus)
	})

	if cfg.DashboardFetcher != nil {
		mapper := cfg.DashboardMapper
		if mapper == nil {
			mapper = dashboard.NewMapper(nil)
		}
		dashboardHandler := handler.NewDashboardHandler(cfg.DashboardFetcher, view.NewRenderer(mapper), cfg.Logger)

		r.With(middleware.DashboardSecurityHeaders, dashboardRateLimit).Get("/", dashboardHandler.Page)
	}

	return r
}
