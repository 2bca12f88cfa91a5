package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Provider defines the interface for weather data providers.
type Provider interface {
	// Geocode resolves a city name to a location.
	// Returns ErrCityNotFound if the provider has no match.
	Geocode(ctx context.Context, name string) (*Location, error)

	// GetCurrentConditions fetches current weather for a location.
	GetCurrentConditions(ctx context.Context, loc *Location) (*Conditions, error)

	// GetAirQuality fetches current air quality for a location.
	GetAirQuality(ctx context.Context, loc *Location) (*AirQualityReading, error)

	// GetDailyForecast fetches a daily forecast starting today.
	GetDailyForecast(ctx context.Context, loc *Location, days int) ([]DailyConditions, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the weather data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// ForecastDays is the number of days returned after today (default: 6).
	ForecastDays int

	// Now returns the current time (default: time.Now).
	Now func() time.Time
}

// Service builds weather and forecast reports for a city name.
type Service struct {
	provider     Provider
	logger       zerolog.Logger
	forecastDays int
	now          func() time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	forecastDays := cfg.ForecastDays
	if forecastDays <= 0 {
		forecastDays = 6
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		provider:     cfg.Provider,
		logger:       cfg.Logger,
		forecastDays: forecastDays,
		now:          now,
	}
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// GetCurrentWeather returns the current weather report for a city.
// Air quality is best effort: a failure is logged and the report has no AirQuality.
func (s *Service) GetCurrentWeather(ctx context.Context, city string) (*Report, error) {
	loc, err := s.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	var (
		conditions *Conditions
		airQuality *AirQualityReading
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.provider.GetCurrentConditions(gctx, loc)
		if err != nil {
			return err
		}
		conditions = c
		return nil
	})
	g.Go(func() error {
		aq, err := s.provider.GetAirQuality(gctx, loc)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("city", loc.Name).
				Msg("could not fetch air quality data")
			return nil
		}
		airQuality = aq
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).
			Str("city", loc.Name).
			Str("provider", s.provider.Name()).
			Msg("failed to fetch current weather")
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	info := LookupCode(conditions.WeatherCode)
	report := &Report{
		City:        loc.Name,
		Country:     loc.Country,
		Temperature: round1(conditions.Temperature),
		FeelsLike:   round1(conditions.FeelsLike),
		Humidity:    conditions.Humidity,
		WindSpeed:   round1(conditions.WindSpeed),
		Pressure:    round1(conditions.Pressure),
		Description: info.Description,
		Icon:        info.Icon,
		Timestamp:   conditions.Time,
	}
	if airQuality != nil {
		report.AirQuality = ClassifyAirQuality(*airQuality)
	}

	return report, nil
}

// GetForecast returns the daily forecast for a city, excluding today.
func (s *Service) GetForecast(ctx context.Context, city string) (*ForecastReport, error) {
	loc, err := s.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	// Ask for one extra day since today is skipped.
	daily, err := s.provider.GetDailyForecast(ctx, loc, s.forecastDays+1)
	if err != nil {
		s.logger.Error().Err(err).
			Str("city", loc.Name).
			Str("provider", s.provider.Name()).
			Msg("failed to fetch forecast")
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	report := &ForecastReport{
		City:            loc.Name,
		Country:         loc.Country,
		CurrentDateTime: s.now().UTC().Format(time.RFC3339),
		Days:            make([]ForecastDay, 0, s.forecastDays),
	}

	for i := 1; i < len(daily) && len(report.Days) < s.forecastDays; i++ {
		d := daily[i]
		info := LookupCode(d.WeatherCode)
		report.Days = append(report.Days, ForecastDay{
			Date:                     d.Date,
			DayOfWeek:                dayOfWeek(d.Date),
			TemperatureMax:           round1(d.TemperatureMax),
			TemperatureMin:           round1(d.TemperatureMin),
			Description:              info.Description,
			Icon:                     info.Icon,
			PrecipitationProbability: d.PrecipitationProbability,
			WindSpeed:                round1(d.WindSpeedMax),
			Humidity:                 d.HumidityMean,
		})
	}

	return report, nil
}

func (s *Service) geocode(ctx context.Context, city string) (*Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrInvalidCity
	}

	s.logger.Debug().
		Str("city", city).
		Str("provider", s.provider.Name()).
		Msg("geocoding city")

	loc, err := s.provider.Geocode(ctx, city)
	if err != nil {
		if errors.Is(err, ErrCityNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("city", city).Msg("failed to geocode city")
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	return loc, nil
}

func dayOfWeek(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}
