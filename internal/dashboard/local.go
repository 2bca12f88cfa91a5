package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weathernow/weathernow/internal/weather"
)

// ReportSource is the in-process weather backend, satisfied by *weather.Service.
type ReportSource interface {
	GetCurrentWeather(ctx context.Context, city string) (*weather.Report, error)
	GetForecast(ctx context.Context, city string) (*weather.ForecastReport, error)
}

// LocalFetcherConfig configures a LocalFetcher.
type LocalFetcherConfig struct {
	Source ReportSource

	// Timeout bounds each read (default: 15s).
	Timeout time.Duration

	// Location is used for timestamps without an offset (default: time.Local).
	Location *time.Location
}

// LocalFetcher serves the dashboard from the weather service in the same
// process. Reports go through the same validation as API payloads, and
// service errors map onto the same taxonomy as HTTP failures.
type LocalFetcher struct {
	source   ReportSource
	timeout  time.Duration
	location *time.Location
}

// NewLocalFetcher creates a LocalFetcher.
func NewLocalFetcher(cfg LocalFetcherConfig) *LocalFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &LocalFetcher{source: cfg.Source, timeout: timeout, location: loc}
}

// FetchCurrentWeather reads the current weather report for city.
func (f *LocalFetcher) FetchCurrentWeather(ctx context.Context, city string) (*CurrentWeather, error) {
	const op = "fetch current weather"

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	report, err := f.source.GetCurrentWeather(ctx, city)
	if err != nil {
		return nil, serviceError(op, city, err)
	}
	return validateWeather(op, reportPayload(report), f.location)
}

// FetchForecast reads the forecast report for city.
func (f *LocalFetcher) FetchForecast(ctx context.Context, city string) (*Forecast, error) {
	const op = "fetch forecast"

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	report, err := f.source.GetForecast(ctx, city)
	if err != nil {
		return nil, serviceError(op, city, err)
	}
	return validateForecast(op, forecastReportPayload(report))
}

// serviceError mirrors the API's error mapping: an unknown city becomes the
// same "City 'X' not found" detail the 404 problem carries.
func serviceError(op, city string, err error) error {
	if errors.Is(err, weather.ErrCityNotFound) {
		return &NotFoundError{Detail: fmt.Sprintf("City '%s' not found", strings.TrimSpace(city))}
	}
	return &TransportError{Op: op, Err: err}
}

func reportPayload(r *weather.Report) *weatherPayload {
	p := &weatherPayload{
		City:               &r.City,
		Country:            &r.Country,
		Temperature:        &r.Temperature,
		FeelsLike:          &r.FeelsLike,
		WindSpeed:          &r.WindSpeed,
		Pressure:           &r.Pressure,
		WeatherDescription: &r.Description,
		Icon:               r.Icon,
		Timestamp:          &r.Timestamp,
	}
	humidity := float64(r.Humidity)
	p.Humidity = &humidity
	if r.Visibility != nil {
		v := float64(*r.Visibility)
		p.Visibility = &v
	}
	if aq := r.AirQuality; aq != nil {
		p.AirQuality = &airQualityPayload{
			AQI:                  &aq.AQI,
			PM25:                 &aq.PM25,
			PM10:                 &aq.PM10,
			Category:             aq.Category,
			HealthRecommendation: aq.HealthRecommendation,
		}
	}
	return p
}

func forecastReportPayload(r *weather.ForecastReport) *forecastPayload {
	p := &forecastPayload{
		City:            r.City,
		Country:         &r.Country,
		CurrentDateTime: r.CurrentDateTime,
		ForecastDays:    make([]forecastDayPayload, 0, len(r.Days)),
	}
	for i := range r.Days {
		d := &r.Days[i]
		p.ForecastDays = append(p.ForecastDays, forecastDayPayload{
			Date:                     &d.Date,
			DayOfWeek:                d.DayOfWeek,
			TemperatureMax:           &d.TemperatureMax,
			TemperatureMin:           &d.TemperatureMin,
			WeatherDescription:       &d.Description,
			Icon:                     d.Icon,
			PrecipitationProbability: &d.PrecipitationProbability,
			WindSpeed:                &d.WindSpeed,
			Humidity:                 &d.Humidity,
		})
	}
	return p
}
