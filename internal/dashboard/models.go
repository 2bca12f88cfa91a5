// Package dashboard drives the WeatherNow dashboard: it fetches current
// weather and forecast for a city from the backend API, joins the two
// results and exposes a single UI state for the view layer to render.
package dashboard

import (
	"time"

	"github.com/weathernow/weathernow/internal/weather"
)

// CurrentWeather is a validated /api/weather payload. JSON field names match
// the API; timestamps and dates are encoded as RFC 3339.
type CurrentWeather struct {
	City         string      `json:"city"`
	Country      string      `json:"country"`
	TemperatureC float64     `json:"temperature"`
	FeelsLikeC   float64     `json:"feels_like"`
	HumidityPct  float64     `json:"humidity"`
	WindSpeedKmh float64     `json:"wind_speed"`
	PressureHPa  float64     `json:"pressure"`
	Description  string      `json:"weather_description"`
	Icon         string      `json:"icon"`
	VisibilityKm *float64    `json:"visibility"`
	Timestamp    time.Time   `json:"timestamp"`
	AirQuality   *AirQuality `json:"air_quality"`
}

// AirQuality is the optional air quality block of CurrentWeather.
type AirQuality struct {
	AQI                  int     `json:"aqi"`
	Category             string  `json:"category"`
	PM25                 float64 `json:"pm2_5"`
	PM10                 float64 `json:"pm10"`
	HealthRecommendation string  `json:"health_recommendation"`
}

// ForecastDay is one validated forecast entry.
type ForecastDay struct {
	Date           time.Time `json:"date"`
	Description    string    `json:"weather_description"`
	TemperatureMax float64   `json:"temperature_max"`
	TemperatureMin float64   `json:"temperature_min"`

	DayOfWeek                string   `json:"day_of_week,omitempty"`
	Icon                     string   `json:"icon,omitempty"`
	PrecipitationProbability *int     `json:"precipitation_probability,omitempty"`
	WindSpeed                *float64 `json:"wind_speed,omitempty"`
	Humidity                 *int     `json:"humidity,omitempty"`
}

// Forecast is a validated /api/forecast payload. Days keep the order the
// backend sent them in.
type Forecast struct {
	City            string        `json:"city"`
	Country         string        `json:"country"`
	CurrentDateTime string        `json:"current_datetime"`
	Days            []ForecastDay `json:"forecast_days"`
}

// Phase is the presentation branch a State is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "idle"
	}
}

// State is the orchestrator's UI state. Loading, a non-empty Error and a
// populated Weather are mutually exclusive.
type State struct {
	Query      string
	Weather    *CurrentWeather
	Forecast   *Forecast
	Loading    bool
	Error      string
	Generation uint64
}

// Phase reports which branch the view should render.
func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Error != "":
		return PhaseFailure
	case s.Weather != nil:
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

// VisualMode is the background mode for the current weather, or
// weather.VisualModeDefault when there is none.
func (s State) VisualMode() weather.VisualMode {
	if s.Weather == nil {
		return weather.VisualModeDefault
	}
	return weather.ClassifyDescription(s.Weather.Description)
}
