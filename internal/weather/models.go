// Package weather provides current conditions, daily forecasts and air quality
// for a city, plus the classifiers shared by the API and the dashboard.
package weather

import (
	"errors"
)

// Weather errors.
var (
	ErrProviderUnavailable = errors.New("weather provider unavailable")
	ErrCityNotFound        = errors.New("city not found")
	ErrInvalidCity         = errors.New("invalid city name")
)

// Location is a geocoded city.
type Location struct {
	Name     string
	Country  string
	Lat      float64
	Lon      float64
	Timezone string
}

// Conditions is the provider's view of current weather at a point.
type Conditions struct {
	// Time is the provider's local observation time, e.g. "2025-01-10T14:30".
	Time string

	Temperature float64 // °C
	FeelsLike   float64 // °C
	Humidity    int     // percent
	WindSpeed   float64 // km/h
	Pressure    float64 // hPa (mean sea level)
	WeatherCode int     // WMO code
}

// AirQualityReading holds raw air quality values at a point.
type AirQualityReading struct {
	USAQI int
	PM25  float64 // μg/m³
	PM10  float64 // μg/m³
}

// DailyConditions is one day of a provider's daily forecast.
type DailyConditions struct {
	Date                     string // YYYY-MM-DD
	WeatherCode              int
	TemperatureMax           float64
	TemperatureMin           float64
	PrecipitationProbability int
	WindSpeedMax             float64
	HumidityMean             int
}

// AirQuality is the classified air quality attached to a report.
type AirQuality struct {
	AQI                  int
	Category             string
	PM25                 float64
	PM10                 float64
	HealthRecommendation string
}

// Report is the current weather for a city.
type Report struct {
	City        string
	Country     string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
	Pressure    float64
	Description string
	Icon        string
	// Visibility in km. Open-Meteo does not report it, so it is usually nil.
	Visibility *int
	Timestamp  string
	AirQuality *AirQuality
}

// ForecastDay is one day of a forecast report.
type ForecastDay struct {
	Date                     string
	DayOfWeek                string
	TemperatureMax           float64
	TemperatureMin           float64
	Description              string
	Icon                     string
	PrecipitationProbability int
	WindSpeed                float64
	Humidity                 int
}

// ForecastReport is a multi-day forecast for a city.
type ForecastReport struct {
	City            string
	Country         string
	CurrentDateTime string
	Days            []ForecastDay
}
