package models

import (
	"github.com/weathernow/weathernow/internal/weather"
)

// AirQuality is the air_quality block of WeatherResponse.
type AirQuality struct {
	AQI                  int     `json:"aqi"`
	Category             string  `json:"category"`
	PM25                 float64 `json:"pm2_5"`
	PM10                 float64 `json:"pm10"`
	HealthRecommendation string  `json:"health_recommendation"`
}

// WeatherResponse is the body of GET /api/weather.
type WeatherResponse struct {
	City               string      `json:"city"`
	Country            *string     `json:"country"`
	Temperature        float64     `json:"temperature"`
	FeelsLike          float64     `json:"feels_like"`
	Humidity           int         `json:"humidity"`
	WindSpeed          float64     `json:"wind_speed"`
	Pressure           float64     `json:"pressure"`
	WeatherDescription string      `json:"weather_description"`
	Icon               string      `json:"icon"`
	Visibility         *int        `json:"visibility"`
	Timestamp          string      `json:"timestamp"`
	AirQuality         *AirQuality `json:"air_quality"`
}

// ForecastDay is one entry of ForecastResponse.ForecastDays.
type ForecastDay struct {
	Date                     string  `json:"date"`
	DayOfWeek                string  `json:"day_of_week"`
	TemperatureMax           float64 `json:"temperature_max"`
	TemperatureMin           float64 `json:"temperature_min"`
	WeatherDescription       string  `json:"weather_description"`
	Icon                     string  `json:"icon"`
	PrecipitationProbability int     `json:"precipitation_probability"`
	WindSpeed                float64 `json:"wind_speed"`
	Humidity                 int     `json:"humidity"`
}

// ForecastResponse is the body of GET /api/forecast.
type ForecastResponse struct {
	City            string        `json:"city"`
	Country         *string       `json:"country"`
	CurrentDateTime string        `json:"current_datetime"`
	ForecastDays    []ForecastDay `json:"forecast_days"`
}

// NewWeatherResponse converts a domain report to its wire form.
func NewWeatherResponse(r *weather.Report) WeatherResponse {
	resp := WeatherResponse{
		City:               r.City,
		Country:            optionalString(r.Country),
		Temperature:        r.Temperature,
		FeelsLike:          r.FeelsLike,
		Humidity:           r.Humidity,
		WindSpeed:          r.WindSpeed,
		Pressure:           r.Pressure,
		WeatherDescription: r.Description,
		Icon:               r.Icon,
		Visibility:         r.Visibility,
		Timestamp:          r.Timestamp,
	}
	if aq := r.AirQuality; aq != nil {
		resp.AirQuality = &AirQuality{
			AQI:                  aq.AQI,
			Category:             aq.Category,
			PM25:                 aq.PM25,
			PM10:                 aq.PM10,
			HealthRecommendation: aq.HealthRecommendation,
		}
	}
	return resp
}

// NewForecastResponse converts a domain forecast to its wire form.
func NewForecastResponse(r *weather.ForecastReport) ForecastResponse {
	days := make([]ForecastDay, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, ForecastDay{
			Date:                     d.Date,
			DayOfWeek:                d.DayOfWeek,
			TemperatureMax:           d.TemperatureMax,
			TemperatureMin:           d.TemperatureMin,
			WeatherDescription:       d.Description,
			Icon:                     d.Icon,
			PrecipitationProbability: d.PrecipitationProbability,
			WindSpeed:                d.WindSpeed,
			Humidity:                 d.Humidity,
		})
	}

	return ForecastResponse{
		City:            r.City,
		Country:         optionalString(r.Country),
		CurrentDateTime: r.CurrentDateTime,
		ForecastDays:    days,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
