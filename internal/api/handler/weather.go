// Package handler provides HTTP handlers for the WeatherNow API and dashboard.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weathernow/weathernow/internal/api/middleware"
	"github.com/weathernow/weathernow/internal/api/models"
	"github.com/weathernow/weathernow/internal/api/response"
	"github.com/weathernow/weathernow/internal/provider/resilience"
	"github.com/weathernow/weathernow/internal/weather"
)

// WeatherService is the part of weather.Service the handlers use.
type WeatherService interface {
	GetCurrentWeather(ctx context.Context, city string) (*weather.Report, error)
	GetForecast(ctx context.Context, city string) (*weather.ForecastReport, error)
}

// WeatherHandler serves /api/weather and /api/forecast.
type WeatherHandler struct {
	service WeatherService
	logger  zerolog.Logger
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(service WeatherService, logger zerolog.Logger) *WeatherHandler {
	return &WeatherHandler{service: service, logger: logger}
}

// Root handles GET /api/.
func (h *WeatherHandler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Message{Message: "Weather API is running"})
}

// GetWeather handles GET /api/weather?city={name}.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	city, ok := cityParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.GetCurrentWeather(r.Context(), city)
	if err != nil {
		h.writeError(w, r, city, err, "Failed to fetch weather data")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewWeatherResponse(report))
}

// GetForecast handles GET /api/forecast?city={name}.
func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	city, ok := cityParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.GetForecast(r.Context(), city)
	if err != nil {
		h.writeError(w, r, city, err, "Failed to fetch forecast data")
		return
	}

	response.JSON(w, r, http.StatusOK, models.NewForecastResponse(report))
}

func cityParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		response.BadRequest(w, r, "city query parameter is required", []models.FieldError{
			{Field: "city", Message: "required", Code: "REQUIRED"},
		})
		return "", false
	}
	return city, true
}

func (h *WeatherHandler) writeError(w http.ResponseWriter, r *http.Request, city string, err error, failure string) {
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		response.NotFound(w, r, fmt.Sprintf("City '%s' not found", city))
	case errors.Is(err, weather.ErrInvalidCity):
		response.BadRequest(w, r, "city query parameter is required", nil)
	case errors.Is(err, resilience.ErrCircuitOpen):
		response.ServiceUnavailable(w, r, "Weather provider is temporarily unavailable")
	default:
		h.logger.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Str("city", city).
			Msg(failure)
		response.InternalError(w, r, failure)
	}
}
