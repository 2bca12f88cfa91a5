package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Fetcher reads the two payloads a submission needs.
type Fetcher interface {
	FetchCurrentWeather(ctx context.Context, city string) (*CurrentWeather, error)
	FetchForecast(ctx context.Context, city string) (*Forecast, error)
}

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// timestampLayouts are tried in order. Layouts without an offset are read
// as wall time in the client's location.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ClientConfig configures the backend API client.
type ClientConfig struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	BaseURL string

	// Timeout bounds each request (default: 15s).
	Timeout time.Duration

	// Location is used for timestamps without an offset (default: time.Local).
	Location *time.Location

	// Transport is the underlying round tripper (default: http.DefaultTransport).
	Transport http.RoundTripper
}

// Client fetches weather and forecast payloads from the backend API.
// It does not retry; a failed read fails the submission.
type Client struct {
	baseURL    string
	httpClient *http.Client
	location   *time.Location
}

// NewClient creates a backend API client with an instrumented transport.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base),
		},
		location: loc,
	}
}

type weatherPayload struct {
	City               *string            `json:"city"`
	Country            *string            `json:"country"`
	Temperature        *float64           `json:"temperature"`
	FeelsLike          *float64           `json:"feels_like"`
	Humidity           *float64           `json:"humidity"`
	WindSpeed          *float64           `json:"wind_speed"`
	Pressure           *float64           `json:"pressure"`
	WeatherDescription *string            `json:"weather_description"`
	Icon               string             `json:"icon"`
	Visibility         *float64           `json:"visibility"`
	Timestamp          *string            `json:"timestamp"`
	AirQuality         *airQualityPayload `json:"air_quality"`
}

type airQualityPayload struct {
	AQI                  *int     `json:"aqi"`
	PM25                 *float64 `json:"pm2_5"`
	PM10                 *float64 `json:"pm10"`
	Category             string   `json:"category"`
	HealthRecommendation string   `json:"health_recommendation"`
}

type forecastPayload struct {
	City            string               `json:"city"`
	Country         *string              `json:"country"`
	CurrentDateTime string               `json:"current_datetime"`
	ForecastDays    []forecastDayPayload `json:"forecast_days"`
}

type forecastDayPayload struct {
	Date                     *string  `json:"date"`
	DayOfWeek                string   `json:"day_of_week"`
	TemperatureMax           *float64 `json:"temperature_max"`
	TemperatureMin           *float64 `json:"temperature_min"`
	WeatherDescription       *string  `json:"weather_description"`
	Icon                     string   `json:"icon"`
	PrecipitationProbability *int     `json:"precipitation_probability"`
	WindSpeed                *float64 `json:"wind_speed"`
	Humidity                 *int     `json:"humidity"`
}

type problemPayload struct {
	Detail string `json:"detail"`
}

// FetchCurrentWeather calls GET /api/weather?city={city}.
func (c *Client) FetchCurrentWeather(ctx context.Context, city string) (*CurrentWeather, error) {
	const op = "fetch current weather"

	var p weatherPayload
	if err := c.get(ctx, op, "/api/weather", city, &p); err != nil {
		return nil, err
	}
	return validateWeather(op, &p, c.location)
}

// FetchForecast calls GET /api/forecast?city={city}.
func (c *Client) FetchForecast(ctx context.Context, city string) (*Forecast, error) {
	const op = "fetch forecast"

	var p forecastPayload
	if err := c.get(ctx, op, "/api/forecast", city, &p); err != nil {
		return nil, err
	}
	return validateForecast(op, &p)
}

func (c *Client) get(ctx context.Context, op, path, city string, out any) error {
	u := c.baseURL + path + "?" + url.Values{"city": {city}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode == http.StatusNotFound {
		var problem problemPayload
		if json.Unmarshal(body, &problem) == nil && problem.Detail != "" {
			return &NotFoundError{Detail: problem.Detail}
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Op: op, Reason: "invalid JSON", Err: err}
	}
	return nil
}

func validateWeather(op string, p *weatherPayload, loc *time.Location) (*CurrentWeather, error) {
	malformed := func(reason string) error {
		return &MalformedResponseError{Op: op, Reason: reason}
	}

	switch {
	case p.City == nil || *p.City == "":
		return nil, malformed("missing city")
	case p.WeatherDescription == nil:
		return nil, malformed("missing weather_description")
	case p.Timestamp == nil:
		return nil, malformed("missing timestamp")
	case p.Temperature == nil || p.FeelsLike == nil:
		return nil, malformed("missing temperature")
	case p.Humidity == nil || p.WindSpeed == nil || p.Pressure == nil:
		return nil, malformed("missing conditions")
	}

	ts, err := parseTimestamp(*p.Timestamp, loc)
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Reason: "invalid timestamp", Err: err}
	}

	w := &CurrentWeather{
		City:         *p.City,
		TemperatureC: *p.Temperature,
		FeelsLikeC:   *p.FeelsLike,
		HumidityPct:  *p.Humidity,
		WindSpeedKmh: *p.WindSpeed,
		PressureHPa:  *p.Pressure,
		VisibilityKm: p.Visibility,
		Description:  *p.WeatherDescription,
		Icon:         p.Icon,
		Timestamp:    ts,
	}
	if p.Country != nil {
		w.Country = *p.Country
	}

	if aq := p.AirQuality; aq != nil {
		switch {
		case aq.AQI == nil || *aq.AQI < 0:
			return nil, malformed("invalid air_quality.aqi")
		case aq.PM25 == nil || *aq.PM25 < 0:
			return nil, malformed("invalid air_quality.pm2_5")
		case aq.PM10 == nil || *aq.PM10 < 0:
			return nil, malformed("invalid air_quality.pm10")
		}
		w.AirQuality = &AirQuality{
			AQI:                  *aq.AQI,
			PM25:                 *aq.PM25,
			PM10:                 *aq.PM10,
			Category:             aq.Category,
			HealthRecommendation: aq.HealthRecommendation,
		}
	}

	return w, nil
}

func validateForecast(op string, p *forecastPayload) (*Forecast, error) {
	if p.ForecastDays == nil {
		return nil, &MalformedResponseError{Op: op, Reason: "missing forecast_days"}
	}

	f := &Forecast{
		City:            p.City,
		CurrentDateTime: p.CurrentDateTime,
		Days:            make([]ForecastDay, 0, len(p.ForecastDays)),
	}
	if p.Country != nil {
		f.Country = *p.Country
	}

	for i, d := range p.ForecastDays {
		if d.Date == nil || d.WeatherDescription == nil || d.TemperatureMax == nil || d.TemperatureMin == nil {
			return nil, &MalformedResponseError{Op: op, Reason: fmt.Sprintf("forecast_days[%d] is incomplete", i)}
		}
		date, err := time.Parse(time.DateOnly, *d.Date)
		if err != nil {
			return nil, &MalformedResponseError{Op: op, Reason: fmt.Sprintf("forecast_days[%d] has an invalid date", i), Err: err}
		}

		f.Days = append(f.Days, ForecastDay{
			Date:                     date,
			Description:              *d.WeatherDescription,
			TemperatureMax:           *d.TemperatureMax,
			TemperatureMin:           *d.TemperatureMin,
			DayOfWeek:                d.DayOfWeek,
			Icon:                     d.Icon,
			PrecipitationProbability: d.PrecipitationProbability,
			WindSpeed:                d.WindSpeed,
			Humidity:                 d.Humidity,
		})
	}

	return f, nil
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	var firstErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, errors.Join(firstErr, fmt.Errorf("unrecognized timestamp %q", s))
}
