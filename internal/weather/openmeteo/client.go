// Package openmeteo implements weather.Provider on top of the public
// Open-Meteo geocoding, forecast and air quality APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/weathernow/weathernow/internal/provider/resilience"
	"github.com/weathernow/weathernow/internal/telemetry"
	"github.com/weathernow/weathernow/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openmeteo"

	DefaultGeocodingURL  = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	currentFields    = "temperature_2m,relative_humidity_2m,apparent_temperature,pressure_msl,wind_speed_10m,weather_code"
	dailyFields      = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max,wind_speed_10m_max,relative_humidity_2m_mean"
	airQualityFields = "pm2_5,pm10,us_aqi"
)

// ErrMalformedResponse is returned when a 200 response does not carry the
// fields this client reads.
var ErrMalformedResponse = errors.New("malformed open-meteo response")

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// Endpoint URLs (optional, default to the public API).
	GeocodingURL  string
	ForecastURL   string
	AirQualityURL string

	// Registry receives the three upstream clients for ops health (optional).
	Registry *resilience.Registry

	// Transport overrides the HTTP transport of every upstream client (optional).
	Transport http.RoundTripper

	// Metrics records provider call outcomes (optional).
	Metrics *telemetry.ProviderMetrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo API client. Each upstream host gets its own
// resilient client so a failing air quality API cannot open the circuit
// for forecasts.
type Client struct {
	geocodingURL  string
	forecastURL   string
	airQualityURL string

	geocoding  *resilience.Client
	forecast   *resilience.Client
	airQuality *resilience.Client

	metrics *telemetry.ProviderMetrics
	logger  zerolog.Logger
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	newUpstream := func(name string) *resilience.Client {
		rc := resilience.DefaultClientConfig(name)
		rc.Registry = cfg.Registry
		rc.Transport = cfg.Transport
		rc.Logger = cfg.Logger
		return resilience.NewClient(rc)
	}

	return &Client{
		geocodingURL:  withDefault(cfg.GeocodingURL, DefaultGeocodingURL),
		forecastURL:   withDefault(cfg.ForecastURL, DefaultForecastURL),
		airQualityURL: withDefault(cfg.AirQualityURL, DefaultAirQualityURL),
		geocoding:     newUpstream(ProviderName + "-geocoding"),
		forecast:      newUpstream(ProviderName + "-forecast"),
		airQuality:    newUpstream(ProviderName + "-air-quality"),
		metrics:       cfg.Metrics,
		logger:        cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Geocode resolves a city name to its best match.
func (c *Client) Geocode(ctx context.Context, name string) (loc *weather.Location, err error) {
	defer c.observe("geocode", time.Now(), &err)

	q := url.Values{}
	q.Set("name", name)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var resp geocodingResponse
	if err := c.getJSON(ctx, c.geocoding, c.geocodingURL, q, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, weather.ErrCityNotFound
	}

	r := resp.Results[0]
	return &weather.Location{
		Name:     r.Name,
		Country:  r.Country,
		Lat:      r.Latitude,
		Lon:      r.Longitude,
		Timezone: r.Timezone,
	}, nil
}

// GetCurrentConditions fetches current conditions in the location's local time.
func (c *Client) GetCurrentConditions(ctx context.Context, loc *weather.Location) (cond *weather.Conditions, err error) {
	defer c.observe("current", time.Now(), &err)

	q := coordinates(loc)
	q.Set("current", currentFields)
	q.Set("timezone", "auto")

	var resp currentResponse
	if err := c.getJSON(ctx, c.forecast, c.forecastURL, q, &resp); err != nil {
		return nil, err
	}
	if resp.Current == nil {
		return nil, fmt.Errorf("%w: missing current block", ErrMalformedResponse)
	}

	cur := resp.Current
	return &weather.Conditions{
		Time:        cur.Time,
		Temperature: cur.Temperature,
		FeelsLike:   cur.ApparentTemp,
		Humidity:    int(math.Round(cur.RelativeHumidity)),
		WindSpeed:   cur.WindSpeed,
		Pressure:    cur.PressureMSL,
		WeatherCode: cur.WeatherCode,
	}, nil
}

// GetAirQuality fetches the current US AQI with PM2.5 and PM10 readings.
// Null readings are reported as zero.
func (c *Client) GetAirQuality(ctx context.Context, loc *weather.Location) (aq *weather.AirQualityReading, err error) {
	defer c.observe("air_quality", time.Now(), &err)

	q := coordinates(loc)
	q.Set("current", airQualityFields)
	q.Set("timezone", "auto")

	var resp airQualityResponse
	if err := c.getJSON(ctx, c.airQuality, c.airQualityURL, q, &resp); err != nil {
		return nil, err
	}
	if resp.Current == nil {
		return nil, fmt.Errorf("%w: missing current block", ErrMalformedResponse)
	}

	return &weather.AirQualityReading{
		USAQI: int(math.Round(valueOr(resp.Current.USAQI))),
		PM25:  valueOr(resp.Current.PM25),
		PM10:  valueOr(resp.Current.PM10),
	}, nil
}

// GetDailyForecast fetches a daily forecast of the given length starting today.
func (c *Client) GetDailyForecast(ctx context.Context, loc *weather.Location, days int) (daily []weather.DailyConditions, err error) {
	defer c.observe("daily", time.Now(), &err)

	q := coordinates(loc)
	q.Set("daily", dailyFields)
	q.Set("timezone", "auto")
	q.Set("forecast_days", strconv.Itoa(days))

	var resp dailyResponse
	if err := c.getJSON(ctx, c.forecast, c.forecastURL, q, &resp); err != nil {
		return nil, err
	}
	if resp.Daily == nil {
		return nil, fmt.Errorf("%w: missing daily block", ErrMalformedResponse)
	}

	d := resp.Daily
	n := len(d.Time)
	if len(d.WeatherCode) < n || len(d.TemperatureMax) < n || len(d.TemperatureMin) < n ||
		len(d.PrecipitationProbability) < n || len(d.WindSpeedMax) < n || len(d.HumidityMean) < n {
		return nil, fmt.Errorf("%w: daily arrays have mismatched lengths", ErrMalformedResponse)
	}

	daily = make([]weather.DailyConditions, 0, n)
	for i := 0; i < n; i++ {
		daily = append(daily, weather.DailyConditions{
			Date:                     d.Time[i],
			WeatherCode:              d.WeatherCode[i],
			TemperatureMax:           d.TemperatureMax[i],
			TemperatureMin:           d.TemperatureMin[i],
			PrecipitationProbability: int(math.Round(valueOr(d.PrecipitationProbability[i]))),
			WindSpeedMax:             d.WindSpeedMax[i],
			HumidityMean:             int(math.Round(valueOr(d.HumidityMean[i]))),
		})
	}

	return daily, nil
}

func (c *Client) getJSON(ctx context.Context, hc *resilience.Client, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %w", ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) observe(operation string, start time.Time, errp *error) {
	elapsed := time.Since(start)
	c.metrics.RecordRequest(operation, elapsed, *errp)
	c.logger.Debug().
		Str("provider", ProviderName).
		Str("operation", operation).
		Dur("duration", elapsed).
		Bool("error", *errp != nil).
		Msg("provider call")
}

func coordinates(loc *weather.Location) url.Values {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	return q
}

func valueOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
