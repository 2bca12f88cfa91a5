package dashboard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathernow/weathernow/internal/dashboard"
)

const mumbaiWeatherJSON = `{
	"city": "Mumbai",
	"country": "India",
	"temperature": 31.3,
	"feels_like": 34,
	"humidity": 62,
	"wind_speed": 11.5,
	"pressure": 1009.9,
	"weather_description": "Partly cloudy",
	"icon": "⛅",
	"visibility": null,
	"timestamp": "2025-01-10T14:30",
	"air_quality": {"aqi": 153, "category": "Unhealthy", "pm2_5": 58.3, "pm10": 97.1, "health_recommendation": "Everyone should reduce prolonged or heavy outdoor activities."}
}`

const mumbaiForecastJSON = `{
	"city": "Mumbai",
	"country": "India",
	"current_datetime": "2025-01-10T09:00:00Z",
	"forecast_days": [
		{"date": "2025-01-11", "day_of_week": "Saturday", "temperature_max": 30, "temperature_min": 21, "weather_description": "Slight rain", "icon": "🌧️", "precipitation_probability": 70, "wind_speed": 14.4, "humidity": 71},
		{"date": "2025-01-12", "day_of_week": "Sunday", "temperature_max": 29, "temperature_min": 20, "weather_description": "Overcast", "icon": "☁️", "precipitation_probability": 10, "wind_speed": 9.1, "humidity": 60}
	]
}`

func newBackend(t *testing.T, handler http.HandlerFunc) *dashboard.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return dashboard.NewClient(dashboard.ClientConfig{
		BaseURL:  srv.URL,
		Timeout:  2 * time.Second,
		Location: time.UTC,
	})
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestClient_FetchCurrentWeather(t *testing.T) {
	var gotPath, gotCity string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCity = r.URL.Query().Get("city")
		respond(http.StatusOK, mumbaiWeatherJSON)(w, r)
	})

	cw, err := client.FetchCurrentWeather(context.Background(), "New York")
	require.NoError(t, err)

	assert.Equal(t, "/api/weather", gotPath)
	assert.Equal(t, "New York", gotCity)
	assert.Equal(t, "Mumbai", cw.City)
	assert.Equal(t, "India", cw.Country)
	assert.Equal(t, 31.3, cw.TemperatureC)
	assert.Equal(t, 62.0, cw.HumidityPct)
	assert.Nil(t, cw.VisibilityKm)
	assert.Equal(t, time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC), cw.Timestamp)
	require.NotNil(t, cw.AirQuality)
	assert.Equal(t, 153, cw.AirQuality.AQI)
	assert.Equal(t, 58.3, cw.AirQuality.PM25)
}

func TestClient_FetchCurrentWeather_CountryNullOrEmpty(t *testing.T) {
	for _, country := range []string{`null`, `""`} {
		t.Run(country, func(t *testing.T) {
			client := newBackend(t, respond(http.StatusOK, `{"city":"Nowhere","country":`+country+`,"temperature":1,"feels_like":1,"humidity":1,"wind_speed":1,"pressure":1000,"weather_description":"Clear sky","timestamp":"2025-01-10T14:30:00Z","air_quality":null}`))

			cw, err := client.FetchCurrentWeather(context.Background(), "Nowhere")
			require.NoError(t, err)
			assert.Empty(t, cw.Country)
			assert.Nil(t, cw.AirQuality)
		})
	}
}

func TestClient_FetchForecast(t *testing.T) {
	client := newBackend(t, respond(http.StatusOK, mumbaiForecastJSON))

	fc, err := client.FetchForecast(context.Background(), "Mumbai")
	require.NoError(t, err)

	require.Len(t, fc.Days, 2)
	assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), fc.Days[0].Date)
	assert.Equal(t, "Slight rain", fc.Days[0].Description)
	assert.Equal(t, 30.0, fc.Days[0].TemperatureMax)
	require.NotNil(t, fc.Days[0].PrecipitationProbability)
	assert.Equal(t, 70, *fc.Days[0].PrecipitationProbability)
	assert.Equal(t, "Overcast", fc.Days[1].Description)
}

func TestClient_NotFoundWithDetail(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"type":"https://weathernow.dev/problems/not-found","title":"Not found","status":404,"detail":"City 'Atlantis' not found"}`))
	})

	_, err := client.FetchCurrentWeather(context.Background(), "Atlantis")

	var nf *dashboard.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "City 'Atlantis' not found", nf.Detail)
	assert.Equal(t, "City 'Atlantis' not found", dashboard.ErrorMessage(err))
}

func TestClient_TransportFailures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{"404 without detail", respond(http.StatusNotFound, `not json`), http.StatusNotFound},
		{"404 with empty detail", respond(http.StatusNotFound, `{"detail":""}`), http.StatusNotFound},
		{"server error", respond(http.StatusInternalServerError, `{"detail":"Failed to fetch weather data"}`), http.StatusInternalServerError},
		{"unavailable", respond(http.StatusServiceUnavailable, ``), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newBackend(t, tt.handler)

			_, err := client.FetchCurrentWeather(context.Background(), "Mumbai")

			var te *dashboard.TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.wantStatus, te.StatusCode)
			assert.Equal(t, dashboard.GenericErrorMessage, dashboard.ErrorMessage(err))
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := dashboard.NewClient(dashboard.ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := client.FetchForecast(context.Background(), "Mumbai")

	var te *dashboard.TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.StatusCode)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := dashboard.NewClient(dashboard.ClientConfig{BaseURL: url})
	_, err := client.FetchCurrentWeather(context.Background(), "Mumbai")

	var te *dashboard.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestClient_MalformedPayloads(t *testing.T) {
	tests := []struct {
		name  string
		fetch func(*dashboard.Client) error
		body  string
	}{
		{"invalid json", fetchWeather, `{"city":`},
		{"missing city", fetchWeather, `{"weather_description":"Clear sky","timestamp":"2025-01-10T14:30","temperature":1,"feels_like":1,"humidity":1,"wind_speed":1,"pressure":1}`},
		{"missing description", fetchWeather, `{"city":"X","timestamp":"2025-01-10T14:30","temperature":1,"feels_like":1,"humidity":1,"wind_speed":1,"pressure":1}`},
		{"missing timestamp", fetchWeather, `{"city":"X","weather_description":"Clear sky","temperature":1,"feels_like":1,"humidity":1,"wind_speed":1,"pressure":1}`},
		{"bad timestamp", fetchWeather, `{"city":"X","weather_description":"Clear sky","timestamp":"yesterday","temperature":1,"feels_like":1,"humidity":1,"wind_speed":1,"pressure":1}`},
		{"missing temperature", fetchWeather, `{"city":"X","weather_description":"Clear sky","timestamp":"2025-01-10T14:30","humidity":1,"wind_speed":1,"pressure":1}`},
		{"negative aqi", fetchWeather, `{"city":"X","weather_description":"Clear sky","timestamp":"2025-01-10T14:30","temperature":1,"feels_like":1,"humidity":1,"wind_speed":1,"pressure":1,"air_quality":{"aqi":-1,"pm2_5":1,"pm10":1}}`},
		{"negative pm", fetchWeather, `{"city":"X","weather_description":"Clear sky","timestamp":"2025-01-10T14:30","temperature":1,"feels_like":1,"humidity":1,"wind_speed":1,"pressure":1,"air_quality":{"aqi":10,"pm2_5":-0.5,"pm10":1}}`},
		{"missing forecast_days", fetchForecast, `{"city":"X"}`},
		{"incomplete day", fetchForecast, `{"forecast_days":[{"date":"2025-01-11","temperature_max":1}]}`},
		{"bad date", fetchForecast, `{"forecast_days":[{"date":"11/01/2025","temperature_max":1,"temperature_min":0,"weather_description":"Clear sky"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newBackend(t, respond(http.StatusOK, tt.body))

			err := tt.fetch(client)

			var me *dashboard.MalformedResponseError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, dashboard.GenericErrorMessage, dashboard.ErrorMessage(err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "City not found", dashboard.ErrorMessage(&dashboard.NotFoundError{Detail: "City not found"}))
	assert.Equal(t, dashboard.GenericErrorMessage, dashboard.ErrorMessage(&dashboard.NotFoundError{}))
	assert.Equal(t, dashboard.GenericErrorMessage, dashboard.ErrorMessage(errors.New("boom")))
	assert.Equal(t, dashboard.GenericErrorMessage, dashboard.ErrorMessage(context.DeadlineExceeded))
}

func fetchWeather(c *dashboard.Client) error {
	_, err := c.FetchCurrentWeather(context.Background(), "X")
	return err
}

func fetchForecast(c *dashboard.Client) error {
	_, err := c.FetchForecast(context.Background(), "X")
	return err
}
