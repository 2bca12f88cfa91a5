package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("city")
		if city != "Mumbai" {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"status":404,"detail":"City '`+city+`' not found"}`)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/weather":
			_, _ = io.WriteString(w, `{"city":"Mumbai","country":"India","temperature":31.3,"feels_like":34,"humidity":62,"wind_speed":11.5,"pressure":1009.9,"weather_description":"Partly cloudy","icon":"⛅","visibility":null,"timestamp":"2025-01-10T14:30","air_quality":{"aqi":72,"category":"Moderate","pm2_5":21.3,"pm10":40.1,"health_recommendation":"Air quality is acceptable."}}`)
		case "/api/forecast":
			_, _ = io.WriteString(w, `{"city":"Mumbai","country":"India","current_datetime":"2025-01-10T09:00:00Z","forecast_days":[{"date":"2025-01-11","day_of_week":"Saturday","temperature_max":30,"temperature_min":21,"weather_description":"Slight rain","icon":"🌧️","precipitation_probability":70,"wind_speed":14.4,"humidity":71}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGet_Text(t *testing.T) {
	srv := fakeAPI(t)

	out, _, err := run(t, "", "get", "Mumbai", "--api-url", srv.URL, "--timezone", "UTC")
	require.NoError(t, err)

	assert.Contains(t, out, "CURRENT WEATHER - Mumbai")
	assert.Contains(t, out, "Friday, January 10, 2025 • 14:30")
	assert.Contains(t, out, "🟡 AQI:           72 (Moderate)")
	assert.Contains(t, out, "1-DAY WEATHER FORECAST")
	assert.Contains(t, out, "High chance of rain")
}

func TestGet_JSON(t *testing.T) {
	srv := fakeAPI(t)

	out, _, err := run(t, "", "get", "Mumbai", "-o", "json", "--api-url", srv.URL, "--timezone", "UTC")
	require.NoError(t, err)

	var body struct {
		Weather  map[string]json.RawMessage `json:"weather"`
		Forecast struct {
			City string                       `json:"city"`
			Days []map[string]json.RawMessage `json:"forecast_days"`
		} `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))

	// Field names follow the API payloads.
	assert.JSONEq(t, `"Mumbai"`, string(body.Weather["city"]))
	assert.JSONEq(t, `31.3`, string(body.Weather["temperature"]))
	assert.JSONEq(t, `34`, string(body.Weather["feels_like"]))
	assert.JSONEq(t, `"Partly cloudy"`, string(body.Weather["weather_description"]))
	assert.JSONEq(t, `null`, string(body.Weather["visibility"]))
	assert.JSONEq(t, `"2025-01-10T14:30:00Z"`, string(body.Weather["timestamp"]))
	assert.NotContains(t, body.Weather, "temperature_c")

	assert.Equal(t, "Mumbai", body.Forecast.City)
	require.Len(t, body.Forecast.Days, 1)
	assert.JSONEq(t, `"Slight rain"`, string(body.Forecast.Days[0]["weather_description"]))
	assert.JSONEq(t, `30`, string(body.Forecast.Days[0]["temperature_max"]))
}

func TestGet_NotFound(t *testing.T) {
	srv := fakeAPI(t)

	out, errOut, err := run(t, "", "get", "Atlantis", "--api-url", srv.URL)

	assert.ErrorIs(t, err, errLookupFailed)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "City 'Atlantis' not found")
}

func TestGet_JoinsArguments(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("city")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, errOut, err := run(t, "", "get", "New", "York", "--api-url", srv.URL)

	assert.Error(t, err)
	assert.Equal(t, "New York", got)
	assert.Contains(t, errOut, "Could not fetch weather data. Please try again.")
}

func TestGet_RejectsUnknownFormat(t *testing.T) {
	_, _, err := run(t, "", "get", "Mumbai", "-o", "yaml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestDashboard_Session(t *testing.T) {
	srv := fakeAPI(t)

	out, _, err := run(t, "Mumbai\n\n   \nAtlantis\nquit\nOslo\n", "dashboard", "--api-url", srv.URL, "--timezone", "UTC")
	require.NoError(t, err)

	assert.Contains(t, out, "Type a city name")
	assert.Contains(t, out, "Fetching weather data and forecast for 'Mumbai'")
	assert.Contains(t, out, "CURRENT WEATHER - Mumbai")
	assert.Contains(t, out, "❌ City 'Atlantis' not found")
	assert.NotContains(t, out, "Oslo")
	assert.Less(t, strings.Index(out, "CURRENT WEATHER - Mumbai"), strings.Index(out, "Atlantis"))
}
