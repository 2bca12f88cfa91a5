package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weathernow/weathernow/internal/weather"
)

func TestClassifyAQI(t *testing.T) {
	tests := []struct {
		name     string
		aqi      int
		expected weather.AQIClassification
	}{
		{"zero", 0, weather.AQIClassification{Label: "Good", SeverityClass: "good", GaugePositionPct: 12}},
		{"good upper boundary", 50, weather.AQIClassification{Label: "Good", SeverityClass: "good", GaugePositionPct: 12}},
		{"moderate lower boundary", 51, weather.AQIClassification{Label: "Moderate", SeverityClass: "moderate", GaugePositionPct: 30}},
		{"moderate upper boundary", 100, weather.AQIClassification{Label: "Moderate", SeverityClass: "moderate", GaugePositionPct: 30}},
		{"sensitive lower boundary", 101, weather.AQIClassification{Label: "Unhealthy for Sensitive Groups", SeverityClass: "unhealthy", GaugePositionPct: 50}},
		{"sensitive upper boundary", 150, weather.AQIClassification{Label: "Unhealthy for Sensitive Groups", SeverityClass: "unhealthy", GaugePositionPct: 50}},
		{"unhealthy lower boundary", 151, weather.AQIClassification{Label: "Unhealthy", SeverityClass: "unhealthy", GaugePositionPct: 65}},
		{"unhealthy upper boundary", 200, weather.AQIClassification{Label: "Unhealthy", SeverityClass: "unhealthy", GaugePositionPct: 65}},
		{"very unhealthy lower boundary", 201, weather.AQIClassification{Label: "Very Unhealthy", SeverityClass: "unhealthy", GaugePositionPct: 82}},
		{"very unhealthy upper boundary", 300, weather.AQIClassification{Label: "Very Unhealthy", SeverityClass: "unhealthy", GaugePositionPct: 82}},
		{"hazardous lower boundary", 301, weather.AQIClassification{Label: "Hazardous", SeverityClass: "unhealthy", GaugePositionPct: 94}},
		{"hazardous extreme", 999, weather.AQIClassification{Label: "Hazardous", SeverityClass: "unhealthy", GaugePositionPct: 94}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, weather.ClassifyAQI(tt.aqi))
		})
	}
}

func TestClassifyAQI_GoodRange(t *testing.T) {
	for aqi := 0; aqi <= 50; aqi++ {
		assert.Equal(t, "Good", weather.ClassifyAQI(aqi).Label, "aqi %d", aqi)
	}
}

func TestHealthRecommendation(t *testing.T) {
	assert.Equal(t, "Air quality is satisfactory. Enjoy outdoor activities!", weather.HealthRecommendation(10))
	assert.Equal(t, "Everyone should avoid all outdoor activities.", weather.HealthRecommendation(450))
	assert.NotEqual(t, weather.HealthRecommendation(150), weather.HealthRecommendation(151))
}

func TestClassifyAirQuality(t *testing.T) {
	aq := weather.ClassifyAirQuality(weather.AirQualityReading{USAQI: 72, PM25: 21.349, PM10: 40.06})

	assert.Equal(t, 72, aq.AQI)
	assert.Equal(t, "Moderate", aq.Category)
	assert.Equal(t, 21.3, aq.PM25)
	assert.Equal(t, 40.1, aq.PM10)
	assert.NotEmpty(t, aq.HealthRecommendation)
}
