package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/weathernow/weathernow/internal/dashboard"
	"github.com/weathernow/weathernow/internal/weather"
)

const ruleWidth = 70

// aqiMarkers color the AQI line by category label.
var aqiMarkers = map[string]string{
	"Good":                           "🟢",
	"Moderate":                       "🟡",
	"Unhealthy for Sensitive Groups": "🟠",
	"Unhealthy":                      "🔴",
	"Very Unhealthy":                 "🟣",
	"Hazardous":                      "🟤",
}

// TextRenderer renders dashboard state for a terminal.
type TextRenderer struct {
	mapper   *dashboard.Mapper
	selector *ModeSelector
}

// NewTextRenderer creates a TextRenderer that formats dates with mapper.
func NewTextRenderer(mapper *dashboard.Mapper) *TextRenderer {
	return &TextRenderer{mapper: mapper, selector: &ModeSelector{}}
}

// Render writes the branch of s that is active: a hint when idle, a progress
// line while loading, the error message on failure, or the full report.
func (r *TextRenderer) Render(w io.Writer, s dashboard.State) error {
	var b strings.Builder

	switch s.Phase() {
	case dashboard.PhaseIdle:
		b.WriteString("Type a city name to see the current weather and forecast.\n")
	case dashboard.PhaseLoading:
		fmt.Fprintf(&b, "🔍 Fetching weather data and forecast for '%s'...\n", s.Query)
	case dashboard.PhaseFailure:
		fmt.Fprintf(&b, "❌ %s\n", s.Error)
	case dashboard.PhaseSuccess:
		mode := r.selector.Mode(s.Weather)
		r.writeCurrent(&b, r.mapper.CurrentWeather(*s.Weather), mode)
		if s.Forecast != nil {
			r.writeForecast(&b, r.mapper.Forecast(*s.Forecast))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *TextRenderer) writeCurrent(b *strings.Builder, d dashboard.DisplayWeather, mode weather.VisualMode) {
	rule := strings.Repeat("=", ruleWidth)

	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "  %s  CURRENT WEATHER - %s\n", d.Icon, d.City)
	if d.Country != "" {
		fmt.Fprintf(b, "      %s\n", d.Country)
	}
	b.WriteString(rule + "\n")
	fmt.Fprintf(b, "  %s • %s   [%s]\n\n", d.Date, d.Time, mode)
	fmt.Fprintf(b, "  Temperature:   %s°C\n", d.Temperature)
	fmt.Fprintf(b, "  Feels Like:    %s°C\n", d.FeelsLike)
	fmt.Fprintf(b, "  Conditions:    %s\n", d.Description)
	fmt.Fprintf(b, "  Humidity:      %s\n", d.Humidity)
	fmt.Fprintf(b, "  Wind Speed:    %s\n", d.WindSpeed)
	fmt.Fprintf(b, "  Pressure:      %s\n", d.Pressure)
	fmt.Fprintf(b, "  Visibility:    %s\n", d.Visibility)

	if aq := d.AirQuality; aq != nil {
		marker, ok := aqiMarkers[aq.Category]
		if !ok {
			marker = "⚪"
		}
		b.WriteString("\n  Air Quality Index (AQI):\n")
		fmt.Fprintf(b, "    %s AQI:           %d (%s)\n", marker, aq.AQI, aq.Category)
		fmt.Fprintf(b, "    %s\n", gauge(aq.GaugePositionPct))
		fmt.Fprintf(b, "    PM2.5:          %s\n", aq.PM25)
		fmt.Fprintf(b, "    PM10:           %s\n", aq.PM10)
		fmt.Fprintf(b, "    Recommendation: %s\n", aq.HealthRecommendation)
	}
	b.WriteString(rule + "\n")
}

func (r *TextRenderer) writeForecast(b *strings.Builder, days []dashboard.DisplayForecastDay) {
	if len(days) == 0 {
		return
	}

	rule := strings.Repeat("=", ruleWidth)
	sep := "  " + strings.Repeat("-", ruleWidth-4)

	fmt.Fprintf(b, "  📅  %d-DAY WEATHER FORECAST\n", len(days))
	b.WriteString(rule + "\n")
	for _, d := range days {
		b.WriteString(sep + "\n")
		fmt.Fprintf(b, "  %s  %s, %s\n", d.Icon, d.Weekday, d.DateLabel)
		b.WriteString(sep + "\n")
		fmt.Fprintf(b, "    Temperature:  High %s°C / Low %s°C\n", d.TemperatureMax, d.TemperatureMin)
		fmt.Fprintf(b, "    Conditions:   %s\n", d.Description)
		if d.Wind != "" {
			fmt.Fprintf(b, "    Wind Speed:   %s\n", d.Wind)
		}
		if d.Precipitation != "" {
			fmt.Fprintf(b, "    Rain Chance:  %s\n", d.Precipitation)
		}
		if len(d.Alerts) > 0 {
			fmt.Fprintf(b, "    Alerts:       %s\n", strings.Join(d.Alerts, ", "))
		}
	}
	b.WriteString(rule + "\n")
}

// gauge draws a 50 column AQI scale with a marker at pct.
func gauge(pct int) string {
	const width = 50
	pos := pct * width / 100
	if pos >= width {
		pos = width - 1
	}
	return "[" + strings.Repeat("-", pos) + "▲" + strings.Repeat("-", width-pos-1) + "]"
}

// RenderText renders s once with a fresh TextRenderer.
func RenderText(w io.Writer, s dashboard.State, mapper *dashboard.Mapper) error {
	return NewTextRenderer(mapper).Render(w, s)
}
