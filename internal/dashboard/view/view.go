// Package view renders dashboard state. Components are pure: they take
// mapped view models and render nothing when their data is absent.
package view

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/weathernow/weathernow/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageData is everything the page template needs.
type PageData struct {
	Query      string
	Loading    bool
	Error      string
	Idle       bool
	Weather    *dashboard.DisplayWeather
	Forecast   []dashboard.DisplayForecastDay
	Background BackgroundData
	Year       int
}

// Renderer builds page data from orchestrator state.
type Renderer struct {
	mapper   *dashboard.Mapper
	selector *ModeSelector
	now      func() time.Time
}

// NewRenderer creates a Renderer that formats dates with mapper.
func NewRenderer(mapper *dashboard.Mapper) *Renderer {
	return &Renderer{
		mapper:   mapper,
		selector: &ModeSelector{},
		now:      time.Now,
	}
}

// PageData maps s into the page view model. Results are only mapped in the
// success branch, so loading and failure pages never show stale data.
func (r *Renderer) PageData(s dashboard.State) PageData {
	phase := s.Phase()
	data := PageData{
		Query:   s.Query,
		Loading: phase == dashboard.PhaseLoading,
		Error:   s.Error,
		Idle:    phase == dashboard.PhaseIdle,
		Year:    r.now().Year(),
	}

	var current *dashboard.CurrentWeather
	if phase == dashboard.PhaseSuccess {
		current = s.Weather
		dw := r.mapper.CurrentWeather(*s.Weather)
		data.Weather = &dw
		if s.Forecast != nil {
			data.Forecast = r.mapper.Forecast(*s.Forecast)
		}
	}
	data.Background = NewBackground(r.selector.Mode(current))

	return data
}

// Page renders the full dashboard document for s.
func (r *Renderer) Page(w io.Writer, s dashboard.State) error {
	return templates.ExecuteTemplate(w, "page", r.PageData(s))
}

// CurrentConditions renders the current weather card.
func CurrentConditions(w io.Writer, d *dashboard.DisplayWeather) error {
	return templates.ExecuteTemplate(w, "current", d)
}

// AQIGauge renders the air quality gauge.
func AQIGauge(w io.Writer, d *dashboard.DisplayAirQuality) error {
	return templates.ExecuteTemplate(w, "aqi", d)
}

// ForecastList renders the forecast card.
func ForecastList(w io.Writer, days []dashboard.DisplayForecastDay) error {
	return templates.ExecuteTemplate(w, "forecast", days)
}

// Background renders the ambient background layer.
func Background(w io.Writer, b BackgroundData) error {
	return templates.ExecuteTemplate(w, "background", b)
}
