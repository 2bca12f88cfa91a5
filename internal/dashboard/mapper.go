package dashboard

import (
	"strconv"
	"strings"
	"time"

	"github.com/weathernow/weathernow/internal/weather"
)

// Display formats.
const (
	LongDateLayout  = "Monday, January 2, 2006"
	ShortTimeLayout = "15:04"
	DayDateLayout   = "January 2, 2006"
	NotAvailable    = "N/A"
)

// Forecast alert thresholds.
const (
	rainAlertPct    = 60
	windAlertKmh    = 30
	rainAlertText   = "High chance of rain"
	windAlertText   = "Windy conditions expected"
	clearSkyText    = "Sunny day ahead"
	clearSkyKeyword = "clear"
)

// DisplayWeather is the view model for the current conditions card.
type DisplayWeather struct {
	City        string
	Country     string
	Temperature string
	FeelsLike   string
	Humidity    string
	WindSpeed   string
	Pressure    string
	Visibility  string
	Description string
	Icon        string
	Date        string
	Time        string
	Mode        weather.VisualMode
	AirQuality  *DisplayAirQuality
}

// DisplayAirQuality is the view model for the AQI gauge.
type DisplayAirQuality struct {
	AQI                  int
	Category             string
	SeverityClass        string
	GaugePositionPct     int
	PM25                 string
	PM10                 string
	HealthRecommendation string
}

// DisplayForecastDay is the view model for one forecast row.
type DisplayForecastDay struct {
	Weekday        string
	DateLabel      string
	Description    string
	Icon           string
	TemperatureMax string
	TemperatureMin string
	Precipitation  string
	Wind           string
	Alerts         []string
}

// Mapper turns validated payloads into display strings. Dates and times are
// rendered in Location.
type Mapper struct {
	Location *time.Location
}

// NewMapper creates a Mapper for loc, or time.Local when loc is nil.
func NewMapper(loc *time.Location) *Mapper {
	if loc == nil {
		loc = time.Local
	}
	return &Mapper{Location: loc}
}

// CurrentWeather maps a current weather payload.
func (m *Mapper) CurrentWeather(w CurrentWeather) DisplayWeather {
	ts := w.Timestamp.In(m.location())

	d := DisplayWeather{
		City:        w.City,
		Country:     w.Country,
		Temperature: formatNumber(w.TemperatureC),
		FeelsLike:   formatNumber(w.FeelsLikeC),
		Humidity:    formatNumber(w.HumidityPct) + "%",
		WindSpeed:   formatNumber(w.WindSpeedKmh) + " km/h",
		Pressure:    formatNumber(w.PressureHPa) + " hPa",
		Visibility:  NotAvailable,
		Description: w.Description,
		Icon:        w.Icon,
		Date:        ts.Format(LongDateLayout),
		Time:        ts.Format(ShortTimeLayout),
		Mode:        weather.ClassifyDescription(w.Description),
	}
	if w.VisibilityKm != nil && *w.VisibilityKm != 0 {
		d.Visibility = formatNumber(*w.VisibilityKm) + " km"
	}
	if d.Icon == "" {
		d.Icon = d.Mode.Icon()
	}
	if w.AirQuality != nil {
		aq := m.AirQuality(*w.AirQuality)
		d.AirQuality = &aq
	}
	return d
}

// AirQuality maps an air quality block. A missing category falls back to
// the classifier label.
func (m *Mapper) AirQuality(aq AirQuality) DisplayAirQuality {
	c := weather.ClassifyAQI(aq.AQI)

	category := aq.Category
	if category == "" {
		category = c.Label
	}
	recommendation := aq.HealthRecommendation
	if recommendation == "" {
		recommendation = weather.HealthRecommendation(aq.AQI)
	}

	return DisplayAirQuality{
		AQI:                  aq.AQI,
		Category:             category,
		SeverityClass:        c.SeverityClass,
		GaugePositionPct:     c.GaugePositionPct,
		PM25:                 formatNumber(aq.PM25) + " μg/m³",
		PM10:                 formatNumber(aq.PM10) + " μg/m³",
		HealthRecommendation: recommendation,
	}
}

// ForecastDay maps one forecast entry. The icon comes from the same
// classifier as the background so the two never disagree.
func (m *Mapper) ForecastDay(d ForecastDay) DisplayForecastDay {
	out := DisplayForecastDay{
		Weekday:        d.Date.Weekday().String(),
		DateLabel:      d.Date.Format(DayDateLayout),
		Description:    d.Description,
		Icon:           weather.ClassifyDescription(d.Description).Icon(),
		TemperatureMax: formatNumber(d.TemperatureMax),
		TemperatureMin: formatNumber(d.TemperatureMin),
	}
	if d.PrecipitationProbability != nil {
		out.Precipitation = strconv.Itoa(*d.PrecipitationProbability) + "%"
		if *d.PrecipitationProbability > rainAlertPct {
			out.Alerts = append(out.Alerts, rainAlertText)
		}
	}
	if d.WindSpeed != nil {
		out.Wind = formatNumber(*d.WindSpeed) + " km/h"
		if *d.WindSpeed > windAlertKmh {
			out.Alerts = append(out.Alerts, windAlertText)
		}
	}
	if strings.Contains(strings.ToLower(d.Description), clearSkyKeyword) {
		out.Alerts = append(out.Alerts, clearSkyText)
	}
	return out
}

// Forecast maps every day, keeping order.
func (m *Mapper) Forecast(f Forecast) []DisplayForecastDay {
	days := make([]DisplayForecastDay, 0, len(f.Days))
	for _, d := range f.Days {
		days = append(days, m.ForecastDay(d))
	}
	return days
}

func (m *Mapper) location() *time.Location {
	if m == nil || m.Location == nil {
		return time.Local
	}
	return m.Location
}

// formatNumber prints v without rounding or trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
