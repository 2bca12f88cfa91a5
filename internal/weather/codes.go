package weather

import "math"

// CodeInfo is the human description and icon for a WMO weather code.
type CodeInfo struct {
	Description string
	Icon        string
}

var unknownCode = CodeInfo{Description: "Unknown", Icon: "🌡️"}

// wmoCodes maps WMO weather interpretation codes as reported by Open-Meteo.
var wmoCodes = map[int]CodeInfo{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Foggy", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌧️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "⛈️"},
	71: {"Slight snow", "🌨️"},
	73: {"Moderate snow", "🌨️"},
	75: {"Heavy snow", "❄️"},
	77: {"Snow grains", "🌨️"},
	80: {"Slight rain showers", "🌦️"},
	81: {"Moderate rain showers", "🌧️"},
	82: {"Violent rain showers", "⛈️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// LookupCode returns the description and icon for a WMO code.
func LookupCode(code int) CodeInfo {
	if info, ok := wmoCodes[code]; ok {
		return info
	}
	return unknownCode
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
