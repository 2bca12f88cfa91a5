package weather

import "strings"

// VisualMode selects the ambient background animation for the dashboard.
type VisualMode string

const (
	VisualModeDefault VisualMode = "default"
	VisualModeSunny   VisualMode = "sunny"
	VisualModeCloudy  VisualMode = "cloudy"
	VisualModeRainy   VisualMode = "rainy"
	VisualModeSnowy   VisualMode = "snowy"
)

// visualRules are checked in order; precipitation wins over sky cover.
var visualRules = []struct {
	mode     VisualMode
	keywords []string
}{
	{VisualModeRainy, []string{"rain", "drizzle", "thunder"}},
	{VisualModeSnowy, []string{"snow", "sleet", "blizzard"}},
	{VisualModeSunny, []string{"clear", "sun"}},
	{VisualModeCloudy, []string{"cloud", "overcast"}},
}

// ClassifyDescription maps a free-text weather description to a visual mode.
// Descriptions that match nothing, including the empty string, are sunny.
func ClassifyDescription(description string) VisualMode {
	desc := strings.ToLower(description)
	for _, rule := range visualRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.mode
			}
		}
	}
	return VisualModeSunny
}

// ClassifyVisualMode is ClassifyDescription for an optional description.
// A nil description means there is no weather data and yields VisualModeDefault.
func ClassifyVisualMode(description *string) VisualMode {
	if description == nil {
		return VisualModeDefault
	}
	return ClassifyDescription(*description)
}

// Icon returns the emoji used for a visual mode in forecast lists.
func (m VisualMode) Icon() string {
	switch m {
	case VisualModeRainy:
		return "🌧️"
	case VisualModeSnowy:
		return "🌨️"
	case VisualModeCloudy:
		return "☁️"
	case VisualModeSunny:
		return "☀️"
	default:
		return "🌡️"
	}
}
