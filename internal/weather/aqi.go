package weather

// AQIClassification describes where a US AQI value falls on the display scale.
type AQIClassification struct {
	Label            string
	SeverityClass    string
	GaugePositionPct int
}

// Severity classes used for styling the AQI gauge.
const (
	SeverityGood      = "good"
	SeverityModerate  = "moderate"
	SeverityUnhealthy = "unhealthy"
)

type aqiBand struct {
	upper          int // inclusive; the last band has no upper bound
	classification AQIClassification
	recommendation string
}

// aqiBands are evaluated in ascending order, first match wins.
var aqiBands = []aqiBand{
	{
		upper:          50,
		classification: AQIClassification{Label: "Good", SeverityClass: SeverityGood, GaugePositionPct: 12},
		recommendation: "Air quality is satisfactory. Enjoy outdoor activities!",
	},
	{
		upper:          100,
		classification: AQIClassification{Label: "Moderate", SeverityClass: SeverityModerate, GaugePositionPct: 30},
		recommendation: "Air quality is acceptable. Sensitive individuals should consider reducing prolonged outdoor activities.",
	},
	{
		upper:          150,
		classification: AQIClassification{Label: "Unhealthy for Sensitive Groups", SeverityClass: SeverityUnhealthy, GaugePositionPct: 50},
		recommendation: "Sensitive groups should reduce prolonged or heavy outdoor activities.",
	},
	{
		upper:          200,
		classification: AQIClassification{Label: "Unhealthy", SeverityClass: SeverityUnhealthy, GaugePositionPct: 65},
		recommendation: "Everyone should reduce prolonged or heavy outdoor activities.",
	},
	{
		upper:          300,
		classification: AQIClassification{Label: "Very Unhealthy", SeverityClass: SeverityUnhealthy, GaugePositionPct: 82},
		recommendation: "Everyone should avoid prolonged outdoor activities.",
	},
}

var hazardousBand = aqiBand{
	classification: AQIClassification{Label: "Hazardous", SeverityClass: SeverityUnhealthy, GaugePositionPct: 94},
	recommendation: "Everyone should avoid all outdoor activities.",
}

func bandFor(aqi int) aqiBand {
	for _, b := range aqiBands {
		if aqi <= b.upper {
			return b
		}
	}
	return hazardousBand
}

// ClassifyAQI maps a US AQI value to its label, severity class and gauge position.
// Negative values are not expected here; payload validation rejects them.
func ClassifyAQI(aqi int) AQIClassification {
	return bandFor(aqi).classification
}

// HealthRecommendation returns the advice shown alongside an AQI value.
func HealthRecommendation(aqi int) string {
	return bandFor(aqi).recommendation
}

// ClassifyAirQuality builds a classified AirQuality from a raw reading.
func ClassifyAirQuality(r AirQualityReading) *AirQuality {
	return &AirQuality{
		AQI:                  r.USAQI,
		Category:             ClassifyAQI(r.USAQI).Label,
		PM25:                 round1(r.PM25),
		PM10:                 round1(r.PM10),
		HealthRecommendation: HealthRecommendation(r.USAQI),
	}
}
