package openmeteo

// Open-Meteo API response structures. Numeric fields that the API may
// report as null are pointers or nullable slices.

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

type currentResponse struct {
	Timezone string `json:"timezone"`
	Current  *struct {
		Time             string  `json:"time"`
		Temperature      float64 `json:"temperature_2m"`
		RelativeHumidity float64 `json:"relative_humidity_2m"`
		ApparentTemp     float64 `json:"apparent_temperature"`
		PressureMSL      float64 `json:"pressure_msl"`
		WindSpeed        float64 `json:"wind_speed_10m"`
		WeatherCode      int     `json:"weather_code"`
	} `json:"current"`
}

type dailyResponse struct {
	Daily *struct {
		Time                     []string   `json:"time"`
		WeatherCode              []int      `json:"weather_code"`
		TemperatureMax           []float64  `json:"temperature_2m_max"`
		TemperatureMin           []float64  `json:"temperature_2m_min"`
		PrecipitationProbability []*float64 `json:"precipitation_probability_max"`
		WindSpeedMax             []float64  `json:"wind_speed_10m_max"`
		HumidityMean             []*float64 `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

type airQualityResponse struct {
	Current *struct {
		USAQI *float64 `json:"us_aqi"`
		PM25  *float64 `json:"pm2_5"`
		PM10  *float64 `json:"pm10"`
	} `json:"current"`
}
