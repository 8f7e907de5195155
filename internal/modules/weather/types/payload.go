package types

// Upstream payload shapes. Every leaf is a pointer so a missing field can be told
// apart from a zero value; defaults are substituted by the analysis package.

type WeatherRef struct {
	ID *int `json:"id"`
}

type CurrentWeather struct {
	Temp    *float64     `json:"temp"`
	Weather []WeatherRef `json:"weather"`
}

type HourlyEntry struct {
	Dt       *int64       `json:"dt"`
	Temp     *float64     `json:"temp"`
	Humidity *float64     `json:"humidity"`
	Weather  []WeatherRef `json:"weather"`
}

type DailyTemp struct {
	Max *float64 `json:"max"`
	Min *float64 `json:"min"`
}

type DailyEntry struct {
	Temp *DailyTemp `json:"temp"`
}

// WeatherPayload is the subset of the One Call response the service consumes.
type WeatherPayload struct {
	Current *CurrentWeather `json:"current"`
	Hourly  []HourlyEntry   `json:"hourly"`
	Daily   []DailyEntry    `json:"daily"`
}

// IsEmpty reports whether p carries no weather data at all.
func (p *WeatherPayload) IsEmpty() bool {
	return p == nil || (p.Current == nil && len(p.Hourly) == 0 && len(p.Daily) == 0)
}

type AirQualityMain struct {
	AQI *int `json:"aqi"`
}

type AirQualityEntry struct {
	Main *AirQualityMain `json:"main"`
}

// AirQualityPayload is the air pollution response.
type AirQualityPayload struct {
	List []AirQualityEntry `json:"list"`
}
