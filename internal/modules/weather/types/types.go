package types

import "time"

// HourlyWindow is the number of hourly forecast entries analysed per run.
const HourlyWindow = 15

// HourlySample is one forecast data point. Timestamp is epoch seconds.
type HourlySample struct {
	Timestamp   int64   `json:"timestamp"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	WeatherCode int     `json:"weatherCode"`
}

// Time returns the sample timestamp in loc.
func (s HourlySample) Time(loc *time.Location) time.Time {
	return time.Unix(s.Timestamp, 0).In(loc)
}

type PrecipitationFlags struct {
	WillRain      bool `json:"willRain"`
	WillSnow      bool `json:"willSnow"`
	WillShower    bool `json:"willShower"`
	WillHeavyRain bool `json:"willHeavyRain"`
}

// All reports whether every flag is set.
func (f PrecipitationFlags) All() bool {
	return f.WillRain && f.WillSnow && f.WillShower && f.WillHeavyRain
}

type HumidityRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type HumidityAssessment struct {
	OptimalRange HumidityRange `json:"optimalRange"`
	Level        HumidityLevel `json:"level"`
	Advice       string        `json:"advice"`
}

type HumiditySummary struct {
	MorningAvg   float64            `json:"morningAvg"`
	AfternoonAvg float64            `json:"afternoonAvg"`
	OverallAvg   float64            `json:"overallAvg"`
	Morning      HumidityAssessment `json:"morning"`
	Afternoon    HumidityAssessment `json:"afternoon"`
}

type AirQuality struct {
	AQI   int             `json:"aqi"`
	Level AirQualityLevel `json:"level"`
}

// Advice returns the advice text for the level.
func (a AirQuality) Advice() string {
	return a.Level.Advice()
}

// DailySummary is built fresh for every run and never persisted.
type DailySummary struct {
	GeneratedAt      time.Time          `json:"generatedAt"`
	CurrentTemp      float64            `json:"currentTemp"`
	TempMax          float64            `json:"tempMax"`
	TempMin          float64            `json:"tempMin"`
	CurrentCondition Condition          `json:"currentCondition"`
	OverallCondition Condition          `json:"overallCondition"`
	Precipitation    PrecipitationFlags `json:"precipitation"`
	Humidity         HumiditySummary    `json:"humidity"`
	SeasonalAdvice   string             `json:"seasonalAdvice,omitempty"`
	AirQuality       AirQuality         `json:"airQuality"`
	Hourly           []HourlySample     `json:"hourly"`
}
