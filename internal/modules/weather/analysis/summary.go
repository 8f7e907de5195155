package analysis

import (
	"errors"
	"math"
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

// ErrMissingWeatherData is returned by BuildSummary when there is no weather payload.
var ErrMissingWeatherData = errors.New("missing weather data")

// BuildSummary derives the DailySummary from the upstream payloads. now supplies the
// calendar month and the location used for hour-of-day.
//
// Parsing is lenient: absent fields fall back to code 800, temperature 0 and humidity 0.
// A nil or malformed air-quality payload degrades to AirQualityUnknown.
func BuildSummary(weather *types.WeatherPayload, air *types.AirQualityPayload, now time.Time) (types.DailySummary, error) {
	if weather.IsEmpty() {
		return types.DailySummary{}, ErrMissingWeatherData
	}

	loc := now.Location()
	month := now.Month()
	samples := SamplesFromPayload(weather)

	var currentTemp float64
	currentCode := ClearCode
	if c := weather.Current; c != nil {
		currentTemp = deref(c.Temp, 0)
		currentCode = firstCode(c.Weather)
	}

	var tempMax, tempMin float64
	if len(weather.Daily) > 0 && weather.Daily[0].Temp != nil {
		tempMax = deref(weather.Daily[0].Temp.Max, 0)
		tempMin = deref(weather.Daily[0].Temp.Min, 0)
	}

	return types.DailySummary{
		GeneratedAt:      now,
		CurrentTemp:      currentTemp,
		TempMax:          tempMax,
		TempMin:          tempMin,
		CurrentCondition: ClassifyCode(currentCode),
		OverallCondition: DominantCondition(samples),
		Precipitation:    AnalyzePrecipitation(samples),
		Humidity:         AnalyzeHumidity(samples, tempMin, tempMax, month, loc),
		SeasonalAdvice:   SeasonalAdvice(tempMax, tempMin, month),
		AirQuality:       AirQualityFromPayload(air),
		Hourly:           samples,
	}, nil
}

// SamplesFromPayload converts the first types.HourlyWindow hourly entries.
func SamplesFromPayload(p *types.WeatherPayload) []types.HourlySample {
	if p == nil {
		return nil
	}
	hourly := p.Hourly
	if len(hourly) > types.HourlyWindow {
		hourly = hourly[:types.HourlyWindow]
	}
	out := make([]types.HourlySample, 0, len(hourly))
	for _, h := range hourly {
		out = append(out, types.HourlySample{
			Timestamp:   deref(h.Dt, 0),
			Temperature: deref(h.Temp, 0),
			Humidity:    int(math.Round(deref(h.Humidity, 0))),
			WeatherCode: firstCode(h.Weather),
		})
	}
	return out
}

func firstCode(refs []types.WeatherRef) int {
	if len(refs) == 0 || refs[0].ID == nil {
		return ClearCode
	}
	return *refs[0].ID
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
