package analysis

import (
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

// comfortMargin is the distance from the optimal range that separates
// dry from very dry and humid from very humid.
const comfortMargin = 20

type tempBand struct {
	below    float64
	min, max int
}

// Warmer air needs less relative humidity to feel comfortable.
var tempBands = []tempBand{
	{below: 15, min: 60, max: 70},
	{below: 18, min: 55, max: 65},
	{below: 21, min: 50, max: 60},
	{below: 24, min: 45, max: 55},
}

var hotBand = types.HumidityRange{Min: 40, Max: 50}

// TemperatureHumidityRange returns the comfortable humidity band for temp (°C).
func TemperatureHumidityRange(temp float64) types.HumidityRange {
	for _, b := range tempBands {
		if temp < b.below {
			return types.HumidityRange{Min: b.min, Max: b.max}
		}
	}
	return hotBand
}

// SeasonHumidityRange returns the comfortable humidity band for the month.
func SeasonHumidityRange(month time.Month) types.HumidityRange {
	switch month {
	case time.June, time.July, time.August:
		return types.HumidityRange{Min: 50, Max: 60}
	case time.December, time.January, time.February:
		return types.HumidityRange{Min: 35, Max: 45}
	default:
		// spring and autumn
		return types.HumidityRange{Min: 45, Max: 55}
	}
}

// OptimalHumidityRange is the widest span covering both the temperature
// band and the season band.
func OptimalHumidityRange(temp float64, month time.Month) types.HumidityRange {
	t := TemperatureHumidityRange(temp)
	s := SeasonHumidityRange(month)
	return types.HumidityRange{
		Min: min(t.Min, s.Min),
		Max: max(t.Max, s.Max),
	}
}

// ClassifyHumidity places h relative to the optimal range [lo, hi].
func ClassifyHumidity(h float64, lo, hi int) types.HumidityLevel {
	switch {
	case h < float64(lo-comfortMargin):
		return types.HumidityVeryDry
	case h < float64(lo):
		return types.HumidityDry
	case h <= float64(hi):
		return types.HumidityOptimal
	case h <= float64(hi+comfortMargin):
		return types.HumidityHumid
	default:
		return types.HumidityVeryHumid
	}
}

// AssessHumidity classifies h against the optimal range for temp and month.
func AssessHumidity(h, temp float64, month time.Month) types.HumidityAssessment {
	r := OptimalHumidityRange(temp, month)
	level := ClassifyHumidity(h, r.Min, r.Max)
	return types.HumidityAssessment{
		OptimalRange: r,
		Level:        level,
		Advice:       level.Advice(),
	}
}

// AnalyzeHumidity averages humidity for the morning (local hours 0-11), the afternoon
// (12-23) and all samples, then assesses morning against tempMin and afternoon against
// tempMax. Empty partitions average to 0.
func AnalyzeHumidity(samples []types.HourlySample, tempMin, tempMax float64, month time.Month, loc *time.Location) types.HumiditySummary {
	if loc == nil {
		loc = time.UTC
	}

	var morningSum, afternoonSum, totalSum float64
	var morningN, afternoonN int
	for _, s := range samples {
		h := float64(s.Humidity)
		totalSum += h
		if s.Time(loc).Hour() < 12 {
			morningSum += h
			morningN++
		} else {
			afternoonSum += h
			afternoonN++
		}
	}

	morningAvg := average(morningSum, morningN)
	afternoonAvg := average(afternoonSum, afternoonN)

	return types.HumiditySummary{
		MorningAvg:   morningAvg,
		AfternoonAvg: afternoonAvg,
		OverallAvg:   average(totalSum, len(samples)),
		Morning:      AssessHumidity(morningAvg, tempMin, month),
		Afternoon:    AssessHumidity(afternoonAvg, tempMax, month),
	}
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
