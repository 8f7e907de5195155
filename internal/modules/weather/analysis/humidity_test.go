package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

func TestTemperatureHumidityRange(t *testing.T) {
	tests := []struct {
		temp float64
		want types.HumidityRange
	}{
		{temp: -5, want: types.HumidityRange{Min: 60, Max: 70}},
		{temp: 14.9, want: types.HumidityRange{Min: 60, Max: 70}},
		{temp: 15, want: types.HumidityRange{Min: 55, Max: 65}},
		{temp: 18, want: types.HumidityRange{Min: 50, Max: 60}},
		{temp: 20, want: types.HumidityRange{Min: 50, Max: 60}},
		{temp: 21, want: types.HumidityRange{Min: 45, Max: 55}},
		{temp: 23.99, want: types.HumidityRange{Min: 45, Max: 55}},
		{temp: 24, want: types.HumidityRange{Min: 40, Max: 50}},
		{temp: 38, want: types.HumidityRange{Min: 40, Max: 50}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TemperatureHumidityRange(tt.temp), "temp %v", tt.temp)
	}
}

func TestSeasonHumidityRange(t *testing.T) {
	spring := types.HumidityRange{Min: 45, Max: 55}
	summer := types.HumidityRange{Min: 50, Max: 60}
	winter := types.HumidityRange{Min: 35, Max: 45}

	want := map[time.Month]types.HumidityRange{
		time.January: winter, time.February: winter, time.March: spring,
		time.April: spring, time.May: spring, time.June: summer,
		time.July: summer, time.August: summer, time.September: spring,
		time.October: spring, time.November: spring, time.December: winter,
	}
	for m, r := range want {
		assert.Equal(t, r, SeasonHumidityRange(m), "month %v", m)
	}
}

func TestOptimalHumidityRange_Union(t *testing.T) {
	assert.Equal(t, types.HumidityRange{Min: 45, Max: 60}, OptimalHumidityRange(20, time.April))
	assert.Equal(t, types.HumidityRange{Min: 35, Max: 70}, OptimalHumidityRange(-3, time.January))
	assert.Equal(t, types.HumidityRange{Min: 40, Max: 60}, OptimalHumidityRange(30, time.July))

	for temp := -20.0; temp <= 40; temp += 0.5 {
		for m := time.January; m <= time.December; m++ {
			got := OptimalHumidityRange(temp, m)
			band := TemperatureHumidityRange(temp)
			season := SeasonHumidityRange(m)
			require.LessOrEqual(t, got.Min, got.Max)
			require.LessOrEqual(t, got.Min, band.Min)
			require.LessOrEqual(t, got.Min, season.Min)
			require.GreaterOrEqual(t, got.Max, band.Max)
			require.GreaterOrEqual(t, got.Max, season.Max)
		}
	}
}

func TestClassifyHumidity(t *testing.T) {
	tests := []struct {
		h    float64
		want types.HumidityLevel
	}{
		{h: 0, want: types.HumidityVeryDry},
		{h: 24.9, want: types.HumidityVeryDry},
		{h: 25, want: types.HumidityDry},
		{h: 44.9, want: types.HumidityDry},
		{h: 45, want: types.HumidityOptimal},
		{h: 60, want: types.HumidityOptimal},
		{h: 60.1, want: types.HumidityHumid},
		{h: 80, want: types.HumidityHumid},
		{h: 80.1, want: types.HumidityVeryHumid},
		{h: 100, want: types.HumidityVeryHumid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyHumidity(tt.h, 45, 60), "h=%v", tt.h)
	}
}

func TestClassifyHumidity_ContiguousPartition(t *testing.T) {
	// Walking upwards, the level never decreases and every level is visited once.
	lo, hi := 40, 55
	prev := types.HumidityVeryDry
	seen := map[types.HumidityLevel]bool{}
	for h := -50.0; h <= 150; h += 0.25 {
		got := ClassifyHumidity(h, lo, hi)
		require.GreaterOrEqual(t, int(got), int(prev), "h=%v", h)
		prev = got
		seen[got] = true
	}
	assert.Len(t, seen, len(types.HumidityLevels))
}

func hourlyAt(start time.Time, humidity []int) []types.HourlySample {
	out := make([]types.HourlySample, 0, len(humidity))
	for i, h := range humidity {
		out = append(out, types.HourlySample{
			Timestamp: start.Add(time.Duration(i) * time.Hour).Unix(),
			Humidity:  h,
		})
	}
	return out
}

func TestAnalyzeHumidity_Partitions(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	start := time.Date(2025, 4, 10, 9, 0, 0, 0, loc)
	// 09,10,11 morning; 12..14 afternoon
	samples := hourlyAt(start, []int{30, 40, 50, 70, 80, 90})

	got := AnalyzeHumidity(samples, 10, 20, time.April, loc)

	assert.InDelta(t, 40, got.MorningAvg, 1e-9)
	assert.InDelta(t, 80, got.AfternoonAvg, 1e-9)
	assert.InDelta(t, 60, got.OverallAvg, 1e-9)

	// morning: tempMin 10 -> [60,70] ∪ spring [45,55] = [45,70]
	assert.Equal(t, types.HumidityRange{Min: 45, Max: 70}, got.Morning.OptimalRange)
	assert.Equal(t, types.HumidityDry, got.Morning.Level)
	assert.Equal(t, types.HumidityDry.Advice(), got.Morning.Advice)

	// afternoon: tempMax 20 -> [50,60] ∪ [45,55] = [45,60]
	assert.Equal(t, types.HumidityRange{Min: 45, Max: 60}, got.Afternoon.OptimalRange)
	assert.Equal(t, types.HumidityHumid, got.Afternoon.Level)
}

func TestAnalyzeHumidity_HourUsesLocation(t *testing.T) {
	// 03:00 UTC is noon in UTC+9.
	ts := time.Date(2025, 4, 10, 3, 0, 0, 0, time.UTC)
	samples := hourlyAt(ts, []int{50})

	kst := AnalyzeHumidity(samples, 20, 20, time.April, time.FixedZone("KST", 9*3600))
	assert.Zero(t, kst.MorningAvg)
	assert.InDelta(t, 50, kst.AfternoonAvg, 1e-9)

	utc := AnalyzeHumidity(samples, 20, 20, time.April, nil)
	assert.InDelta(t, 50, utc.MorningAvg, 1e-9)
	assert.Zero(t, utc.AfternoonAvg)
}

func TestAnalyzeHumidity_Empty(t *testing.T) {
	got := AnalyzeHumidity(nil, 5, 15, time.January, time.UTC)

	assert.Zero(t, got.MorningAvg)
	assert.Zero(t, got.AfternoonAvg)
	assert.Zero(t, got.OverallAvg)
	// 0% is far below any optimal band.
	assert.Equal(t, types.HumidityVeryDry, got.Morning.Level)
	assert.Equal(t, types.HumidityVeryDry, got.Afternoon.Level)
}
