package analysis

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

func ptr[T any](v T) *T { return &v }

func uniformPayload(start time.Time, n int, code int, temp, humidity float64) *types.WeatherPayload {
	p := &types.WeatherPayload{
		Current: &types.CurrentWeather{Temp: ptr(temp), Weather: []types.WeatherRef{{ID: ptr(code)}}},
		Daily:   []types.DailyEntry{{Temp: &types.DailyTemp{Max: ptr(temp), Min: ptr(temp)}}},
	}
	for i := 0; i < n; i++ {
		p.Hourly = append(p.Hourly, types.HourlyEntry{
			Dt:       ptr(start.Add(time.Duration(i) * time.Hour).Unix()),
			Temp:     ptr(temp),
			Humidity: ptr(humidity),
			Weather:  []types.WeatherRef{{ID: ptr(code)}},
		})
	}
	return p
}

func TestBuildSummary_ClearAprilDay(t *testing.T) {
	now := time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)
	p := uniformPayload(now, 15, 800, 20, 50)

	got, err := BuildSummary(p, nil, now)
	require.NoError(t, err)

	assert.Equal(t, types.ConditionClear, got.OverallCondition)
	assert.Equal(t, "☀️", got.OverallCondition.Icon())
	assert.Equal(t, types.PrecipitationFlags{}, got.Precipitation)

	want := types.HumidityRange{Min: 45, Max: 60}
	assert.Equal(t, want, got.Humidity.Morning.OptimalRange)
	assert.Equal(t, want, got.Humidity.Afternoon.OptimalRange)
	assert.Equal(t, types.HumidityOptimal, got.Humidity.Morning.Level)
	assert.Equal(t, types.HumidityOptimal, got.Humidity.Afternoon.Level)
	assert.InDelta(t, 50, got.Humidity.OverallAvg, 1e-9)

	assert.Empty(t, got.SeasonalAdvice)
	assert.Equal(t, types.AirQualityUnknown, got.AirQuality.Level)
	assert.Len(t, got.Hourly, types.HourlyWindow)
	assert.Equal(t, now, got.GeneratedAt)
}

func TestBuildSummary_ThunderstormQuarter(t *testing.T) {
	now := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	p := uniformPayload(now, 15, 800, 25, 60)
	for i := 0; i < 4; i++ {
		p.Hourly[i].Weather = []types.WeatherRef{{ID: ptr(202)}}
	}

	got, err := BuildSummary(p, nil, now)
	require.NoError(t, err)
	assert.Equal(t, types.ConditionThunderstorm, got.OverallCondition)
}

func TestBuildSummary_OnlyFirstWindowIsUsed(t *testing.T) {
	now := time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)
	p := uniformPayload(now, 48, 800, 18, 50)
	// Snow beyond the window must not count.
	for i := types.HourlyWindow; i < len(p.Hourly); i++ {
		p.Hourly[i].Weather = []types.WeatherRef{{ID: ptr(601)}}
	}

	got, err := BuildSummary(p, nil, now)
	require.NoError(t, err)
	assert.Len(t, got.Hourly, types.HourlyWindow)
	assert.False(t, got.Precipitation.WillSnow)
	assert.Equal(t, types.ConditionClear, got.OverallCondition)
}

func TestBuildSummary_HeatAdvisoryAndAirQuality(t *testing.T) {
	now := time.Date(2025, 7, 20, 7, 0, 0, 0, time.UTC)
	p := uniformPayload(now, 15, 801, 34, 70)
	air := &types.AirQualityPayload{List: []types.AirQualityEntry{{Main: &types.AirQualityMain{AQI: ptr(3)}}}}

	got, err := BuildSummary(p, air, now)
	require.NoError(t, err)
	assert.Equal(t, HeatAdvisory, got.SeasonalAdvice)
	assert.Equal(t, types.AirQuality{AQI: 3, Level: types.AirQualityModerate}, got.AirQuality)
	assert.Equal(t, types.ConditionClouds, got.CurrentCondition)
}

func TestBuildSummary_MissingWeather(t *testing.T) {
	now := time.Now()
	for name, p := range map[string]*types.WeatherPayload{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := BuildSummary(p, nil, now)
			assert.True(t, errors.Is(err, ErrMissingWeatherData))
		})
	}
}

func TestBuildSummary_LenientParsing(t *testing.T) {
	raw := `{
		"current": {},
		"hourly": [
			{"dt": 1744268400},
			{"dt": 1744272000, "temp": 11.5, "humidity": 48, "weather": []},
			{"dt": 1744275600, "weather": [{"main": "Rain"}]},
			{"temp": 9, "humidity": 55.6, "weather": [{"id": 511}]}
		],
		"daily": [{}]
	}`
	var p types.WeatherPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	got, err := BuildSummary(&p, &types.AirQualityPayload{}, time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, got.Hourly, 4)
	assert.Equal(t, ClearCode, got.Hourly[0].WeatherCode)
	assert.Zero(t, got.Hourly[0].Temperature)
	assert.Zero(t, got.Hourly[0].Humidity)
	assert.Equal(t, ClearCode, got.Hourly[1].WeatherCode)
	assert.Equal(t, ClearCode, got.Hourly[2].WeatherCode)
	assert.Equal(t, 511, got.Hourly[3].WeatherCode)
	assert.Equal(t, 56, got.Hourly[3].Humidity)
	assert.Zero(t, got.Hourly[3].Timestamp)

	assert.Zero(t, got.CurrentTemp)
	assert.Equal(t, types.ConditionClear, got.CurrentCondition)
	assert.Zero(t, got.TempMax)
	assert.Zero(t, got.TempMin)
	assert.Equal(t, types.PrecipitationFlags{WillRain: true}, got.Precipitation)
	assert.Equal(t, types.AirQualityUnknown, got.AirQuality.Level)
}

func TestDailySummary_JSON(t *testing.T) {
	now := time.Date(2025, 4, 10, 7, 0, 0, 0, time.UTC)
	s, err := BuildSummary(uniformPayload(now, 3, 500, 12, 65), nil, now)
	require.NoError(t, err)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "rain", decoded["overallCondition"])
	assert.Equal(t, "unknown", decoded["airQuality"].(map[string]any)["level"])

	var back types.DailySummary
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s.OverallCondition, back.OverallCondition)
	assert.Equal(t, s.Humidity.Morning.Level, back.Humidity.Morning.Level)
}
