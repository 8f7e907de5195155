package analysis

import (
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

const (
	// HeatAdvisoryTemp is the summer daily high (°C) at or above which the heat advisory applies.
	HeatAdvisoryTemp = 33.0
	// ColdAdvisoryTemp is the winter daily low (°C) at or below which the cold advisory applies.
	ColdAdvisoryTemp = -12.0

	// HeatAdvisory is the seasonal notice for hot summer days.
	HeatAdvisory = "A heat wave is expected. Drink plenty of water and look after your health. 🔥"
	// ColdAdvisory is the seasonal notice for cold winter days.
	ColdAdvisory = "A cold wave warning is in effect. Dress warmly and keep your body heat up when you go out. ❄️"
)

// SeasonalAdvice returns the heat advisory in summer, the cold advisory in winter,
// or "" when neither threshold is crossed.
func SeasonalAdvice(tempMax, tempMin float64, month time.Month) string {
	switch month {
	case time.June, time.July, time.August:
		if tempMax >= HeatAdvisoryTemp {
			return HeatAdvisory
		}
	case time.December, time.January, time.February:
		if tempMin <= ColdAdvisoryTemp {
			return ColdAdvisory
		}
	}
	return ""
}

// ClassifyAirQuality maps an AQI to its level. 0 means no reading; values
// outside 1-4 fall through to very poor.
func ClassifyAirQuality(aqi int) types.AirQualityLevel {
	switch aqi {
	case 0:
		return types.AirQualityUnknown
	case 1:
		return types.AirQualityGood
	case 2:
		return types.AirQualityFair
	case 3:
		return types.AirQualityModerate
	case 4:
		return types.AirQualityPoor
	default:
		return types.AirQualityVeryPoor
	}
}

// AirQualityFromPayload reads the first AQI of p. A nil or malformed payload
// yields AirQualityUnknown.
func AirQualityFromPayload(p *types.AirQualityPayload) types.AirQuality {
	if p == nil || len(p.List) == 0 {
		return types.AirQuality{Level: types.AirQualityUnknown}
	}
	first := p.List[0]
	if first.Main == nil || first.Main.AQI == nil {
		return types.AirQuality{Level: types.AirQualityUnknown}
	}
	aqi := *first.Main.AQI
	return types.AirQuality{AQI: aqi, Level: ClassifyAirQuality(aqi)}
}
