// Package analysis turns raw forecast data into the categorical judgments that drive the
// daily mail: weather condition, precipitation flags, humidity comfort, seasonal advice
// and the subject/warning selection. Everything here is pure and safe for concurrent use.
package analysis

import "github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"

// ClearCode is the provider code for a clear sky.
const ClearCode = 800

// ClassifyCode maps a provider weather code to its Condition. Every integer is valid.
func ClassifyCode(code int) types.Condition {
	switch {
	case code < 300:
		return types.ConditionThunderstorm
	case code < 400:
		return types.ConditionDrizzle
	case code < 600:
		return types.ConditionRain
	case code < 700:
		return types.ConditionSnow
	case code < 800:
		return types.ConditionAtmosphere
	case code == ClearCode:
		return types.ConditionClear
	default:
		return types.ConditionClouds
	}
}
