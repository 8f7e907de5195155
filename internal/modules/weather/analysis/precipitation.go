package analysis

import "github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"

func inRange(code, lo, hi int) bool {
	return code >= lo && code <= hi
}

// AnalyzePrecipitation scans samples and accumulates precipitation flags.
//
// Each sample matches at most one rule, checked in this order:
//
//	500-504, 520-531  rain + shower
//	511               rain
//	502-504, 522-531  rain + heavy rain
//	600-622           snow
//
// The heavy-rain rule overlaps the shower rule and is never reached; heavy-rain codes
// are reported as showers. This ordering is kept as-is.
func AnalyzePrecipitation(samples []types.HourlySample) types.PrecipitationFlags {
	var f types.PrecipitationFlags
	for _, s := range samples {
		code := s.WeatherCode
		switch {
		case inRange(code, 500, 504) || inRange(code, 520, 531):
			f.WillRain = true
			f.WillShower = true
		case code == 511:
			f.WillRain = true
		case inRange(code, 502, 504) || inRange(code, 522, 531):
			f.WillRain = true
			f.WillHeavyRain = true
		case inRange(code, 600, 622):
			f.WillSnow = true
		}
		if f.All() {
			break
		}
	}
	return f
}
