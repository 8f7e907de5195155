package analysis

import "github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"

type codeSpan struct{ lo, hi int }

// priorityTiers are walked in order; severe weather comes first.
var priorityTiers = [][]codeSpan{
	{{200, 299}},             // thunderstorm
	{{300, 399}, {500, 599}}, // drizzle and rain
	{{600, 699}},             // snow
	{{700, 799}},             // fog, haze, dust
	{{800, 899}},             // clear and clouds
}

func (t codeSpan) contains(code int) bool {
	return code >= t.lo && code <= t.hi
}

func tierContains(tier []codeSpan, code int) bool {
	for _, span := range tier {
		if span.contains(code) {
			return true
		}
	}
	return false
}

// DominantCode returns the most significant weather code among samples.
//
// Tiers are checked in priority order. A tier's most frequent code wins when it
// covers at least a quarter of all samples (count >= ceil(n/4)); equal counts go to
// the lowest code. Without a winner, or with no samples, ClearCode is returned.
func DominantCode(samples []types.HourlySample) int {
	n := len(samples)
	if n == 0 {
		return ClearCode
	}

	counts := make(map[int]int)
	for _, s := range samples {
		counts[s.WeatherCode]++
	}
	threshold := (n + 3) / 4

	for _, tier := range priorityTiers {
		best, bestCount := 0, 0
		for code, count := range counts {
			if !tierContains(tier, code) {
				continue
			}
			if count > bestCount || (count == bestCount && code < best) {
				best, bestCount = code, count
			}
		}
		if bestCount > 0 && bestCount >= threshold {
			return best
		}
	}
	return ClearCode
}

// DominantCondition classifies the DominantCode of samples.
func DominantCondition(samples []types.HourlySample) types.Condition {
	return ClassifyCode(DominantCode(samples))
}
