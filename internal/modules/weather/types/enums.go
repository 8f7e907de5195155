package types

import "fmt"

// Condition is the categorical weather label derived from a provider weather code.
type Condition int

const (
	ConditionThunderstorm Condition = iota
	ConditionDrizzle
	ConditionRain
	ConditionSnow
	ConditionAtmosphere
	ConditionClear
	ConditionClouds
)

// Conditions lists every Condition in declaration order.
var Conditions = []Condition{
	ConditionThunderstorm,
	ConditionDrizzle,
	ConditionRain,
	ConditionSnow,
	ConditionAtmosphere,
	ConditionClear,
	ConditionClouds,
}

func (c Condition) String() string {
	switch c {
	case ConditionThunderstorm:
		return "thunderstorm"
	case ConditionDrizzle:
		return "drizzle"
	case ConditionRain:
		return "rain"
	case ConditionSnow:
		return "snow"
	case ConditionAtmosphere:
		return "atmosphere"
	case ConditionClear:
		return "clear"
	case ConditionClouds:
		return "clouds"
	}
	return fmt.Sprintf("Condition(%d)", int(c))
}

// Label is the human-facing name used in mail content.
func (c Condition) Label() string {
	switch c {
	case ConditionThunderstorm:
		return "Thunderstorm"
	case ConditionDrizzle:
		return "Drizzle"
	case ConditionRain:
		return "Rain"
	case ConditionSnow:
		return "Snow"
	case ConditionAtmosphere:
		return "Fog"
	case ConditionClear:
		return "Clear"
	case ConditionClouds:
		return "Cloudy"
	}
	return ""
}

func (c Condition) Icon() string {
	switch c {
	case ConditionThunderstorm:
		return "⚡"
	case ConditionDrizzle:
		return "🌦️"
	case ConditionRain:
		return "☔"
	case ConditionSnow:
		return "❄️"
	case ConditionAtmosphere:
		return "🌫️"
	case ConditionClear:
		return "☀️"
	case ConditionClouds:
		return "☁️"
	}
	return ""
}

// Message is the one-line advice shown for the day's overall condition.
func (c Condition) Message() string {
	switch c {
	case ConditionThunderstorm:
		return "Thunder and lightning are possible, so keep outdoor activities to a minimum. ⚡"
	case ConditionDrizzle:
		return "Light drizzle is possible. Take an umbrella with you. 🌦️"
	case ConditionRain:
		return "Rain is expected today, so don't forget your umbrella! ☔"
	case ConditionSnow:
		return "Snow is on the way. Watch your step on slippery roads! ❄️"
	case ConditionAtmosphere:
		return "It's foggy out there. Drive carefully. 🌫️"
	case ConditionClear:
		return "Clear skies today. A great day to be outside! 🌞"
	case ConditionClouds:
		return "Lots of clouds today, so sunshine may be weak. ☁️"
	}
	return "Have a good day!"
}

func (c Condition) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Condition) UnmarshalText(b []byte) error {
	for _, v := range Conditions {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown condition %q", string(b))
}

// HumidityLevel is the comfort band of a humidity reading relative to its optimal range.
type HumidityLevel int

const (
	HumidityVeryDry HumidityLevel = iota
	HumidityDry
	HumidityOptimal
	HumidityHumid
	HumidityVeryHumid
)

var HumidityLevels = []HumidityLevel{
	HumidityVeryDry,
	HumidityDry,
	HumidityOptimal,
	HumidityHumid,
	HumidityVeryHumid,
}

func (l HumidityLevel) String() string {
	switch l {
	case HumidityVeryDry:
		return "very-dry"
	case HumidityDry:
		return "dry"
	case HumidityOptimal:
		return "optimal"
	case HumidityHumid:
		return "humid"
	case HumidityVeryHumid:
		return "very-humid"
	}
	return fmt.Sprintf("HumidityLevel(%d)", int(l))
}

func (l HumidityLevel) Label() string {
	switch l {
	case HumidityVeryDry:
		return "Very dry"
	case HumidityDry:
		return "Dry"
	case HumidityOptimal:
		return "Comfortable"
	case HumidityHumid:
		return "Humid"
	case HumidityVeryHumid:
		return "Very humid"
	}
	return ""
}

func (l HumidityLevel) Icon() string {
	switch l {
	case HumidityVeryDry:
		return "🏜️"
	case HumidityDry:
		return "🍂"
	case HumidityOptimal:
		return "😊"
	case HumidityHumid:
		return "💦"
	case HumidityVeryHumid:
		return "🌊"
	}
	return ""
}

func (l HumidityLevel) Advice() string {
	switch l {
	case HumidityVeryDry:
		return "The air is very dry. Use a humidifier and drink plenty of water."
	case HumidityDry:
		return "The air is a little dry. Keep your skin and throat moisturised."
	case HumidityOptimal:
		return "Humidity is in the comfortable range."
	case HumidityHumid:
		return "It's a bit humid. Ventilate indoor spaces now and then."
	case HumidityVeryHumid:
		return "It's very humid. Use a dehumidifier or air conditioner to stay comfortable."
	}
	return ""
}

func (l HumidityLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *HumidityLevel) UnmarshalText(b []byte) error {
	for _, v := range HumidityLevels {
		if v.String() == string(b) {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("unknown humidity level %q", string(b))
}

// AirQualityLevel maps the provider AQI (1 best .. 5 worst). Unknown is used when
// the air-quality payload is missing or unusable.
type AirQualityLevel int

const (
	AirQualityUnknown AirQualityLevel = iota
	AirQualityGood
	AirQualityFair
	AirQualityModerate
	AirQualityPoor
	AirQualityVeryPoor
)

var AirQualityLevels = []AirQualityLevel{
	AirQualityUnknown,
	AirQualityGood,
	AirQualityFair,
	AirQualityModerate,
	AirQualityPoor,
	AirQualityVeryPoor,
}

func (l AirQualityLevel) String() string {
	switch l {
	case AirQualityUnknown:
		return "unknown"
	case AirQualityGood:
		return "good"
	case AirQualityFair:
		return "fair"
	case AirQualityModerate:
		return "moderate"
	case AirQualityPoor:
		return "poor"
	case AirQualityVeryPoor:
		return "very-poor"
	}
	return fmt.Sprintf("AirQualityLevel(%d)", int(l))
}

func (l AirQualityLevel) Label() string {
	switch l {
	case AirQualityUnknown:
		return "Unknown"
	case AirQualityGood:
		return "Good"
	case AirQualityFair:
		return "Fair"
	case AirQualityModerate:
		return "Moderate"
	case AirQualityPoor:
		return "Poor"
	case AirQualityVeryPoor:
		return "Very poor"
	}
	return ""
}

func (l AirQualityLevel) Advice() string {
	switch l {
	case AirQualityUnknown:
		return "Air quality data is unavailable."
	case AirQualityGood:
		return "Hardly any fine dust today. Enjoy your time outside!"
	case AirQualityFair:
		return "Fine dust levels are moderate."
	case AirQualityModerate:
		return "Sensitive groups should consider wearing a mask."
	case AirQualityPoor:
		return "Air quality is poor. Wear a mask when you go out."
	case AirQualityVeryPoor:
		return "Air quality is very poor. Stay indoors if you can and always wear a mask outside!"
	}
	return ""
}

func (l AirQualityLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *AirQualityLevel) UnmarshalText(b []byte) error {
	for _, v := range AirQualityLevels {
		if v.String() == string(b) {
			*l = v
			return nil
		}
	}
	return fmt.Errorf("unknown air quality level %q", string(b))
}
