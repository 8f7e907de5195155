package analysis

import (
	"fmt"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

// SubjectPrefix starts every mail subject.
const SubjectPrefix = "[Weather Notifier]"

// SubjectVariant selects the headline of the mail.
type SubjectVariant int

const (
	SubjectDefault SubjectVariant = iota
	SubjectShowerSnow
	SubjectShower
	SubjectHeavyRainSnow
	SubjectHeavyRain
	SubjectRainSnow
	SubjectRain
	SubjectSnow
)

func (v SubjectVariant) String() string {
	switch v {
	case SubjectDefault:
		return "default"
	case SubjectShowerSnow:
		return "shower-snow"
	case SubjectShower:
		return "shower"
	case SubjectHeavyRainSnow:
		return "heavy-rain-snow"
	case SubjectHeavyRain:
		return "heavy-rain"
	case SubjectRainSnow:
		return "rain-snow"
	case SubjectRain:
		return "rain"
	case SubjectSnow:
		return "snow"
	}
	return fmt.Sprintf("SubjectVariant(%d)", int(v))
}

func (v SubjectVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// headline is the variant text without prefix or icon. Default has none.
func (v SubjectVariant) headline() string {
	switch v {
	case SubjectShowerSnow:
		return "Showers and snow expected today! Be ready for sudden changes"
	case SubjectShower:
		return "Showers expected today! Be ready for sudden changes"
	case SubjectHeavyRainSnow:
		return "Heavy rain and snow expected today! Stay indoors if you can"
	case SubjectHeavyRain:
		return "Heavy rain expected today! Stay indoors and take an umbrella"
	case SubjectRainSnow:
		return "Rain and snow expected today! Take an umbrella"
	case SubjectRain:
		return "Rain expected today! Take an umbrella"
	case SubjectSnow:
		return "Snow expected today! Dress warmly"
	}
	return ""
}

// SelectSubject picks the subject variant from the precipitation flags, highest
// priority first.
func SelectSubject(f types.PrecipitationFlags) SubjectVariant {
	switch {
	case f.WillShower && f.WillSnow:
		return SubjectShowerSnow
	case f.WillShower:
		return SubjectShower
	case f.WillHeavyRain && f.WillSnow:
		return SubjectHeavyRainSnow
	case f.WillHeavyRain:
		return SubjectHeavyRain
	case f.WillRain && f.WillSnow:
		return SubjectRainSnow
	case f.WillRain:
		return SubjectRain
	case f.WillSnow:
		return SubjectSnow
	default:
		return SubjectDefault
	}
}

// Warning is a highlighted paragraph in the mail body.
type Warning int

const (
	WarningShower Warning = iota
	WarningHeavyRain
	WarningRain
	WarningSnow
)

func (w Warning) String() string {
	switch w {
	case WarningShower:
		return "shower"
	case WarningHeavyRain:
		return "heavy-rain"
	case WarningRain:
		return "rain"
	case WarningSnow:
		return "snow"
	}
	return fmt.Sprintf("Warning(%d)", int(w))
}

func (w Warning) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w Warning) Text() string {
	switch w {
	case WarningShower:
		return "🌦️ Showers are expected today! Be ready for sudden changes in the weather."
	case WarningHeavyRain:
		return "🌧️ Heavy rain is expected today! Avoid going out and be sure to take an umbrella."
	case WarningRain:
		return "☔ Rain is expected today, so take an umbrella when you go out!"
	case WarningSnow:
		return "❄️ Snow is expected today. Dress warmly and watch out for slippery roads!"
	}
	return ""
}

// SelectWarnings returns at most one rain-type warning (shower, then heavy rain, then
// rain) followed by the snow warning when snow is expected.
func SelectWarnings(f types.PrecipitationFlags) []Warning {
	var out []Warning
	switch {
	case f.WillShower:
		out = append(out, WarningShower)
	case f.WillHeavyRain:
		out = append(out, WarningHeavyRain)
	case f.WillRain:
		out = append(out, WarningRain)
	}
	if f.WillSnow {
		out = append(out, WarningSnow)
	}
	return out
}

// Content is the text selected for one mail, ready for rendering.
type Content struct {
	Subject        string         `json:"subject"`
	Variant        SubjectVariant `json:"variant"`
	WeatherMessage string         `json:"weatherMessage"`
	Warnings       []Warning      `json:"warnings"`
	Failed         bool           `json:"failed"`
}

// Compose selects the subject, weather message and warnings for s.
func Compose(s types.DailySummary) Content {
	variant := SelectSubject(s.Precipitation)
	return Content{
		Subject:        subjectLine(variant, s.OverallCondition),
		Variant:        variant,
		WeatherMessage: s.OverallCondition.Message(),
		Warnings:       SelectWarnings(s.Precipitation),
	}
}

// FailureContent is sent when the weather data could not be loaded.
func FailureContent() Content {
	return Content{
		Subject: SubjectPrefix + " Failed to load weather data",
		Failed:  true,
	}
}

func subjectLine(v SubjectVariant, c types.Condition) string {
	if h := v.headline(); h != "" {
		return fmt.Sprintf("%s %s %s", SubjectPrefix, h, c.Icon())
	}
	return fmt.Sprintf("%s Today's weather: %s %s", SubjectPrefix, c.Label(), c.Icon())
}
