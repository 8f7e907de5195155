package views

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/analysis"
	"github.com/Ki-Sung/weather-email-service/internal/modules/weather/types"
)

var errNotLoaded = errors.New("email templates not loaded: call views.LoadTemplates during startup")

var emailTmpl *template.Template

// loadTemplatesFromFS parses the email templates under dir in fsys.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	t, err := template.New("").Funcs(funcs).ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	emailTmpl = t
	return nil
}

// LoadTemplates loads the embedded email templates. Call during startup; if it
// returns an error, do not start the service.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

var funcs = template.FuncMap{
	"temp": func(c float64) string { return fmt.Sprintf("%.1f°C", c) },
	"pct":  func(h float64) string { return fmt.Sprintf("%.0f%%", h) },
}

// HourRow is one line of the hourly table.
type HourRow struct {
	Hour        string
	Temperature float64
	Humidity    int
	Condition   types.Condition
}

// EmailData is the view model of the daily mail.
type EmailData struct {
	LocationName string
	Date         string
	Summary      types.DailySummary
	Content      analysis.Content
	Hours        []HourRow
}

// NewEmailData prepares the view model, formatting times in loc.
func NewEmailData(locationName string, s types.DailySummary, c analysis.Content, loc *time.Location) *EmailData {
	if loc == nil {
		loc = time.UTC
	}
	rows := make([]HourRow, 0, len(s.Hourly))
	for _, h := range s.Hourly {
		rows = append(rows, HourRow{
			Hour:        h.Time(loc).Format("15:04"),
			Temperature: h.Temperature,
			Humidity:    h.Humidity,
			Condition:   analysis.ClassifyCode(h.WeatherCode),
		})
	}
	return &EmailData{
		LocationName: locationName,
		Date:         s.GeneratedAt.In(loc).Format("Monday, January 2, 2006"),
		Summary:      s,
		Content:      c,
		Hours:        rows,
	}
}

// FailureData is the view model of the failure notice.
type FailureData struct {
	LocationName string
	Date         string
	Subject      string
}

func RenderEmail(w io.Writer, data *EmailData) error {
	if emailTmpl == nil {
		return errNotLoaded
	}
	return emailTmpl.ExecuteTemplate(w, "email.html", data)
}

func RenderFailure(w io.Writer, data *FailureData) error {
	if emailTmpl == nil {
		return errNotLoaded
	}
	return emailTmpl.ExecuteTemplate(w, "failure.html", data)
}
