package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/Afrawles/taskdash/internal/calendar"
)

//go:embed "templates"
var templateFS embed.FS

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

func (e *Exporter) ExportJSON(view View, filename string) error {
	data, err := json.MarshalIndent(view, "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(e.OutputDir, filename), data, 0644)
}

// ExportHTML renders the calendar for month plus the board into one page.
func (e *Exporter) ExportHTML(view View, filename string, month time.Time) error {
	funcMap := template.FuncMap{
		"day": func(t time.Time) int { return t.Day() },
		"css": func(s string) template.CSS { return template.CSS(s) },
	}
	tmpl, err := template.New("report.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/report.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	outputPath := filepath.Join(e.OutputDir, filename)
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	data := map[string]any{
		"Date":     view.GeneratedAt.Format("2006-01-02 15:04:05"),
		"Month":    calendar.NewMonth(month, view.Events, view.GeneratedAt),
		"Weekdays": calendar.WeekdayNames,
		"Legend":   calendar.Legend(),
		"Sections": view.Sections,
		"Filter":   view.Filter,
		"Fallback": view.Fallback(),
		"Stats":    view.Statistics(),
	}

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	return nil
}
