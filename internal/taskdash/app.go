package taskdash

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Afrawles/taskdash/internal/backend"
	"github.com/Afrawles/taskdash/internal/config"
	"github.com/Afrawles/taskdash/internal/report"
	"github.com/Afrawles/taskdash/internal/tasks"
	charmlog "github.com/charmbracelet/log"
)

type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Client    *backend.Client
	Loader    *tasks.Loader
	Generator *report.Generator
	Exporter  *report.Exporter
	Session   tasks.Session

	// Progress, when set, is called once per format after its export.
	Progress func(format string)
}

func New(cfg *config.Config, logOutput io.Writer) (*Application, error) {
	logger := NewLogger(cfg.Log, logOutput)
	slog.SetDefault(logger)

	session, err := cfg.Session()
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(backend.Options{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
		Retries:       cfg.API.Retries,
		Logger:        logger,
	})
	loader := tasks.NewLoader(client, logger)

	logger.Debug("backend client initialized", "url", cfg.API.BaseURL, "user", session.UserID)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		Loader:    loader,
		Generator: report.NewGenerator(loader, logger),
		Exporter:  report.NewExporter(cfg.Output.Directory),
		Session:   session,
	}, nil
}

// NewLogger builds the slog logger backed by a charm log handler.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil {
		level = charmlog.InfoLevel
	}
	opts := charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "taskdash",
	}
	if cfg.JSON {
		opts.Formatter = charmlog.JSONFormatter
	}
	return slog.New(charmlog.NewWithOptions(w, opts))
}

// ExportReport builds the view and writes every configured format. It
// returns the written paths along with the joined errors of the formats that
// failed.
func (app *Application) ExportReport(ctx context.Context, f tasks.Filter, personal bool, month time.Time) ([]string, error) {
	app.Logger.Info("generating report", "user", app.Session.UserID, "month", month.Format("2006-01"))

	view, err := app.Generator.Generate(ctx, app.Session, f, personal)
	if err != nil {
		app.Logger.Error("failed to generate report", "error", err)
		return nil, err
	}

	if err := os.MkdirAll(app.Config.Output.Directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stamp := view.GeneratedAt.Format("20060102_150405")
	base := fmt.Sprintf("tasks_%s_%s", app.Session.UserID, stamp)

	var (
		written []string
		failed  []error
	)
	for _, format := range app.Config.Output.Format {
		paths, err := app.exportFormat(view, format, base, month)
		if app.Progress != nil {
			app.Progress(format)
		}
		if err != nil {
			app.Logger.Error("failed to export report", "format", format, "error", err)
			failed = append(failed, fmt.Errorf("export %s: %w", format, err))
			continue
		}
		written = append(written, paths...)
		app.Logger.Info("report exported", "format", format)
	}

	stats := view.Statistics()
	app.Logger.Info("report generation complete",
		"total", stats["total"],
		"completed", stats["completed"],
		"past_due", stats["past_due"],
	)

	return written, errors.Join(failed...)
}

func (app *Application) exportFormat(view report.View, format, base string, month time.Time) ([]string, error) {
	dir := app.Config.Output.Directory
	switch format {
	case "json":
		filename := base + ".json"
		if err := app.Exporter.ExportJSON(view, filename); err != nil {
			return nil, err
		}
		return []string{filepath.Join(dir, filename)}, nil

	case "html":
		filename := base + ".html"
		if err := app.Exporter.ExportHTML(view, filename, month); err != nil {
			return nil, err
		}
		return []string{filepath.Join(dir, filename)}, nil

	case "csv":
		return report.NewCSVExporter(dir).Export(view, base)

	case "xlsx":
		path, err := report.NewExcelExporter(dir).Export(view, month, base+".xlsx")
		if err != nil {
			return nil, err
		}
		return []string{path}, nil

	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
