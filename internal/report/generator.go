package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/Afrawles/taskdash/internal/board"
	"github.com/Afrawles/taskdash/internal/calendar"
	"github.com/Afrawles/taskdash/internal/tasks"
)

// View is everything the calendar and the board render for one snapshot.
type View struct {
	GeneratedAt time.Time              `json:"generatedAt"`
	Origin      tasks.Origin           `json:"origin"`
	Filter      tasks.Filter           `json:"filter"`
	Tasks       []tasks.Task           `json:"tasks"`
	Events      []calendar.Event       `json:"events"`
	Sections    []board.Section        `json:"sections"`
	Counts      map[tasks.Status]int   `json:"counts"`
	Legend      []calendar.LegendEntry `json:"-"`
}

// Fallback reports whether the board shows personal tasks because the user
// has no team.
func (v View) Fallback() bool {
	return v.Origin == tasks.OriginPersonalFallback
}

type Generator struct {
	Loader *tasks.Loader
	Logger *slog.Logger
	Now    func() time.Time
}

func NewGenerator(loader *tasks.Loader, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{Loader: loader, Logger: logger, Now: time.Now}
}

// Generate fetches a snapshot and builds the view. With personal set only the
// user's own tasks are fetched.
func (g *Generator) Generate(ctx context.Context, s tasks.Session, f tasks.Filter, personal bool) (View, error) {
	var (
		snap tasks.Snapshot
		err  error
	)
	if personal {
		snap, err = g.Loader.LoadPersonal(ctx, s)
	} else {
		snap, err = g.Loader.Load(ctx, s)
	}
	if err != nil {
		return View{}, err
	}

	view := Build(snap, f, g.Now())
	g.Logger.Info("view built",
		"origin", view.Origin,
		"tasks", len(view.Tasks),
		"events", len(view.Events),
	)
	return view, nil
}

// Build runs the pipeline over an already fetched snapshot.
func Build(snap tasks.Snapshot, f tasks.Filter, today time.Time) View {
	agg := tasks.Aggregate(snap.Input, f)
	return View{
		GeneratedAt: today,
		Origin:      snap.Origin,
		Filter:      f,
		Tasks:       agg.Flat,
		Events:      calendar.Project(agg.Flat, today),
		Sections:    board.Present(agg.ByStatus, tasks.StatusOrder),
		Counts:      agg.Counts(),
		Legend:      calendar.Legend(),
	}
}

// Statistics generates summary stats
func (v View) Statistics() map[string]any {
	stats := make(map[string]any)

	byStatus := make(map[string]int)
	completed, pastDue, undated, unassigned := 0, 0, 0, 0
	for _, t := range v.Tasks {
		byStatus[string(t.Status)]++
		if t.Status == tasks.StatusCompleted {
			completed++
		}
		if !t.HasDueDate() {
			undated++
		}
		if t.Assignee == nil {
			unassigned++
		}
	}
	for _, e := range v.Events {
		if e.Past && e.Status != tasks.StatusCompleted {
			pastDue++
		}
	}

	stats["total"] = len(v.Tasks)
	stats["completed"] = completed
	stats["past_due"] = pastDue
	stats["without_due_date"] = undated
	stats["unassigned"] = unassigned
	stats["by_status"] = byStatus
	return stats
}
