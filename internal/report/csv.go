package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Afrawles/taskdash/internal/calendar"
	"github.com/Afrawles/taskdash/internal/tasks"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

// Export writes the task list and the status dashboard and returns the
// paths written.
func (e *CSVExporter) Export(view View, prefix string) ([]string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	taskList := filepath.Join(e.OutputDir, prefix+"_task_list.csv")
	if err := e.exportTaskList(view, taskList); err != nil {
		return nil, fmt.Errorf("failed to export task list: %w", err)
	}

	dashboard := filepath.Join(e.OutputDir, prefix+"_dashboard.csv")
	if err := e.exportDashboard(view, dashboard); err != nil {
		return nil, fmt.Errorf("failed to export dashboard: %w", err)
	}

	return []string{taskList, dashboard}, nil
}

func (e *CSVExporter) exportTaskList(view View, filename string) error {
	return writeCSVFile(filename, func(writer *csv.Writer) error {
		return writeTaskList(view, writer)
	})
}

func writeTaskList(view View, writer *csv.Writer) error {
	header := []string{
		"#",
		"Task Name",
		"Assignee",
		"Status",
		"Due Date",
		"Priority",
		"Past Due",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	past := pastByID(view.Events)
	i := 0
	for _, section := range view.Sections {
		for _, card := range section.Cards {
			i++
			row := []string{
				strconv.Itoa(i),
				card.Title,
				card.Assignee,
				section.Label,
				card.Deadline,
				card.Priority,
				yesNo(past[card.ID]),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *CSVExporter) exportDashboard(view View, filename string) error {
	return writeCSVFile(filename, func(writer *csv.Writer) error {
		return writeDashboard(view, writer)
	})
}

func writeDashboard(view View, writer *csv.Writer) error {
	if err := writer.Write([]string{"Generated:", view.GeneratedAt.Format("02-01-06")}); err != nil {
		return err
	}
	if view.Filter.Active() {
		if err := writer.Write([]string{"Filter:", view.Filter.Label(), view.Filter.Value}); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{""}); err != nil {
		return err
	}

	if err := writer.Write([]string{"Task Status", "All Tasks", "Shown", "Past Due"}); err != nil {
		return err
	}

	pastDue := make(map[tasks.Status]int)
	for _, ev := range view.Events {
		if ev.Past {
			pastDue[ev.Status]++
		}
	}

	var totals struct{ all, shown, past int }
	for _, section := range view.Sections {
		all := countStatus(view.Tasks, section.Status)
		row := []string{
			section.Label,
			strconv.Itoa(all),
			strconv.Itoa(section.Count()),
			strconv.Itoa(pastDue[section.Status]),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
		totals.all += all
		totals.shown += section.Count()
		totals.past += pastDue[section.Status]
	}

	totalsRow := []string{"Total", strconv.Itoa(totals.all), strconv.Itoa(totals.shown), strconv.Itoa(totals.past)}
	if err := writer.Write(totalsRow); err != nil {
		return err
	}

	return nil
}

// writeCSVFile creates filename and writes the rows fill produces. Flush and
// close failures are reported.
func writeCSVFile(filename string, fill func(*csv.Writer) error) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	return writeCSV(file, fill)
}

func writeCSV(w io.Writer, fill func(*csv.Writer) error) error {
	writer := csv.NewWriter(w)
	if err := fill(writer); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func pastByID(events []calendar.Event) map[tasks.ID]bool {
	past := make(map[tasks.ID]bool, len(events))
	for _, ev := range events {
		past[ev.ID] = ev.Past
	}
	return past
}

func countStatus(list []tasks.Task, s tasks.Status) int {
	n := 0
	for _, t := range list {
		if t.Status == s {
			n++
		}
	}
	return n
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
