package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Afrawles/taskdash/internal/board"
	"github.com/Afrawles/taskdash/internal/calendar"
	"github.com/xuri/excelize/v2"
)

const (
	calendarSheet  = "Calendar"
	dashboardSheet = "Dashboard"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

// Export writes a workbook with the calendar month, a status dashboard and
// one sheet per board section. It returns the written path.
func (e *ExcelExporter) Export(view View, month time.Time, filename string) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(e.OutputDir, filename)

	f := excelize.NewFile()
	defer f.Close()

	st := newStyles(f)

	if err := e.createCalendarSheet(f, st, view, month); err != nil {
		return "", fmt.Errorf("failed to create calendar: %w", err)
	}

	if err := e.createDashboardSheet(f, st, view); err != nil {
		return "", fmt.Errorf("failed to create dashboard: %w", err)
	}

	for _, section := range view.Sections {
		if err := e.createSectionSheet(f, st, section); err != nil {
			return "", fmt.Errorf("failed to create sheet for %s: %w", section.Label, err)
		}
	}

	if idx, err := f.GetSheetIndex(calendarSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save excel file: %w", err)
	}

	return path, nil
}

// styles caches one fill style per colour; excelize allocates a new style id
// on every NewStyle call.
type styles struct {
	f      *excelize.File
	header int
	fills  map[string]int
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "#000000", Style: 1},
	{Type: "right", Color: "#000000", Style: 1},
	{Type: "top", Color: "#000000", Style: 1},
	{Type: "bottom", Color: "#000000", Style: 1},
}

func newStyles(f *excelize.File) *styles {
	header, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	return &styles{f: f, header: header, fills: make(map[string]int)}
}

func (s *styles) fill(color string) int {
	if id, ok := s.fills[color]; ok {
		return id
	}
	font := "#FFFFFF"
	if color == calendar.PastColor || color == "" {
		font = "#000000"
	}
	style := &excelize.Style{
		Font:      &excelize.Font{Color: font},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorder,
	}
	if color != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}
	id, _ := s.f.NewStyle(style)
	s.fills[color] = id
	return id
}

func (e *ExcelExporter) createCalendarSheet(f *excelize.File, st *styles, view View, month time.Time) error {
	if _, err := f.NewSheet(calendarSheet); err != nil {
		return err
	}

	grid := calendar.NewMonth(month, view.Events, view.GeneratedAt)
	f.SetCellValue(calendarSheet, "A1", grid.Title())

	for col, name := range calendar.WeekdayNames {
		cell := cellName(col+1, 2)
		f.SetCellValue(calendarSheet, cell, name)
		f.SetCellStyle(calendarSheet, cell, cell, st.header)
	}

	for w, week := range grid.Weeks {
		row := w + 3
		for d, c := range week {
			cell := cellName(d+1, row)

			lines := []string{fmt.Sprintf("%d", c.Date.Day())}
			for _, ev := range c.Events {
				lines = append(lines, ev.Title)
			}
			f.SetCellValue(calendarSheet, cell, strings.Join(lines, "\n"))

			color := ""
			if len(c.Events) > 0 {
				color = c.Events[0].Background()
			}
			f.SetCellStyle(calendarSheet, cell, cell, st.fill(color))

			if len(c.Events) > 0 {
				tips := make([]string, len(c.Events))
				for i, ev := range c.Events {
					tips[i] = ev.Tooltip
				}
				f.AddComment(calendarSheet, excelize.Comment{
					Cell:   cell,
					Author: "taskdash",
					Text:   strings.Join(tips, "\n\n"),
				})
			}
		}
		f.SetRowHeight(calendarSheet, row, 60)
	}

	legendRow := calendar.WeeksPerMonth + 4
	for i, entry := range calendar.Legend() {
		cell := cellName(i+1, legendRow)
		f.SetCellValue(calendarSheet, cell, entry.Label)
		f.SetCellStyle(calendarSheet, cell, cell, st.fill(entry.Color))
	}

	f.SetColWidth(calendarSheet, "A", columnLetter(calendar.DaysPerWeek), 18)
	return nil
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, st *styles, view View) error {
	if _, err := f.NewSheet(dashboardSheet); err != nil {
		return err
	}

	f.SetCellValue(dashboardSheet, "A1", "Generated:")
	f.SetCellValue(dashboardSheet, "B1", view.GeneratedAt.Format("02-01-06"))
	if view.Fallback() {
		f.SetCellValue(dashboardSheet, "A2", "Not part of any team: showing personal tasks")
	}

	row := 4
	for col, h := range []string{"Task Status", "Tasks"} {
		cell := cellName(col+1, row)
		f.SetCellValue(dashboardSheet, cell, h)
		f.SetCellStyle(dashboardSheet, cell, cell, st.header)
	}

	total := 0
	for _, section := range view.Sections {
		row++
		f.SetCellValue(dashboardSheet, cellName(1, row), section.Label)
		f.SetCellStyle(dashboardSheet, cellName(1, row), cellName(1, row), st.fill(section.Color))
		f.SetCellValue(dashboardSheet, cellName(2, row), section.Count())
		total += section.Count()
	}
	row++
	f.SetCellValue(dashboardSheet, cellName(1, row), "Total")
	f.SetCellValue(dashboardSheet, cellName(2, row), total)

	f.SetColWidth(dashboardSheet, "A", "A", 20)
	f.SetColWidth(dashboardSheet, "B", "B", 12)
	return nil
}

func (e *ExcelExporter) createSectionSheet(f *excelize.File, st *styles, section board.Section) error {
	sheetName := sanitizeSheetName(section.Label)
	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	headers := []string{"#", "Task", "Assignee", "Deadline", "Priority"}
	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, st.header)
	}

	if section.IsEmpty {
		f.SetCellValue(sheetName, "B2", "No tasks")
	}
	for i, card := range section.Cards {
		row := i + 2
		f.SetCellValue(sheetName, cellName(1, row), i+1)
		f.SetCellValue(sheetName, cellName(2, row), card.Title)
		f.SetCellValue(sheetName, cellName(3, row), card.Assignee)
		f.SetCellValue(sheetName, cellName(4, row), card.Deadline)
		f.SetCellValue(sheetName, cellName(5, row), card.Priority)
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "E", 18)

	return f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func columnLetter(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

func sanitizeSheetName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")

	if len(name) > 31 {
		name = name[:31]
	}

	return name
}
