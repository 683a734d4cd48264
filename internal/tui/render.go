package tui

import (
	"fmt"
	"strings"

	"github.com/Afrawles/taskdash/internal/board"
	"github.com/Afrawles/taskdash/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

const (
	cellWidth       = 16
	eventsPerCell   = 2
	cardIndentation = 2
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#c0392b")).Padding(0, 1)
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0392b"))
	navStyle      = lipgloss.NewStyle().Padding(0, 2)
	navActive     = navStyle.Bold(true).Underline(true)
	cellStyle     = lipgloss.NewStyle().Width(cellWidth).Height(eventsPerCell + 2).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#dddddd"))
	outsideStyle  = cellStyle.Foreground(lipgloss.Color("#aaaaaa"))
	todayStyle    = cellStyle.BorderForeground(lipgloss.Color("#f6ad55"))
	cardStyle     = lipgloss.NewStyle().PaddingLeft(cardIndentation)
)

func swatch(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(textColorFor(color))).
		Background(lipgloss.Color(color))
}

func textColorFor(bg string) string {
	if bg == calendar.PastColor {
		return "#333333"
	}
	return calendar.TextColor
}

// RenderLegend prints the status colour key.
func RenderLegend() string {
	parts := make([]string, 0, len(calendar.Legend()))
	for _, e := range calendar.Legend() {
		parts = append(parts, swatch(e.Color).Render("  ")+" "+e.Label)
	}
	return strings.Join(parts, "   ")
}

// RenderMonth draws the day grid with coloured, truncated event titles.
func RenderMonth(m calendar.Month) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title()))
	b.WriteString("\n")

	header := make([]string, 0, calendar.DaysPerWeek)
	for _, name := range calendar.WeekdayNames {
		header = append(header, lipgloss.NewStyle().Width(cellWidth+2).Align(lipgloss.Center).Render(name))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for _, week := range m.Weeks {
		cells := make([]string, 0, calendar.DaysPerWeek)
		for _, c := range week {
			cells = append(cells, renderCell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func renderCell(c calendar.Cell) string {
	style := cellStyle
	switch {
	case c.Today:
		style = todayStyle
	case !c.InMonth:
		style = outsideStyle
	}

	lines := []string{fmt.Sprintf("%d", c.Date.Day())}
	for i, ev := range c.Events {
		if i == eventsPerCell {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("+%d more", len(c.Events)-eventsPerCell)))
			break
		}
		lines = append(lines, swatch(ev.Background()).Render(truncate(ev.Title, cellWidth)))
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderBoard draws the status accordion. cursor highlights a section
// header; pass -1 for none.
func RenderBoard(sections []board.Section, acc board.Accordion, cursor int) string {
	var b strings.Builder
	for i, s := range sections {
		arrow := "▼"
		if acc.IsOpen(s.Status) {
			arrow = "▲"
		}
		header := fmt.Sprintf(" %s (%d) %s ", s.Label, s.Count(), arrow)
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		b.WriteString(marker + swatch(s.Color).Bold(true).Render(header) + "\n")

		if !acc.IsOpen(s.Status) {
			continue
		}
		if s.IsEmpty {
			b.WriteString(cardStyle.Render(mutedStyle.Render("No tasks")) + "\n")
			continue
		}
		for _, c := range s.Cards {
			b.WriteString(cardStyle.Render(RenderCard(c)) + "\n")
		}
	}
	return b.String()
}

func RenderCard(c board.Card) string {
	return fmt.Sprintf("Task: %s | Assignee: %s | Deadline: %s | Priority: %s",
		c.Title, c.Assignee, c.Deadline, c.Priority)
}

// RenderFallbackNote is shown when personal tasks replace the team's.
func RenderFallbackNote() string {
	return fallbackStyle.Render("You are not part of any team. Showing your own tasks.")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
