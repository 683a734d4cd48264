package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Afrawles/taskdash/internal/tasks"
)

// PastColor is the background of events whose day is before today.
const PastColor = "#e0e0e0"

const TextColor = "#ffffff"

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Event is one task placed on the calendar on its due date.
type Event struct {
	ID       tasks.ID     `json:"id"`
	Title    string       `json:"title"`
	Start    string       `json:"start"`
	Date     time.Time    `json:"date"`
	Status   tasks.Status `json:"status"`
	Color    string       `json:"color"`
	Past     bool         `json:"past"`
	Tooltip  string       `json:"tooltip"`
	Assignee string       `json:"assignee,omitempty"`
}

// Background is the fill the event is drawn with.
func (e Event) Background() string {
	if e.Past {
		return PastColor
	}
	return e.Color
}

// Project maps tasks onto calendar events. Tasks without a parseable due
// date are left out.
func Project(list []tasks.Task, today time.Time) []Event {
	events := make([]Event, 0, len(list))
	for _, t := range list {
		if !t.HasDueDate() {
			continue
		}
		due, ok := ParseDate(t.DueDate, today.Location())
		if !ok {
			continue
		}
		events = append(events, Event{
			ID:       t.ID,
			Title:    t.Title,
			Start:    t.DueDate,
			Date:     due,
			Status:   t.Status,
			Color:    t.Status.Color(),
			Past:     IsPast(due, today),
			Tooltip:  Tooltip(t),
			Assignee: t.AssigneeName(),
		})
	}
	return events
}

// IsPast compares at day granularity: due is past only when its day is
// strictly before today's.
func IsPast(due, today time.Time) bool {
	return Day(due.In(today.Location())).Before(Day(today))
}

// Day zeroes the time of day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate reads the date formats the backend emits. Values without a zone
// are read in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func Tooltip(t tasks.Task) string {
	assignee := t.AssigneeName()
	if assignee == "" {
		assignee = "N/A"
	}
	return fmt.Sprintf("Title: %s\nAssignee: %s\nStatus: %s\nPriority: %s",
		t.Title, assignee, t.RawStatus, t.DisplayPriority())
}

type LegendEntry struct {
	Status tasks.Status
	Label  string
	Color  string
}

func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(tasks.StatusOrder))
	for _, s := range tasks.StatusOrder {
		entries = append(entries, LegendEntry{Status: s, Label: s.Label(), Color: s.Color()})
	}
	return entries
}
