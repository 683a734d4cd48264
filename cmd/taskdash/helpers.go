package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Afrawles/taskdash/internal/tasks"
)

// parseMonth reads a YYYY-MM value. An empty value means the month of now.
func parseMonth(input string, now time.Time) (time.Time, error) {
	if input == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(input), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", input)
	}
	return t, nil
}

// parseFilter validates the --filter-by field. A value without a field
// filters by name.
func parseFilter(field, value string) (tasks.Filter, error) {
	value = strings.TrimSpace(value)
	if field == "" {
		if value == "" {
			return tasks.Filter{}, nil
		}
		field = string(tasks.FilterName)
	}
	f := tasks.FilterField(strings.ToLower(strings.TrimSpace(field)))
	for _, known := range tasks.FilterFields {
		if f == known {
			return tasks.Filter{Field: f, Value: value}, nil
		}
	}
	return tasks.Filter{}, fmt.Errorf("unknown filter field %q (valid: %s)", field, joinFields())
}

// parseOpen maps the --open value to a board status. Empty means none.
func parseOpen(input string) (tasks.Status, bool, error) {
	if strings.TrimSpace(input) == "" {
		return "", false, nil
	}
	s := tasks.ParseStatus(input)
	if !s.Known() {
		return "", false, fmt.Errorf("unknown status %q", input)
	}
	return s, true, nil
}

func joinFields() string {
	names := make([]string, len(tasks.FilterFields))
	for i, f := range tasks.FilterFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
