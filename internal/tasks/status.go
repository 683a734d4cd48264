package tasks

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusValidating Status = "validating"
	StatusCompleted  Status = "completed"
	StatusUnknown    Status = "unknown"
)

const DefaultColor = "#888888"

// StatusOrder is the fixed lifecycle order used for grouping and display.
var StatusOrder = []Status{
	StatusCreated,
	StatusInProgress,
	StatusValidating,
	StatusCompleted,
}

// statusAliases maps every lower-cased external spelling onto the canonical status.
var statusAliases = map[string]Status{
	"created":     StatusCreated,
	"in_progress": StatusInProgress,
	"in-progress": StatusInProgress,
	"in progress": StatusInProgress,
	"validating":  StatusValidating,
	"completed":   StatusCompleted,
}

var statusColors = map[Status]string{
	StatusCreated:    "#ea6671",
	StatusInProgress: "#f6ad55",
	StatusValidating: "#686ad3",
	StatusCompleted:  "#45cf4e",
}

// ParseStatus resolves any external spelling. Unrecognized values yield StatusUnknown.
func ParseStatus(raw string) Status {
	if s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnknown
}

func (s Status) Known() bool {
	_, ok := statusColors[s]
	return ok
}

func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return DefaultColor
}

// Label turns "in_progress" or "in-progress" into "In Progress".
func (s Status) Label() string {
	return Label(string(s))
}

func Label(identifier string) string {
	r := strings.NewReplacer("_", " ", "-", " ")
	return cases.Title(language.English).String(strings.TrimSpace(r.Replace(identifier)))
}

func (s Status) String() string {
	return string(s)
}
