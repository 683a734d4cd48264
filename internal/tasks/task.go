package tasks

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ID is an opaque task identifier. The backend sends numbers, some fixtures send strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

type Assignee struct {
	ID       ID     `json:"id,omitempty"`
	Username string `json:"username"`
}

// RawTask is a task record as returned by either task endpoint.
type RawTask struct {
	ID                 ID        `json:"id"`
	Title              string    `json:"title,omitempty"`
	Name               string    `json:"name,omitempty"`
	Description        string    `json:"description,omitempty"`
	DueDate            string    `json:"dueDate,omitempty"`
	Deadline           string    `json:"deadline,omitempty"`
	Status             string    `json:"status,omitempty"`
	Priority           string    `json:"priority,omitempty"`
	AssignedTo         *Assignee `json:"assignedTo,omitempty"`
	AssignedToUsername string    `json:"assignedToUsername,omitempty"`
}

// Task is the endpoint-independent representation every view works from.
type Task struct {
	ID          ID        `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     string    `json:"dueDate,omitempty"`
	Status      Status    `json:"status"`
	RawStatus   string    `json:"rawStatus,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	Assignee    *Assignee `json:"assignee,omitempty"`
}

func (t Task) HasDueDate() bool {
	return strings.TrimSpace(t.DueDate) != ""
}

// AssigneeName returns the assignee username, or "" when unassigned.
func (t Task) AssigneeName() string {
	if t.Assignee == nil {
		return ""
	}
	return t.Assignee.Username
}

func (t Task) DisplayPriority() string {
	return Capitalize(t.Priority)
}

// Capitalize upper-cases the first letter and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
