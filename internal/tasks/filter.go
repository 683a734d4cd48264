package tasks

import "strings"

type FilterField string

const (
	FilterName     FilterField = "name"
	FilterPriority FilterField = "priority"
	FilterDeadline FilterField = "deadline"
	FilterAssignee FilterField = "assignee"
)

// FilterFields lists the supported fields in the order the board offers them.
var FilterFields = []FilterField{FilterName, FilterPriority, FilterDeadline, FilterAssignee}

// Filter is a single-field substring filter. The zero value matches everything.
type Filter struct {
	Field FilterField
	Value string
}

func (f Filter) Active() bool {
	return f.Field != "" && f.Value != ""
}

// Predicate returns the match function for f. Unknown fields and an empty
// field or value match every task.
func (f Filter) Predicate() func(Task) bool {
	if !f.Active() {
		return matchAll
	}

	needle := strings.ToLower(f.Value)
	switch FilterField(strings.ToLower(string(f.Field))) {
	case FilterName:
		return func(t Task) bool {
			return t.Title != "" && strings.Contains(strings.ToLower(t.Title), needle)
		}
	case FilterPriority:
		return func(t Task) bool {
			return t.Priority != "" && strings.Contains(strings.ToLower(t.Priority), needle)
		}
	case FilterDeadline:
		// dates are not case-ambiguous
		return func(t Task) bool {
			return t.DueDate != "" && strings.Contains(t.DueDate, f.Value)
		}
	case FilterAssignee:
		return func(t Task) bool {
			name := t.AssigneeName()
			return name != "" && strings.Contains(strings.ToLower(name), needle)
		}
	default:
		return matchAll
	}
}

func (f Filter) Label() string {
	switch FilterField(strings.ToLower(string(f.Field))) {
	case FilterName:
		return "Task Name"
	case FilterPriority:
		return "Task Priority"
	case FilterDeadline:
		return "Task Deadline"
	case FilterAssignee:
		return "Task Assignee"
	default:
		return "No Filter"
	}
}

func matchAll(Task) bool { return true }
