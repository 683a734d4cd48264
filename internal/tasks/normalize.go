package tasks

import "strings"

// Normalize converts a raw record from either endpoint into a Task.
// Missing optional fields stay absent; it never fails.
func Normalize(raw RawTask) Task {
	t := Task{
		ID:          raw.ID,
		Title:       firstNonEmpty(raw.Title, raw.Name),
		Description: raw.Description,
		DueDate:     firstNonEmpty(raw.DueDate, raw.Deadline),
		Status:      ParseStatus(raw.Status),
		RawStatus:   raw.Status,
		Priority:    strings.TrimSpace(raw.Priority),
	}

	switch {
	case raw.AssignedTo != nil && raw.AssignedTo.Username != "":
		a := *raw.AssignedTo
		t.Assignee = &a
	case raw.AssignedToUsername != "":
		t.Assignee = &Assignee{Username: raw.AssignedToUsername}
	}

	return t
}

// NormalizeAll normalizes a list, keeping the first occurrence of each ID.
func NormalizeAll(raws []RawTask) []Task {
	out := make([]Task, 0, len(raws))
	seen := make(map[ID]bool, len(raws))
	for _, raw := range raws {
		t := Normalize(raw)
		if t.ID != "" {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
		}
		out = append(out, t)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
