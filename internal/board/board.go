package board

import (
	"github.com/Afrawles/taskdash/internal/tasks"
)

// Unassigned is shown on cards whose task has no assignee.
const Unassigned = "Unassigned"

type Card struct {
	ID       tasks.ID `json:"id"`
	Title    string   `json:"title"`
	Assignee string   `json:"assignee"`
	Deadline string   `json:"deadline"`
	Priority string   `json:"priority"`
}

// Section is one collapsible status group. Empty sections are still emitted.
type Section struct {
	Status  tasks.Status `json:"status"`
	Label   string       `json:"label"`
	Color   string       `json:"color"`
	Cards   []Card       `json:"cards"`
	IsEmpty bool         `json:"isEmpty"`
}

func (s Section) Count() int {
	return len(s.Cards)
}

// Present builds one section per status in order, regardless of whether the
// status has tasks.
func Present(byStatus map[tasks.Status][]tasks.Task, order []tasks.Status) []Section {
	sections := make([]Section, 0, len(order))
	for _, status := range order {
		list := byStatus[status]
		cards := make([]Card, 0, len(list))
		for _, t := range list {
			cards = append(cards, NewCard(t))
		}
		sections = append(sections, Section{
			Status:  status,
			Label:   status.Label(),
			Color:   status.Color(),
			Cards:   cards,
			IsEmpty: len(cards) == 0,
		})
	}
	return sections
}

func NewCard(t tasks.Task) Card {
	assignee := t.AssigneeName()
	if assignee == "" {
		assignee = Unassigned
	}
	return Card{
		ID:       t.ID,
		Title:    t.Title,
		Assignee: assignee,
		Deadline: t.DueDate,
		Priority: t.DisplayPriority(),
	}
}
