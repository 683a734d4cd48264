package board

import "github.com/Afrawles/taskdash/internal/tasks"

// Accordion tracks which section is expanded. At most one is open at a time;
// the zero value is closed.
type Accordion struct {
	open   tasks.Status
	isOpen bool
}

// Toggle closes the section if it is the open one, otherwise opens it and
// closes any other.
func (a *Accordion) Toggle(status tasks.Status) {
	if a.isOpen && a.open == status {
		a.Close()
		return
	}
	a.open = status
	a.isOpen = true
}

func (a *Accordion) Close() {
	a.open = ""
	a.isOpen = false
}

func (a Accordion) IsOpen(status tasks.Status) bool {
	return a.isOpen && a.open == status
}

// Open returns the expanded status, if any.
func (a Accordion) Open() (tasks.Status, bool) {
	return a.open, a.isOpen
}
