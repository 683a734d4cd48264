package tui

type Page int

const (
	PageHome Page = iota
	PageUserDashboard
	PageTeamDashboard
	PageCalendar
)

func (p Page) String() string {
	switch p {
	case PageUserDashboard:
		return "User Dashboard"
	case PageTeamDashboard:
		return "Team Dashboard"
	case PageCalendar:
		return "Calendar"
	default:
		return "Home"
	}
}

// DropdownItems are the entries under the Dashboards menu.
var DropdownItems = []Page{PageUserDashboard, PageTeamDashboard}

// Nav is the navigation bar: Home, a Dashboards dropdown and Calendar.
// Choosing a dropdown entry collapses the dropdown.
type Nav struct {
	page         Page
	dropdownOpen bool
	selected     int
}

func (n Nav) Page() Page { return n.page }

func (n Nav) DropdownOpen() bool { return n.dropdownOpen }

// Selected is the highlighted dropdown entry.
func (n Nav) Selected() int { return n.selected }

func (n *Nav) ToggleDropdown() {
	n.dropdownOpen = !n.dropdownOpen
	n.selected = 0
}

func (n *Nav) CloseDropdown() {
	n.dropdownOpen = false
}

// Move shifts the dropdown highlight, wrapping around.
func (n *Nav) Move(delta int) {
	if !n.dropdownOpen {
		return
	}
	n.selected = (n.selected + delta + len(DropdownItems)) % len(DropdownItems)
}

// Choose activates the highlighted dropdown entry.
func (n *Nav) Choose() Page {
	if n.dropdownOpen {
		n.Go(DropdownItems[n.selected])
	}
	return n.page
}

// Go switches page and collapses the dropdown.
func (n *Nav) Go(p Page) {
	n.page = p
	n.dropdownOpen = false
}
