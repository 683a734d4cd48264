package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Afrawles/taskdash/internal/board"
	"github.com/Afrawles/taskdash/internal/calendar"
	"github.com/Afrawles/taskdash/internal/report"
	"github.com/Afrawles/taskdash/internal/tasks"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SnapshotLoader fetches task snapshots. *tasks.Loader implements it.
type SnapshotLoader interface {
	Load(ctx context.Context, s tasks.Session) (tasks.Snapshot, error)
	LoadPersonal(ctx context.Context, s tasks.Session) (tasks.Snapshot, error)
}

type snapshotMsg struct {
	page Page
	seq  int
	snap tasks.Snapshot
}

type fetchErrMsg struct {
	page Page
	seq  int
	err  error
}

// pageState is the last snapshot a page received. A failed fetch leaves it
// untouched. At most one fetch per page is outstanding; seq identifies it.
type pageState struct {
	snap      tasks.Snapshot
	loaded    bool
	inFlight  bool
	seq       int
	accordion board.Accordion
	cursor    int
}

// Model is the interactive dashboard shell.
type Model struct {
	ctx     context.Context
	loader  SnapshotLoader
	session tasks.Session
	now     func() time.Time

	nav      Nav
	pages    map[Page]*pageState
	month    time.Time
	filterAt int
	input    textinput.Model
	editing  bool
	spinner  spinner.Model
	notice   string
	quitting bool
}

func NewModel(ctx context.Context, loader SnapshotLoader, session tasks.Session, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	in := textinput.New()
	in.Placeholder = "filter value"
	in.CharLimit = 64
	in.Prompt = "/ "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	today := now()
	return &Model{
		ctx:     ctx,
		loader:  loader,
		session: session,
		now:     now,
		pages: map[Page]*pageState{
			PageUserDashboard: {},
			PageTeamDashboard: {},
			PageCalendar:      {},
		},
		month:   time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()),
		input:   in,
		spinner: s,
	}
}

// Run starts the program on the alternate screen.
func Run(ctx context.Context, loader SnapshotLoader, session tasks.Session) error {
	m := NewModel(ctx, loader, session, time.Now)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Filter is the team board filter currently applied.
func (m *Model) Filter() tasks.Filter {
	return tasks.Filter{Field: tasks.FilterFields[m.filterAt], Value: m.input.Value()}
}

func (m *Model) Page() Page { return m.nav.Page() }

// Notice is the pending error notification, empty when there is none.
func (m *Model) Notice() string { return m.notice }

// activate switches page and fetches its tasks.
func (m *Model) activate(p Page) tea.Cmd {
	m.nav.Go(p)
	m.editing = false
	m.input.Blur()
	if p == PageHome {
		return nil
	}
	return m.fetch(p)
}

// fetch starts a load for p unless one is already running.
func (m *Model) fetch(p Page) tea.Cmd {
	st := m.pages[p]
	if st.inFlight {
		return nil
	}
	st.inFlight = true
	st.seq++
	seq := st.seq
	return func() tea.Msg {
		var (
			snap tasks.Snapshot
			err  error
		)
		if p == PageUserDashboard {
			snap, err = m.loader.LoadPersonal(m.ctx, m.session)
		} else {
			snap, err = m.loader.Load(m.ctx, m.session)
		}
		if err != nil {
			return fetchErrMsg{page: p, seq: seq, err: err}
		}
		return snapshotMsg{page: p, seq: seq, snap: snap}
	}
}

// settle marks the fetch identified by seq as finished. Replies to an
// earlier fetch are reported as stale.
func (m *Model) settle(p Page, seq int) (*pageState, bool) {
	st := m.pages[p]
	if seq != st.seq {
		return st, false
	}
	st.inFlight = false
	return st, true
}

// Loading reports whether any page has a fetch outstanding.
func (m *Model) Loading() bool {
	for _, st := range m.pages {
		if st.inFlight {
			return true
		}
	}
	return false
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		st, current := m.settle(msg.page, msg.seq)
		if !current {
			return m, nil
		}
		st.snap = msg.snap
		st.loaded = true
		return m, nil

	case fetchErrMsg:
		if _, current := m.settle(msg.page, msg.seq); !current {
			return m, nil
		}
		m.notice = fmt.Sprintf("%s: %v", msg.page, msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// the notification blocks until dismissed
	if m.notice != "" {
		if key == "enter" || key == "esc" {
			m.notice = ""
		}
		return m, nil
	}

	if m.editing {
		switch key {
		case "enter", "esc":
			m.editing = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.nav.DropdownOpen() {
		switch key {
		case "up", "k":
			m.nav.Move(-1)
		case "down", "j":
			m.nav.Move(1)
		case "enter":
			return m, m.activate(m.nav.Choose())
		case "u":
			return m, m.activate(PageUserDashboard)
		case "t":
			return m, m.activate(PageTeamDashboard)
		case "esc", "d":
			m.nav.CloseDropdown()
		}
		return m, nil
	}

	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "h":
		return m, m.activate(PageHome)
	case "d":
		m.nav.ToggleDropdown()
		return m, nil
	case "c":
		return m, m.activate(PageCalendar)
	case "r":
		if m.Page() != PageHome {
			return m, m.fetch(m.Page())
		}
		return m, nil
	}

	switch m.Page() {
	case PageCalendar:
		m.handleCalendarKey(key)
	case PageUserDashboard, PageTeamDashboard:
		return m, m.handleBoardKey(key)
	}
	return m, nil
}

func (m *Model) handleCalendarKey(key string) {
	switch key {
	case "left", "p":
		m.month = m.month.AddDate(0, -1, 0)
	case "right", "n":
		m.month = m.month.AddDate(0, 1, 0)
	case "home":
		today := m.now()
		m.month = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	}
}

func (m *Model) handleBoardKey(key string) tea.Cmd {
	st := m.pages[m.Page()]
	order := tasks.StatusOrder
	switch key {
	case "up", "k":
		st.cursor = (st.cursor - 1 + len(order)) % len(order)
	case "down", "j":
		st.cursor = (st.cursor + 1) % len(order)
	case "enter", " ":
		st.accordion.Toggle(order[st.cursor])
	case "f":
		if m.Page() == PageTeamDashboard {
			m.filterAt = (m.filterAt + 1) % len(tasks.FilterFields)
		}
	case "/":
		if m.Page() == PageTeamDashboard {
			m.editing = true
			return m.input.Focus()
		}
	}
	return nil
}

// view builds the render model for a page. Only the team board is filtered.
func (m *Model) view(p Page) report.View {
	f := tasks.Filter{}
	if p == PageTeamDashboard {
		f = m.Filter()
	}
	return report.Build(m.pages[p].snap, f, m.now())
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render("Error: "+m.notice) + "\n")
		b.WriteString(mutedStyle.Render("press enter to dismiss") + "\n\n")
	}
	if m.Loading() {
		b.WriteString(m.spinner.View() + " Loading tasks...\n\n")
	}

	switch p := m.Page(); p {
	case PageHome:
		b.WriteString(titleStyle.Render("Task Dashboard"))
		b.WriteString("\nOpen the Dashboards menu with d or the calendar with c.\n")
	case PageCalendar:
		b.WriteString(m.renderCalendar())
	default:
		b.WriteString(m.renderBoard(p))
	}

	b.WriteString("\n" + mutedStyle.Render(m.help()))
	return b.String()
}

func (m *Model) renderNav() string {
	item := func(label string, active bool) string {
		if active {
			return navActive.Render(label)
		}
		return navStyle.Render(label)
	}
	page := m.Page()
	dashboards := page == PageUserDashboard || page == PageTeamDashboard
	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		item("Home", page == PageHome),
		item("Dashboards ▾", dashboards),
		item("Calendar", page == PageCalendar),
	)
	if !m.nav.DropdownOpen() {
		return bar
	}

	lines := []string{bar}
	for i, p := range DropdownItems {
		marker := "   "
		if i == m.nav.Selected() {
			marker = " > "
		}
		lines = append(lines, navStyle.Render(marker+p.String()))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCalendar() string {
	view := m.view(PageCalendar)
	month := calendar.NewMonth(m.month, view.Events, m.now())
	parts := []string{RenderLegend(), "", RenderMonth(month)}
	if !m.pages[PageCalendar].loaded {
		parts = append(parts, mutedStyle.Render("No tasks loaded"))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderBoard(p Page) string {
	st := m.pages[p]
	view := m.view(p)

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.String()) + "\n")
	if view.Fallback() {
		b.WriteString(RenderFallbackNote() + "\n\n")
	}
	if p == PageTeamDashboard {
		b.WriteString(fmt.Sprintf("Filter by: %s  ", view.Filter.Label()))
		b.WriteString(m.input.View() + "\n\n")
	}
	b.WriteString(RenderBoard(view.Sections, st.accordion, st.cursor))
	return b.String()
}

func (m *Model) help() string {
	base := "h home • d dashboards • c calendar • r refresh • q quit"
	switch m.Page() {
	case PageCalendar:
		return "←/→ month • " + base
	case PageTeamDashboard:
		return "↑/↓ move • enter toggle • f field • / filter • " + base
	case PageUserDashboard:
		return "↑/↓ move • enter toggle • " + base
	}
	return base
}
