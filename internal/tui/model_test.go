package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Afrawles/taskdash/internal/board"
	"github.com/Afrawles/taskdash/internal/calendar"
	"github.com/Afrawles/taskdash/internal/tasks"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

type stubLoader struct {
	team     tasks.Snapshot
	personal tasks.Snapshot
	err      error
}

func (s *stubLoader) Load(context.Context, tasks.Session) (tasks.Snapshot, error) {
	return s.team, s.err
}

func (s *stubLoader) LoadPersonal(context.Context, tasks.Session) (tasks.Snapshot, error) {
	return s.personal, s.err
}

func teamSnapshot() tasks.Snapshot {
	return tasks.Snapshot{
		Origin: tasks.OriginTeam,
		Input: tasks.Grouped(map[string][]tasks.RawTask{
			"created": {
				{ID: "1", Title: "Write docs", Status: "created", DueDate: "2024-06-14", AssignedTo: &tasks.Assignee{Username: "ana"}},
				{ID: "2", Title: "Plan sprint", Status: "created", DueDate: "2024-06-20", AssignedTo: &tasks.Assignee{Username: "bob"}},
			},
		}),
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fetchKeys are the keys whose command loads tasks. Other commands, such as
// cursor blinks, are not run.
var fetchKeys = map[string]bool{"t": true, "u": true, "c": true, "r": true}

// press sends a key and feeds a resulting fetch back into the model.
func press(t *testing.T, m *Model, s string) {
	t.Helper()
	_, cmd := m.Update(key(s))
	if cmd == nil || !fetchKeys[s] {
		return
	}
	switch msg := cmd().(type) {
	case snapshotMsg, fetchErrMsg:
		m.Update(msg)
	}
}

func newTestModel(loader SnapshotLoader) *Model {
	return NewModel(context.Background(), loader, tasks.Session{UserID: "1", Token: "t"}, func() time.Time { return today })
}

func TestNav(t *testing.T) {
	t.Run("Should collapse the dropdown after choosing", func(t *testing.T) {
		var n Nav
		n.ToggleDropdown()
		n.Move(1)
		assert.Equal(t, PageTeamDashboard, n.Choose())
		assert.False(t, n.DropdownOpen())
	})

	t.Run("Should wrap the highlight", func(t *testing.T) {
		var n Nav
		n.ToggleDropdown()
		n.Move(-1)
		assert.Equal(t, 1, n.Selected())
	})

	t.Run("Should ignore moves while closed", func(t *testing.T) {
		var n Nav
		n.Move(1)
		assert.Equal(t, 0, n.Selected())
		assert.Equal(t, PageHome, n.Choose())
	})
}

func TestModel_Navigation(t *testing.T) {
	t.Run("Should load the team board from the dropdown", func(t *testing.T) {
		m := newTestModel(&stubLoader{team: teamSnapshot()})
		press(t, m, "d")
		press(t, m, "t")

		assert.Equal(t, PageTeamDashboard, m.Page())
		assert.True(t, m.pages[PageTeamDashboard].loaded)
		assert.Contains(t, m.View(), "Team Dashboard")
	})

	t.Run("Should render the calendar month", func(t *testing.T) {
		m := newTestModel(&stubLoader{team: teamSnapshot()})
		press(t, m, "c")

		out := m.View()
		assert.Contains(t, out, "June 2024")
		assert.Contains(t, out, "Write docs")
	})

	t.Run("Should page between months", func(t *testing.T) {
		m := newTestModel(&stubLoader{team: teamSnapshot()})
		press(t, m, "c")
		press(t, m, "right")
		assert.Equal(t, time.July, m.month.Month())
		press(t, m, "left")
		press(t, m, "left")
		assert.Equal(t, time.May, m.month.Month())
	})
}

func TestModel_Board(t *testing.T) {
	t.Run("Should keep at most one section open", func(t *testing.T) {
		m := newTestModel(&stubLoader{team: teamSnapshot()})
		press(t, m, "d")
		press(t, m, "t")

		press(t, m, "enter")
		st := m.pages[PageTeamDashboard]
		assert.True(t, st.accordion.IsOpen(tasks.StatusCreated))
		assert.Contains(t, m.View(), "Write docs")

		press(t, m, "down")
		press(t, m, "enter")
		assert.False(t, st.accordion.IsOpen(tasks.StatusCreated))
		assert.True(t, st.accordion.IsOpen(tasks.StatusInProgress))
	})

	t.Run("Should filter the team board by the typed value", func(t *testing.T) {
		m := newTestModel(&stubLoader{team: teamSnapshot()})
		press(t, m, "d")
		press(t, m, "t")
		press(t, m, "f")
		press(t, m, "f")
		press(t, m, "f")
		press(t, m, "/")
		press(t, m, "b")
		press(t, m, "o")
		press(t, m, "enter")

		assert.Equal(t, tasks.Filter{Field: tasks.FilterAssignee, Value: "bo"}, m.Filter())

		view := m.view(PageTeamDashboard)
		require.Len(t, view.Sections[0].Cards, 1)
		assert.Equal(t, "Plan sprint", view.Sections[0].Cards[0].Title)
		assert.Len(t, view.Events, 2)
	})
}

func TestModel_FetchError(t *testing.T) {
	t.Run("Should block with a notice and keep the previous tasks", func(t *testing.T) {
		loader := &stubLoader{team: teamSnapshot()}
		m := newTestModel(loader)
		press(t, m, "c")
		require.True(t, m.pages[PageCalendar].loaded)

		loader.err = &tasks.NetworkError{Op: "get team tasks", Err: errors.New("connection refused")}
		press(t, m, "r")

		assert.Contains(t, m.Notice(), "connection refused")
		assert.Contains(t, m.View(), "Write docs")

		press(t, m, "right")
		assert.Equal(t, time.June, m.month.Month())

		press(t, m, "enter")
		assert.Empty(t, m.Notice())
	})
}

func TestRender(t *testing.T) {
	t.Run("Should mark an empty open section", func(t *testing.T) {
		sections := board.Present(map[tasks.Status][]tasks.Task{}, tasks.StatusOrder)
		var acc board.Accordion
		acc.Toggle(tasks.StatusValidating)

		out := RenderBoard(sections, acc, -1)
		assert.Contains(t, out, "No tasks")
		assert.Equal(t, 1, strings.Count(out, "▲"))
	})

	t.Run("Should summarise overflowing days", func(t *testing.T) {
		day := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		events := []calendar.Event{
			{Title: "a", Date: day, Color: "#ea6671"},
			{Title: "b", Date: day, Color: "#ea6671"},
			{Title: "c", Date: day, Color: "#ea6671"},
		}
		out := RenderMonth(calendar.NewMonth(day, events, today))
		assert.Contains(t, out, "+1 more")
	})

	t.Run("Should truncate long titles", func(t *testing.T) {
		assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
		assert.Equal(t, "abc", truncate("abc", 5))
	})
}

type countingLoader struct {
	stubLoader
	calls int
}

func (c *countingLoader) Load(ctx context.Context, s tasks.Session) (tasks.Snapshot, error) {
	c.calls++
	return c.stubLoader.Load(ctx, s)
}

// run executes every non-nil command and returns the messages they produce.
func run(cmds ...tea.Cmd) []tea.Msg {
	var msgs []tea.Msg
	for _, cmd := range cmds {
		if cmd != nil {
			msgs = append(msgs, cmd())
		}
	}
	return msgs
}

func TestModel_SingleFetch(t *testing.T) {
	t.Run("Should not start a second load while one is outstanding", func(t *testing.T) {
		loader := &countingLoader{stubLoader: stubLoader{team: teamSnapshot()}}
		m := newTestModel(loader)

		_, first := m.Update(key("c"))
		_, refresh := m.Update(key("r"))
		_, again := m.Update(key("c"))

		msgs := run(first, refresh, again)
		assert.Equal(t, 1, loader.calls)
		require.Len(t, msgs, 1)
		assert.True(t, m.Loading())

		m.Update(msgs[0])
		assert.False(t, m.Loading())
		assert.True(t, m.pages[PageCalendar].loaded)

		_, next := m.Update(key("r"))
		run(next)
		assert.Equal(t, 2, loader.calls)
	})

	t.Run("Should stay loading until every page has its reply", func(t *testing.T) {
		m := newTestModel(&stubLoader{team: teamSnapshot()})

		_, cal := m.Update(key("c"))
		m.Update(key("d"))
		_, team := m.Update(key("t"))

		m.Update(cal())
		assert.True(t, m.Loading())
		assert.Contains(t, m.View(), "Loading tasks")

		m.Update(team())
		assert.False(t, m.Loading())
	})

	t.Run("Should drop a reply to an earlier fetch", func(t *testing.T) {
		m := newTestModel(&stubLoader{team: teamSnapshot()})
		press(t, m, "c")
		st := m.pages[PageCalendar]
		current := st.seq

		m.Update(snapshotMsg{page: PageCalendar, seq: current - 1, snap: tasks.Snapshot{Input: tasks.Flat(nil)}})
		assert.Equal(t, current, st.seq)
		assert.Contains(t, m.View(), "Write docs")

		m.Update(fetchErrMsg{page: PageCalendar, seq: current - 1, err: errors.New("late failure")})
		assert.Empty(t, m.Notice())
	})
}

func TestModel_Fallback(t *testing.T) {
	t.Run("Should show personal tasks with a note and no alert", func(t *testing.T) {
		snap := tasks.Snapshot{
			Origin: tasks.OriginPersonalFallback,
			Input: tasks.Flat([]tasks.RawTask{
				{ID: "9", Name: "Solo task", Status: "created", Deadline: "2024-06-16"},
			}),
		}
		m := newTestModel(&stubLoader{team: snap})
		press(t, m, "d")
		press(t, m, "t")
		press(t, m, "enter")

		assert.Empty(t, m.Notice())
		out := m.View()
		assert.Contains(t, out, "You are not part of any team")
		assert.Contains(t, out, "Solo task")
		assert.NotContains(t, out, "Error:")
	})
}
