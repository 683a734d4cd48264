package calendar

import (
	"sort"
	"time"
)

const (
	WeeksPerMonth = 6
	DaysPerWeek   = 7
)

type Cell struct {
	Date    time.Time
	InMonth bool
	Today   bool
	Events  []Event
}

// Month is a Sunday-first day grid with a fixed six-week height.
type Month struct {
	Year  int
	Month time.Month
	Weeks [WeeksPerMonth][DaysPerWeek]Cell
}

// NewMonth lays the events out on the grid of the month containing anchor.
// Events outside the visible range are dropped.
func NewMonth(anchor time.Time, events []Event, today time.Time) Month {
	loc := anchor.Location()
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	byDay := make(map[string][]Event)
	for _, e := range events {
		k := dayKey(e.Date.In(loc))
		byDay[k] = append(byDay[k], e)
	}

	m := Month{Year: first.Year(), Month: first.Month()}
	todayDay := Day(today.In(loc))
	for w := 0; w < WeeksPerMonth; w++ {
		for d := 0; d < DaysPerWeek; d++ {
			date := start.AddDate(0, 0, w*DaysPerWeek+d)
			dayEvents := byDay[dayKey(date)]
			sort.SliceStable(dayEvents, func(i, j int) bool {
				return dayEvents[i].Title < dayEvents[j].Title
			})
			m.Weeks[w][d] = Cell{
				Date:    date,
				InMonth: date.Month() == first.Month(),
				Today:   date.Equal(todayDay),
				Events:  dayEvents,
			}
		}
	}
	return m
}

func (m Month) Title() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Next and Prev return the first day of the adjacent months.
func (m Month) Next() time.Time {
	return time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, m.Weeks[0][0].Date.Location())
}

func (m Month) Prev() time.Time {
	return time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, m.Weeks[0][0].Date.Location())
}

// EventCount counts the events that landed inside the month.
func (m Month) EventCount() int {
	n := 0
	for _, week := range m.Weeks {
		for _, c := range week {
			if c.InMonth {
				n += len(c.Events)
			}
		}
	}
	return n
}

var WeekdayNames = [DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
