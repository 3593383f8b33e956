package prediction

import "time"

type DayKind string

const (
	DayNone      DayKind = "none"
	DayPeriod    DayKind = "period"
	DayOvulation DayKind = "ovulation"
	DayFertile   DayKind = "fertile"
)

// Classify labels a calendar day. Period wins over ovulation, ovulation over
// fertile; a day never carries two labels.
func Classify(day time.Time, cycles []PredictedCycle) DayKind {
	for _, cycle := range cycles {
		if cycle.PeriodSpan().Contains(day) {
			return DayPeriod
		}
	}
	for _, cycle := range cycles {
		if sameCalendarDay(day, cycle.OvulationDate) {
			return DayOvulation
		}
	}
	for _, cycle := range cycles {
		if cycle.FertileWindow.Contains(day) {
			return DayFertile
		}
	}
	return DayNone
}

type CalendarDay struct {
	Date    time.Time
	Day     int
	Kind    DayKind
	IsToday bool
}

// MonthView is one classified calendar month. LeadingBlanks is the number of
// empty cells before day 1 in a Sunday-first grid.
type MonthView struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Days          []CalendarDay
}

func BuildMonth(year int, month time.Month, cycles []PredictedCycle, today time.Time) MonthView {
	location := today.Location()
	if len(cycles) > 0 {
		location = cycles[0].PeriodStart.Location()
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, location)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayDate := DateAtLocation(today, location)

	view := MonthView{
		Year:          first.Year(),
		Month:         first.Month(),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]CalendarDay, 0, daysInMonth),
	}
	for offset := 0; offset < daysInMonth; offset++ {
		day := first.AddDate(0, 0, offset)
		view.Days = append(view.Days, CalendarDay{
			Date:    day,
			Day:     day.Day(),
			Kind:    Classify(day, cycles),
			IsToday: day.Equal(todayDate),
		})
	}
	return view
}

// Weeks lays the month out as rows of seven cells; nil marks an empty cell.
func (view MonthView) Weeks() [][]*CalendarDay {
	cells := make([]*CalendarDay, view.LeadingBlanks, view.LeadingBlanks+len(view.Days)+6)
	for index := range view.Days {
		cells = append(cells, &view.Days[index])
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}

	weeks := make([][]*CalendarDay, 0, len(cells)/7)
	for start := 0; start < len(cells); start += 7 {
		weeks = append(weeks, cells[start:start+7])
	}
	return weeks
}

func sameCalendarDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
