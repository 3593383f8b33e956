package prediction

import "time"

// Navigation is the month currently shown by a calendar.
type Navigation struct {
	Year  int
	Month time.Month
}

// Shift moves the navigation by offset months, rolling the year over in
// either direction.
func (nav Navigation) Shift(offset int) Navigation {
	index := nav.Year*12 + int(nav.Month-1) + offset
	year := index / 12
	month := index % 12
	if month < 0 {
		month += 12
		year--
	}
	return Navigation{Year: year, Month: time.Month(month + 1)}
}

// CalendarSession is a caller-owned calendar over one cached projection.
// Navigating never recomputes the cycles.
type CalendarSession struct {
	cycles     []PredictedCycle
	navigation Navigation
}

// NewCalendarSession opens on the month of the first predicted period, or on
// the month of today when nothing was predicted.
func NewCalendarSession(cycles []PredictedCycle, today time.Time) *CalendarSession {
	anchor := today
	if len(cycles) > 0 {
		anchor = cycles[0].PeriodStart
	}
	return &CalendarSession{
		cycles:     cycles,
		navigation: Navigation{Year: anchor.Year(), Month: anchor.Month()},
	}
}

func (session *CalendarSession) Navigation() Navigation {
	return session.navigation
}

func (session *CalendarSession) Cycles() []PredictedCycle {
	return session.cycles
}

func (session *CalendarSession) JumpTo(year int, month time.Month) {
	session.navigation = Navigation{Year: year, Month: time.January}.Shift(int(month) - 1)
}

func (session *CalendarSession) Shift(offset int) Navigation {
	session.navigation = session.navigation.Shift(offset)
	return session.navigation
}

func (session *CalendarSession) Month(today time.Time) MonthView {
	return BuildMonth(session.navigation.Year, session.navigation.Month, session.cycles, today)
}
