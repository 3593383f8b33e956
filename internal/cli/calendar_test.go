package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/abeba/internal/prediction"
)

var calendarBaseArgs = []string{
	"calendar",
	"--start", "2026-01-01",
	"--cycle-length", "28",
	"--luteal-phase", "14",
	"--horizon", "6",
}

func TestCalendarOpensOnFirstPredictedMonth(t *testing.T) {
	out, err := runCommand(t, append(calendarBaseArgs, "--lang", "en")...)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "January 2026", lines[0])
	assert.Contains(t, strings.ToLower(out), "sun")
	assert.Contains(t, out, "[10]")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "Period  Ovulation  Fertile window")
}

func TestCalendarNavigation(t *testing.T) {
	tests := []struct {
		name      string
		extra     []string
		wantTitle string
	}{
		{name: "shift forward", extra: []string{"--shift", "1"}, wantTitle: "February 2026"},
		{name: "shift back over year", extra: []string{"--shift", "-1"}, wantTitle: "December 2025"},
		{name: "jump", extra: []string{"--month", "2026-03"}, wantTitle: "March 2026"},
		{name: "jump then shift", extra: []string{"--month", "2026-11", "--shift", "3"}, wantTitle: "February 2027"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{}, calendarBaseArgs...), "--lang", "en")
			out, err := runCommand(t, append(args, tt.extra...)...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.wantTitle+"\n"), "output starts with %q:\n%s", tt.wantTitle, out)
		})
	}
}

func TestCalendarLocalizedTitle(t *testing.T) {
	out, err := runCommand(t, append(calendarBaseArgs, "--lang", "ru")...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Январь 2026\n"))
	assert.Contains(t, out, "Фертильное окно")
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	_, err := runCommand(t, append(calendarBaseArgs, "--month", "2026/03")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}

func TestCalendarCell(t *testing.T) {
	assert.Empty(t, calendarCell(nil))

	day := &prediction.CalendarDay{Day: 7, Kind: prediction.DayNone}
	assert.Equal(t, "7", calendarCell(day))

	day.IsToday = true
	assert.Contains(t, calendarCell(day), "[7]")
}
