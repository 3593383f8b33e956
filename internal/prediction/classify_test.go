package prediction

import (
	"testing"
	"time"
)

func TestClassifyPeriodSpan(t *testing.T) {
	t.Parallel()

	cycles, err := Project(januaryParams(t, 1), 0, mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	for _, raw := range []string{"2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"} {
		if got := Classify(mustParseDay(t, raw), cycles); got != DayPeriod {
			t.Fatalf("expected %s to be period, got %s", raw, got)
		}
	}
	if got := Classify(mustParseDay(t, "2024-02-03"), cycles); got != DayNone {
		t.Fatalf("expected 2024-02-03 outside the span, got %s", got)
	}
	if got := Classify(mustParseDay(t, "2024-01-28"), cycles); got != DayNone {
		t.Fatalf("expected 2024-01-28 before the span, got %s", got)
	}
}

func TestClassifyOvulationAndFertile(t *testing.T) {
	t.Parallel()

	cycles, err := Project(januaryParams(t, 1), 0, mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	cases := []struct {
		day  string
		want DayKind
	}{
		{day: "2024-01-08", want: DayNone},
		{day: "2024-01-09", want: DayFertile},
		{day: "2024-01-14", want: DayFertile},
		{day: "2024-01-15", want: DayOvulation},
		{day: "2024-01-16", want: DayNone},
	}
	for _, testCase := range cases {
		if got := Classify(mustParseDay(t, testCase.day), cycles); got != testCase.want {
			t.Fatalf("expected %s to be %s, got %s", testCase.day, testCase.want, got)
		}
	}
}

func TestClassifyPeriodOutranksOvulation(t *testing.T) {
	t.Parallel()

	// A 3-day luteal phase on a 6-day cycle puts the next ovulation inside
	// the current period span.
	params := CycleParameters{
		StartDate:       mustParseDay(t, "2024-01-01"),
		CycleLengthDays: 6,
		LutealPhaseDays: 3,
		HorizonMonths:   1,
	}
	cycles, err := Project(params, 0, mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}

	overlap := cycles[1].OvulationDate
	if !cycles[0].PeriodSpan().Contains(overlap) {
		t.Fatalf("expected ovulation %s inside period span of first cycle", formatDay(overlap))
	}
	if got := Classify(overlap, cycles); got != DayPeriod {
		t.Fatalf("expected period precedence, got %s", got)
	}
}

func TestClassifyOvulationOutranksFertile(t *testing.T) {
	t.Parallel()

	day := mustParseDay(t, "2024-03-10")
	cycles := []PredictedCycle{
		{
			PeriodStart:   mustParseDay(t, "2024-03-30"),
			OvulationDate: day,
			FertileWindow: DateRange{Start: mustParseDay(t, "2024-03-04"), End: mustParseDay(t, "2024-03-09")},
		},
		{
			PeriodStart:   mustParseDay(t, "2024-04-30"),
			OvulationDate: mustParseDay(t, "2024-04-16"),
			FertileWindow: DateRange{Start: mustParseDay(t, "2024-03-08"), End: mustParseDay(t, "2024-03-12")},
		},
	}
	if got := Classify(day, cycles); got != DayOvulation {
		t.Fatalf("expected ovulation precedence over fertile, got %s", got)
	}
}

func TestBuildMonth(t *testing.T) {
	t.Parallel()

	cycles, err := Project(januaryParams(t, 1), 0, mustParseDay(t, "2024-01-01"))
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	today := mustParseDay(t, "2024-01-15")

	view := BuildMonth(2024, time.January, cycles, today)
	if len(view.Days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(view.Days))
	}
	// 2024-01-01 is a Monday.
	if view.LeadingBlanks != 1 {
		t.Fatalf("expected one leading blank, got %d", view.LeadingBlanks)
	}

	ovulationDay := view.Days[14]
	if ovulationDay.Day != 15 || ovulationDay.Kind != DayOvulation || !ovulationDay.IsToday {
		t.Fatalf("unexpected day 15: %#v", ovulationDay)
	}
	todayCount := 0
	for _, day := range view.Days {
		if day.IsToday {
			todayCount++
		}
	}
	if todayCount != 1 {
		t.Fatalf("expected exactly one today cell, got %d", todayCount)
	}

	february := BuildMonth(2024, time.February, cycles, today)
	if len(february.Days) != 29 {
		t.Fatalf("expected leap february with 29 days, got %d", len(february.Days))
	}
	if february.Days[0].Kind != DayPeriod || february.Days[1].Kind != DayPeriod || february.Days[2].Kind != DayNone {
		t.Fatalf("expected period carried into 2024-02-01..02, got %s %s %s",
			february.Days[0].Kind, february.Days[1].Kind, february.Days[2].Kind)
	}
}

func TestMonthViewWeeks(t *testing.T) {
	t.Parallel()

	view := BuildMonth(2024, time.February, nil, mustParseDay(t, "2024-02-10"))
	weeks := view.Weeks()
	// 2024-02-01 is a Thursday: 4 blanks + 29 days = 33 cells, padded to 35.
	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
	if weeks[0][3] != nil || weeks[0][4] == nil || weeks[0][4].Day != 1 {
		t.Fatal("expected first day in the Thursday column")
	}
	if weeks[4][6] != nil {
		t.Fatal("expected trailing padding cell")
	}
	for _, day := range view.Days {
		if day.Kind != DayNone {
			t.Fatalf("expected no labels without cycles, got %s", day.Kind)
		}
	}
}
