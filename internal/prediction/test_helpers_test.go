package prediction

import (
	"testing"
	"time"
)

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	value, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return value
}

func januaryParams(t *testing.T, horizon int) CycleParameters {
	t.Helper()
	return CycleParameters{
		StartDate:       mustParseDay(t, "2024-01-01"),
		CycleLengthDays: 28,
		LutealPhaseDays: 14,
		HorizonMonths:   horizon,
	}
}

func formatDay(value time.Time) string {
	return value.Format(DateLayout)
}
