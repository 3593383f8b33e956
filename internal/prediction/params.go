package prediction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultHorizonMonths = 24
	MaxHorizonMonths     = 120
	DateLayout           = "2006-01-02"

	// MaxStartDateAgeYears bounds how far back the last period may start.
	MaxStartDateAgeYears = 2
)

const (
	FieldStartDate     = "start_date"
	FieldCycleLength   = "cycle_length"
	FieldLutealPhase   = "luteal_phase"
	FieldHorizonMonths = "horizon_months"
)

// CycleParameters is the immutable input of a projection run.
type CycleParameters struct {
	StartDate       time.Time
	CycleLengthDays int
	LutealPhaseDays int
	HorizonMonths   int
}

// RawParameters carries unparsed form or query values.
type RawParameters struct {
	StartDate     string
	CycleLength   string
	LutealPhase   string
	HorizonMonths string
}

// ParseParameters converts raw values into validated parameters. Dates are
// interpreted as calendar days in location, and the start date must fall
// between MaxStartDateAgeYears before now and today. An empty horizon falls
// back to DefaultHorizonMonths.
func ParseParameters(raw RawParameters, now time.Time, location *time.Location) (CycleParameters, error) {
	if location == nil {
		location = time.UTC
	}

	startRaw := strings.TrimSpace(raw.StartDate)
	if startRaw == "" {
		return CycleParameters{}, invalidField(FieldStartDate, "is required")
	}
	startDate, err := time.ParseInLocation(DateLayout, startRaw, location)
	if err != nil {
		return CycleParameters{}, invalidField(FieldStartDate, "must use YYYY-MM-DD")
	}
	if err := checkStartDate(startDate, now); err != nil {
		return CycleParameters{}, err
	}

	cycleLength, err := parseRequiredInt(FieldCycleLength, raw.CycleLength)
	if err != nil {
		return CycleParameters{}, err
	}
	lutealPhase, err := parseRequiredInt(FieldLutealPhase, raw.LutealPhase)
	if err != nil {
		return CycleParameters{}, err
	}

	horizon := DefaultHorizonMonths
	if trimmed := strings.TrimSpace(raw.HorizonMonths); trimmed != "" {
		horizon, err = strconv.Atoi(trimmed)
		if err != nil {
			return CycleParameters{}, invalidField(FieldHorizonMonths, "must be a whole number")
		}
	}

	params := CycleParameters{
		StartDate:       startDate,
		CycleLengthDays: cycleLength,
		LutealPhaseDays: lutealPhase,
		HorizonMonths:   horizon,
	}
	if err := params.Validate(); err != nil {
		return CycleParameters{}, err
	}
	return params, nil
}

func checkStartDate(startDate time.Time, now time.Time) error {
	today := DateAtLocation(now, startDate.Location())
	if startDate.After(today) {
		return invalidField(FieldStartDate, "must not be in the future")
	}
	if startDate.Before(today.AddDate(-MaxStartDateAgeYears, 0, 0)) {
		return invalidField(FieldStartDate, fmt.Sprintf("must be within the last %d years", MaxStartDateAgeYears))
	}
	return nil
}

func parseRequiredInt(field string, raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, invalidField(field, "is required")
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, invalidField(field, "must be a whole number")
	}
	return value, nil
}

// Validate reports the first parameter that makes projection impossible.
// A zero horizon is accepted and replaced by the default at projection time.
func (params CycleParameters) Validate() error {
	if params.StartDate.IsZero() {
		return invalidField(FieldStartDate, "is required")
	}
	if params.CycleLengthDays <= 0 {
		return invalidField(FieldCycleLength, "must be positive")
	}
	if params.LutealPhaseDays <= 0 {
		return invalidField(FieldLutealPhase, "must be positive")
	}
	if params.HorizonMonths < 0 || params.HorizonMonths > MaxHorizonMonths {
		return invalidField(FieldHorizonMonths, "must be between 0 and 120")
	}
	return nil
}

func (params CycleParameters) horizon() int {
	if params.HorizonMonths == 0 {
		return DefaultHorizonMonths
	}
	return params.HorizonMonths
}
