package prediction

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

const (
	FertileWindowDays = 6
	PeriodSpanDays    = 5
)

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (window DateRange) Contains(day time.Time) bool {
	return !day.Before(window.Start) && !day.After(window.End)
}

type PredictedCycle struct {
	PeriodStart   time.Time `json:"period_start"`
	OvulationDate time.Time `json:"ovulation_date"`
	FertileWindow DateRange `json:"fertile_window"`
}

// PeriodSpan is the inclusive run of days labelled as period for this cycle.
func (cycle PredictedCycle) PeriodSpan() DateRange {
	return DateRange{
		Start: cycle.PeriodStart,
		End:   cycle.PeriodStart.AddDate(0, 0, PeriodSpanDays-1),
	}
}

// Cycles validates the input and returns a lazy sequence of predicted cycles.
// The sequence stops before the first period start that falls after
// today plus the horizon in calendar months.
func Cycles(params CycleParameters, adjustmentDays int, now time.Time) (iter.Seq[PredictedCycle], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	step := params.CycleLengthDays - adjustmentDays
	if step <= 0 {
		return nil, fmt.Errorf("%w: cycle length %d minus adjustment %d", ErrDegenerateCycle, params.CycleLengthDays, adjustmentDays)
	}

	location := params.StartDate.Location()
	startDate := DateAtLocation(params.StartDate, location)
	maxDate := DateAtLocation(now, location).AddDate(0, params.horizon(), 0)

	return func(yield func(PredictedCycle) bool) {
		current := startDate
		for {
			periodStart := current.AddDate(0, 0, step)
			if periodStart.After(maxDate) {
				return
			}
			ovulation := periodStart.AddDate(0, 0, -params.LutealPhaseDays)
			cycle := PredictedCycle{
				PeriodStart:   periodStart,
				OvulationDate: ovulation,
				FertileWindow: DateRange{
					Start: ovulation.AddDate(0, 0, -FertileWindowDays),
					End:   ovulation.AddDate(0, 0, -1),
				},
			}
			if !yield(cycle) {
				return
			}
			current = periodStart
		}
	}, nil
}

// Project collects the full cycle sequence.
func Project(params CycleParameters, adjustmentDays int, now time.Time) ([]PredictedCycle, error) {
	sequence, err := Cycles(params, adjustmentDays, now)
	if err != nil {
		return nil, err
	}
	cycles := slices.Collect(sequence)
	if cycles == nil {
		cycles = []PredictedCycle{}
	}
	return cycles, nil
}

// Prediction is one complete run: input, applied adjustment and output.
type Prediction struct {
	Parameters     CycleParameters
	AdjustmentDays int
	Cycles         []PredictedCycle
	GeneratedOn    time.Time
}

func Predict(params CycleParameters, symptoms []SymptomLogEntry, now time.Time) (Prediction, error) {
	adjustment := AdjustmentDays(symptoms)
	cycles, err := Project(params, adjustment, now)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{
		Parameters:     params,
		AdjustmentDays: adjustment,
		Cycles:         cycles,
		GeneratedOn:    DateAtLocation(now, params.StartDate.Location()),
	}, nil
}

// Next returns the first cycle whose period starts on or after day.
func (result Prediction) Next(day time.Time) (PredictedCycle, bool) {
	for _, cycle := range result.Cycles {
		if !cycle.PeriodStart.Before(day) {
			return cycle, true
		}
	}
	return PredictedCycle{}, false
}

// NextFertileWindow returns the first fertile window that has not ended by day.
func (result Prediction) NextFertileWindow(day time.Time) (DateRange, bool) {
	for _, cycle := range result.Cycles {
		if !cycle.FertileWindow.End.Before(day) {
			return cycle.FertileWindow, true
		}
	}
	return DateRange{}, false
}

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DaysBetween(from time.Time, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
