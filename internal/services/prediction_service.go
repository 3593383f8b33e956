package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/abeba/internal/models"
	"github.com/terraincognita07/abeba/internal/prediction"
)

var ErrProfileNotFound = errors.New("cycle profile not found")

type CycleProfileStore interface {
	FindByUser(userID uint) (models.CycleProfile, bool, error)
	Upsert(profile *models.CycleProfile) error
}

type SymptomEntrySource interface {
	EntriesForPrediction(userID uint, now time.Time) ([]prediction.SymptomLogEntry, error)
}

type PredictionSummary struct {
	AdjustmentDays     int
	CycleCount         int
	NextPeriodStart    time.Time
	NextOvulation      time.Time
	NextFertileWindow  prediction.DateRange
	DaysUntilNextCycle int
	HasUpcoming        bool
}

type cachedPrediction struct {
	day    string
	result prediction.Prediction
}

type PredictionService struct {
	profiles       CycleProfileStore
	symptoms       SymptomEntrySource
	location       *time.Location
	defaultHorizon int
	now            func() time.Time

	mu          sync.Mutex
	cache       map[uint]cachedPrediction
	generations map[uint]uint64
}

func NewPredictionService(profiles CycleProfileStore, symptoms SymptomEntrySource, location *time.Location, defaultHorizon int) *PredictionService {
	if location == nil {
		location = time.UTC
	}
	if defaultHorizon <= 0 {
		defaultHorizon = prediction.DefaultHorizonMonths
	}
	return &PredictionService{
		profiles:       profiles,
		symptoms:       symptoms,
		location:       location,
		defaultHorizon: defaultHorizon,
		now:            time.Now,
		cache:          make(map[uint]cachedPrediction),
		generations:    make(map[uint]uint64),
	}
}

func (service *PredictionService) WithClock(now func() time.Time) *PredictionService {
	service.now = now
	return service
}

func (service *PredictionService) Location() *time.Location {
	return service.location
}

func (service *PredictionService) Today() time.Time {
	return prediction.DateAtLocation(service.now(), service.location)
}

// ParseParameters applies the service default horizon when raw leaves it out.
func (service *PredictionService) ParseParameters(raw prediction.RawParameters) (prediction.CycleParameters, error) {
	if raw.HorizonMonths == "" {
		raw.HorizonMonths = fmt.Sprint(service.defaultHorizon)
	}
	return prediction.ParseParameters(raw, service.now(), service.location)
}

func (service *PredictionService) SaveProfile(userID uint, raw prediction.RawParameters) (models.CycleProfile, error) {
	params, err := service.ParseParameters(raw)
	if err != nil {
		return models.CycleProfile{}, err
	}

	profile := models.CycleProfile{
		UserID:        userID,
		StartDate:     params.StartDate,
		CycleLength:   params.CycleLengthDays,
		LutealPhase:   params.LutealPhaseDays,
		HorizonMonths: params.HorizonMonths,
	}
	if err := service.profiles.Upsert(&profile); err != nil {
		return models.CycleProfile{}, fmt.Errorf("save cycle profile: %w", err)
	}
	service.Invalidate(userID)
	return profile, nil
}

func (service *PredictionService) Profile(userID uint) (models.CycleProfile, error) {
	profile, found, err := service.profiles.FindByUser(userID)
	if err != nil {
		return models.CycleProfile{}, fmt.Errorf("load cycle profile: %w", err)
	}
	if !found {
		return models.CycleProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

// Predict runs a stateless projection for caller-supplied input.
func (service *PredictionService) Predict(ctx context.Context, params prediction.CycleParameters, entries []prediction.SymptomLogEntry) (prediction.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return prediction.Prediction{}, err
	}
	return prediction.Predict(params, entries, service.now().In(service.location))
}

// PredictForUser projects the stored profile of userID. Results are reused
// until the profile or symptom log changes or the calendar day rolls over.
func (service *PredictionService) PredictForUser(ctx context.Context, userID uint) (prediction.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return prediction.Prediction{}, err
	}

	now := service.now().In(service.location)
	dayKey := now.Format(prediction.DateLayout)
	cached, generation, ok := service.cached(userID, dayKey)
	if ok {
		return cached, nil
	}

	profile, err := service.Profile(userID)
	if err != nil {
		return prediction.Prediction{}, err
	}
	entries, err := service.symptoms.EntriesForPrediction(userID, now)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("load symptom entries: %w", err)
	}

	result, err := prediction.Predict(service.profileParameters(profile), entries, now)
	if err != nil {
		return prediction.Prediction{}, err
	}

	service.store(userID, generation, cachedPrediction{day: dayKey, result: result})
	return result, nil
}

// Calendar classifies one month of the cached projection. A zero year opens
// on the session default; shift then moves by that many months.
func (service *PredictionService) Calendar(ctx context.Context, userID uint, year int, month time.Month, shift int) (prediction.MonthView, error) {
	result, err := service.PredictForUser(ctx, userID)
	if err != nil {
		return prediction.MonthView{}, err
	}
	return CalendarMonth(result.Cycles, service.Today(), year, month, shift), nil
}

// Invalidate drops the cached projection and discards any load for userID
// that is still in flight.
func (service *PredictionService) Invalidate(userID uint) {
	service.mu.Lock()
	defer service.mu.Unlock()
	delete(service.cache, userID)
	service.generations[userID]++
}

// cached also returns the generation a miss must present to store.
func (service *PredictionService) cached(userID uint, dayKey string) (prediction.Prediction, uint64, bool) {
	service.mu.Lock()
	defer service.mu.Unlock()

	generation := service.generations[userID]
	entry, ok := service.cache[userID]
	if !ok || entry.day != dayKey {
		return prediction.Prediction{}, generation, false
	}
	return entry.result, generation, true
}

func (service *PredictionService) store(userID uint, generation uint64, entry cachedPrediction) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.generations[userID] != generation {
		return
	}
	service.cache[userID] = entry
}

func (service *PredictionService) profileParameters(profile models.CycleProfile) prediction.CycleParameters {
	horizon := profile.HorizonMonths
	if horizon <= 0 {
		horizon = service.defaultHorizon
	}
	return prediction.CycleParameters{
		StartDate:       prediction.DateAtLocation(profile.StartDate, service.location),
		CycleLengthDays: profile.CycleLength,
		LutealPhaseDays: profile.LutealPhase,
		HorizonMonths:   horizon,
	}
}

func CalendarMonth(cycles []prediction.PredictedCycle, today time.Time, year int, month time.Month, shift int) prediction.MonthView {
	session := prediction.NewCalendarSession(cycles, today)
	if year != 0 {
		session.JumpTo(year, month)
	}
	if shift != 0 {
		session.Shift(shift)
	}
	return session.Month(today)
}

func Summarize(result prediction.Prediction, today time.Time) PredictionSummary {
	summary := PredictionSummary{
		AdjustmentDays: result.AdjustmentDays,
		CycleCount:     len(result.Cycles),
	}
	next, ok := result.Next(today)
	if !ok {
		return summary
	}
	summary.HasUpcoming = true
	summary.NextPeriodStart = next.PeriodStart
	summary.DaysUntilNextCycle = prediction.DaysBetween(today, next.PeriodStart)

	for _, cycle := range result.Cycles {
		if !cycle.OvulationDate.Before(today) {
			summary.NextOvulation = cycle.OvulationDate
			break
		}
	}
	if window, ok := result.NextFertileWindow(today); ok {
		summary.NextFertileWindow = window
	}
	return summary
}
