package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/abeba/internal/models"
	"github.com/terraincognita07/abeba/internal/prediction"
	"gorm.io/gorm"
)

const (
	MaxSymptomLabelLength = 64
	MaxSymptomNotesLength = 500
	// SymptomLookbackDays bounds how far back logged moods still shift forecasts.
	SymptomLookbackDays = 90
)

var (
	ErrSymptomLabelInvalid = errors.New("symptom label invalid")
	ErrSymptomNotesTooLong = errors.New("symptom notes too long")
	ErrSymptomNotFound     = errors.New("symptom not found")
)

type SymptomLogStore interface {
	Create(entry *models.SymptomLog) error
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.SymptomLog, error)
	FindByIDForUser(entryID uint, userID uint) (models.SymptomLog, error)
	Delete(entry *models.SymptomLog) error
}

type SymptomService struct {
	logs     SymptomLogStore
	location *time.Location
}

func NewSymptomService(logs SymptomLogStore, location *time.Location) *SymptomService {
	if location == nil {
		location = time.UTC
	}
	return &SymptomService{logs: logs, location: location}
}

func (service *SymptomService) Log(userID uint, label string, day time.Time, notes string) (models.SymptomLog, error) {
	normalizedLabel, err := normalizeSymptomLabel(label)
	if err != nil {
		return models.SymptomLog{}, err
	}
	trimmedNotes := strings.TrimSpace(notes)
	if utf8.RuneCountInString(trimmedNotes) > MaxSymptomNotesLength {
		return models.SymptomLog{}, ErrSymptomNotesTooLong
	}

	entry := models.SymptomLog{
		UserID:   userID,
		Label:    normalizedLabel,
		LoggedOn: prediction.DateAtLocation(day, service.location),
		Notes:    trimmedNotes,
	}
	if err := service.logs.Create(&entry); err != nil {
		return models.SymptomLog{}, err
	}
	return entry, nil
}

// List returns entries newest first; nil bounds are open.
func (service *SymptomService) List(userID uint, from *time.Time, to *time.Time) ([]models.SymptomLog, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start := prediction.DateAtLocation(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		end := prediction.DateAtLocation(*to, service.location).AddDate(0, 0, 1)
		toEnd = &end
	}
	return service.logs.ListByUserRange(userID, fromStart, toEnd)
}

func (service *SymptomService) Delete(userID uint, entryID uint) error {
	entry, err := service.logs.FindByIDForUser(entryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSymptomNotFound
		}
		return err
	}
	return service.logs.Delete(&entry)
}

// EntriesForPrediction returns the labels logged within the lookback window
// ending today.
func (service *SymptomService) EntriesForPrediction(userID uint, now time.Time) ([]prediction.SymptomLogEntry, error) {
	today := prediction.DateAtLocation(now, service.location)
	from := today.AddDate(0, 0, -SymptomLookbackDays)
	entries, err := service.List(userID, &from, &today)
	if err != nil {
		return nil, err
	}

	result := make([]prediction.SymptomLogEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, prediction.SymptomLogEntry{Label: entry.Label})
	}
	return result, nil
}

func normalizeSymptomLabel(raw string) (string, error) {
	label := strings.Join(strings.Fields(raw), " ")
	length := utf8.RuneCountInString(label)
	if length == 0 || length > MaxSymptomLabelLength {
		return "", ErrSymptomLabelInvalid
	}
	return label, nil
}

// Catalog lists the suggested labels offered by the mood picker.
func (service *SymptomService) Catalog() []models.SymptomLabel {
	return models.DefaultSymptomLabels()
}
