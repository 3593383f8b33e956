package db

import (
	"time"

	"github.com/terraincognita07/abeba/internal/models"
	"gorm.io/gorm"
)

type SymptomLogRepository struct {
	database *gorm.DB
}

func NewSymptomLogRepository(database *gorm.DB) *SymptomLogRepository {
	return &SymptomLogRepository{database: database}
}

func (repo *SymptomLogRepository) Create(entry *models.SymptomLog) error {
	return repo.database.Create(entry).Error
}

func (repo *SymptomLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.SymptomLog, error) {
	entries := make([]models.SymptomLog, 0)
	query := repo.database.Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("logged_on >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("logged_on < ?", *toEnd)
	}
	if err := query.Order("logged_on DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *SymptomLogRepository) FindByIDForUser(entryID uint, userID uint) (models.SymptomLog, error) {
	entry := models.SymptomLog{}
	if err := repo.database.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return models.SymptomLog{}, err
	}
	return entry, nil
}

func (repo *SymptomLogRepository) Delete(entry *models.SymptomLog) error {
	return repo.database.Delete(entry).Error
}
