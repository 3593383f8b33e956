package db

import (
	"errors"

	"github.com/terraincognita07/abeba/internal/models"
	"gorm.io/gorm"
)

type CycleProfileRepository struct {
	database *gorm.DB
}

func NewCycleProfileRepository(database *gorm.DB) *CycleProfileRepository {
	return &CycleProfileRepository{database: database}
}

func (repo *CycleProfileRepository) FindByUser(userID uint) (models.CycleProfile, bool, error) {
	profile := models.CycleProfile{}
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.CycleProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CycleProfile{}, false, nil
	}
	return profile, true, nil
}

// Upsert stores profile as the single baseline of its user, keeping the
// existing row identity when one is present.
func (repo *CycleProfileRepository) Upsert(profile *models.CycleProfile) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		existing := models.CycleProfile{}
		err := tx.Where("user_id = ?", profile.UserID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(profile).Error
		case err != nil:
			return err
		}

		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return tx.Save(profile).Error
	})
}

func (repo *CycleProfileRepository) DeleteByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.CycleProfile{}).Error
}
