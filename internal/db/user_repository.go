package db

import (
	"errors"

	"github.com/terraincognita07/abeba/internal/models"
	"gorm.io/gorm"
)

// UserRepository stores accounts. Emails are normalised by the auth service
// before they reach this layer, so lookups compare the column directly.
type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

// FindByID returns gorm.ErrRecordNotFound for unknown ids.
func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	return repo.take(repo.database.Where("id = ?", userID))
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	return repo.take(repo.database.Where("email = ?", email))
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := repo.take(repo.database.Select("id").Where("email = ?", email))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.updateColumns(userID, models.User{
		PasswordHash:       passwordHash,
		MustChangePassword: mustChangePassword,
	}, "password_hash", "must_change_password")
}

// UpdateTelegramChatID links or, with nil, unlinks the reminder chat.
func (repo *UserRepository) UpdateTelegramChatID(userID uint, chatID *int64) error {
	return repo.updateColumns(userID, models.User{TelegramChatID: chatID}, "telegram_chat_id")
}

// ListWithTelegramChat returns the reminder recipients in id order.
func (repo *UserRepository) ListWithTelegramChat() ([]models.User, error) {
	users := make([]models.User, 0)
	err := repo.database.
		Where("telegram_chat_id IS NOT NULL").
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) take(query *gorm.DB) (models.User, error) {
	user := models.User{}
	if err := query.Take(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// updateColumns writes the named columns of values, zero values included.
func (repo *UserRepository) updateColumns(userID uint, values models.User, columns ...string) error {
	result := repo.database.Model(&models.User{}).
		Where("id = ?", userID).
		Select(columns).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
