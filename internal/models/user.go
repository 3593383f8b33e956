package models

import "time"

type User struct {
	ID                 uint      `gorm:"primaryKey"`
	Email              string    `gorm:"uniqueIndex;not null"`
	PasswordHash       string    `gorm:"not null"`
	MustChangePassword bool      `gorm:"not null;default:false"`
	TelegramChatID     *int64    `gorm:"column:telegram_chat_id"`
	CreatedAt          time.Time `gorm:"not null"`
}
