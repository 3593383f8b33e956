package models

import "time"

const (
	DefaultCycleLength   = 28
	DefaultLutealPhase   = 14
	DefaultHorizonMonths = 24
)

// CycleProfile is the persisted baseline a user's predictions start from.
type CycleProfile struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"not null;uniqueIndex"`
	StartDate     time.Time `gorm:"type:date;not null"`
	CycleLength   int       `gorm:"not null;default:28"`
	LutealPhase   int       `gorm:"not null;default:14"`
	HorizonMonths int       `gorm:"not null;default:24"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
