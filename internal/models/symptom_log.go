package models

import "time"

type SymptomLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_symptom_logs_user_day"`
	Label     string    `gorm:"not null"`
	LoggedOn  time.Time `gorm:"type:date;not null;index:idx_symptom_logs_user_day"`
	Notes     string
	CreatedAt time.Time
}

type SymptomLabel struct {
	Name string
	Icon string
}

func DefaultSymptomLabels() []SymptomLabel {
	return []SymptomLabel{
		{Name: "Happy", Icon: "😊"},
		{Name: "Sad", Icon: "😢"},
		{Name: "Anxious", Icon: "😟"},
		{Name: "Irritable", Icon: "😤"},
		{Name: "Tender breasts", Icon: "💔"},
		{Name: "Bloating", Icon: "🎈"},
		{Name: "Cramps", Icon: "🩸"},
		{Name: "Headache", Icon: "🤕"},
		{Name: "Fatigue", Icon: "😴"},
		{Name: "Acne", Icon: "🔴"},
	}
}
