package api

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/abeba/internal/db"
	"github.com/terraincognita07/abeba/internal/services"
	"gorm.io/gorm"
)

// Services is the wired service graph shared by the HTTP handler and the
// reminder scheduler.
type Services struct {
	Auth       *services.AuthService
	Symptoms   *services.SymptomService
	Prediction *services.PredictionService
	Reminders  *services.ReminderService
}

type ServiceOptions struct {
	Location          *time.Location
	HorizonMonths     int
	ReminderDaysAhead int
	// Sender may be nil, which disables reminders.
	Sender services.ReminderSender
	Logger *logrus.Logger
}

func NewServices(database *gorm.DB, options ServiceOptions) *Services {
	repositories := db.NewRepositories(database)
	symptoms := services.NewSymptomService(repositories.SymptomLogs, options.Location)
	prediction := services.NewPredictionService(repositories.CycleProfiles, symptoms, options.Location, options.HorizonMonths)

	return &Services{
		Auth:       services.NewAuthService(repositories.Users),
		Symptoms:   symptoms,
		Prediction: prediction,
		Reminders: services.NewReminderService(
			repositories.Users,
			prediction,
			options.Sender,
			options.Logger,
			options.Location,
			options.ReminderDaysAhead,
		),
	}
}
