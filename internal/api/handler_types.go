package api

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/abeba/internal/i18n"
	"github.com/terraincognita07/abeba/internal/services"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	logger       *logrus.Logger
	loginLimiter *attemptLimiter

	authService       *services.AuthService
	symptomService    *services.SymptomService
	predictionService *services.PredictionService
	reminderService   *services.ReminderService
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
}

type profileInput struct {
	StartDate     string        `json:"start_date" form:"start_date"`
	CycleLength   flexibleValue `json:"cycle_length" form:"cycle_length"`
	LutealPhase   flexibleValue `json:"luteal_phase" form:"luteal_phase"`
	HorizonMonths flexibleValue `json:"horizon_months" form:"horizon_months"`
}

type predictionInput struct {
	profileInput
	Symptoms []string `json:"symptoms" form:"symptoms"`
}

type symptomInput struct {
	Label string `json:"label" form:"label"`
	Date  string `json:"date" form:"date"`
	Notes string `json:"notes" form:"notes"`
}

type telegramInput struct {
	ChatID *int64 `json:"chat_id" form:"chat_id"`
}

type userResponse struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	MustChangePassword bool   `json:"must_change_password"`
	TelegramLinked     bool   `json:"telegram_linked"`
}

type profileResponse struct {
	StartDate     string `json:"start_date"`
	CycleLength   int    `json:"cycle_length"`
	LutealPhase   int    `json:"luteal_phase"`
	HorizonMonths int    `json:"horizon_months"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

type cycleResponse struct {
	PeriodStart   string `json:"period_start"`
	PeriodEnd     string `json:"period_end"`
	OvulationDate string `json:"ovulation_date"`
	FertileStart  string `json:"fertile_start"`
	FertileEnd    string `json:"fertile_end"`
}

type summaryResponse struct {
	NextPeriodStart    string `json:"next_period_start,omitempty"`
	NextOvulation      string `json:"next_ovulation,omitempty"`
	NextFertileStart   string `json:"next_fertile_start,omitempty"`
	NextFertileEnd     string `json:"next_fertile_end,omitempty"`
	DaysUntilNextCycle *int   `json:"days_until_next_cycle,omitempty"`
}

type predictionResponse struct {
	GeneratedOn    string          `json:"generated_on"`
	AdjustmentDays int             `json:"adjustment_days"`
	HorizonMonths  int             `json:"horizon_months"`
	Cycles         []cycleResponse `json:"cycles"`
	Summary        summaryResponse `json:"summary"`
}

type calendarDayResponse struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Kind    string `json:"kind"`
	Label   string `json:"label,omitempty"`
	IsToday bool   `json:"is_today"`
}

type calendarResponse struct {
	Year          int                   `json:"year"`
	Month         int                   `json:"month"`
	Title         string                `json:"title"`
	Language      string                `json:"language"`
	Weekdays      []string              `json:"weekdays"`
	LeadingBlanks int                   `json:"leading_blanks"`
	Days          []calendarDayResponse `json:"days"`
	Prev          navigationResponse    `json:"prev"`
	Next          navigationResponse    `json:"next"`
}

type navigationResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type symptomResponse struct {
	ID       uint   `json:"id"`
	Label    string `json:"label"`
	LoggedOn string `json:"logged_on"`
	Notes    string `json:"notes,omitempty"`
}
