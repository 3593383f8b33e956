package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/abeba/internal/models"
	"github.com/terraincognita07/abeba/internal/prediction"
	"gopkg.in/telebot.v3"
)

const (
	DefaultReminderCron      = "0 9 * * *"
	DefaultReminderDaysAhead = 2
	reminderRunTimeout       = 2 * time.Minute
	maxSentReminderKeys      = 500
)

var ErrTelegramChatInvalid = errors.New("telegram chat id invalid")

type ReminderKind string

const (
	ReminderPeriod  ReminderKind = "period"
	ReminderFertile ReminderKind = "fertile"
)

type ReminderSender interface {
	Send(ctx context.Context, chatID int64, message string) error
}

type ReminderUserStore interface {
	ListWithTelegramChat() ([]models.User, error)
	UpdateTelegramChatID(userID uint, chatID *int64) error
}

type UserPredictor interface {
	PredictForUser(ctx context.Context, userID uint) (prediction.Prediction, error)
}

type ReminderService struct {
	users     ReminderUserStore
	predictor UserPredictor
	sender    ReminderSender
	logger    *logrus.Logger
	location  *time.Location
	daysAhead int
	now       func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewReminderService(users ReminderUserStore, predictor UserPredictor, sender ReminderSender, logger *logrus.Logger, location *time.Location, daysAhead int) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	if daysAhead < 0 {
		daysAhead = DefaultReminderDaysAhead
	}
	return &ReminderService{
		users:     users,
		predictor: predictor,
		sender:    sender,
		logger:    logger,
		location:  location,
		daysAhead: daysAhead,
		now:       time.Now,
		sent:      make(map[string]time.Time),
	}
}

func (service *ReminderService) WithClock(now func() time.Time) *ReminderService {
	service.now = now
	return service
}

func (service *ReminderService) Enabled() bool {
	return service.sender != nil
}

// SetTelegramChat stores or clears (nil) the chat receiving reminders.
func (service *ReminderService) SetTelegramChat(userID uint, chatID *int64) error {
	if chatID != nil && *chatID == 0 {
		return ErrTelegramChatInvalid
	}
	return service.users.UpdateTelegramChatID(userID, chatID)
}

// Start schedules RunOnce on spec until ctx is cancelled. It is a no-op
// without a sender.
func (service *ReminderService) Start(ctx context.Context, spec string) error {
	if !service.Enabled() {
		service.logger.Info("reminders disabled: no telegram token configured")
		return nil
	}
	if spec == "" {
		spec = DefaultReminderCron
	}

	scheduler := cron.New(cron.WithLocation(service.location))
	if _, err := scheduler.AddFunc(spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, reminderRunTimeout)
		defer cancel()
		service.RunOnce(runCtx)
	}); err != nil {
		return fmt.Errorf("schedule reminders %q: %w", spec, err)
	}

	scheduler.Start()
	service.logger.WithField("cron", spec).Info("reminder scheduler started")

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
		service.logger.Info("reminder scheduler stopped")
	}()
	return nil
}

// RunOnce checks every user with a linked chat and returns how many
// reminders were delivered.
func (service *ReminderService) RunOnce(ctx context.Context) int {
	if !service.Enabled() {
		return 0
	}
	users, err := service.users.ListWithTelegramChat()
	if err != nil {
		service.logger.WithError(err).Error("reminders: list users failed")
		return 0
	}

	today := prediction.DateAtLocation(service.now(), service.location)
	delivered := 0
	for _, user := range users {
		if ctx.Err() != nil {
			return delivered
		}
		if user.TelegramChatID == nil {
			continue
		}

		result, err := service.predictor.PredictForUser(ctx, user.ID)
		if err != nil {
			if !errors.Is(err, ErrProfileNotFound) {
				service.logger.WithError(err).WithField("user_id", user.ID).Warn("reminders: prediction failed")
			}
			continue
		}

		for _, reminder := range service.dueReminders(result, today) {
			key := fmt.Sprintf("%s:%d:%s", reminder.kind, user.ID, today.Format(prediction.DateLayout))
			if service.alreadySent(key, today) {
				continue
			}
			if err := service.sender.Send(ctx, *user.TelegramChatID, reminder.message); err != nil {
				service.logger.WithError(err).WithFields(logrus.Fields{
					"user_id": user.ID,
					"kind":    reminder.kind,
				}).Warn("reminders: send failed")
				continue
			}
			service.markSent(key, today)
			delivered++
		}
	}
	return delivered
}

type dueReminder struct {
	kind    ReminderKind
	message string
}

func (service *ReminderService) dueReminders(result prediction.Prediction, today time.Time) []dueReminder {
	reminders := make([]dueReminder, 0, 2)

	if next, ok := result.Next(today); ok && prediction.DaysBetween(today, next.PeriodStart) == service.daysAhead {
		reminders = append(reminders, dueReminder{
			kind: ReminderPeriod,
			message: fmt.Sprintf("Abeba reminder: your predicted period starts in %d day(s) on %s.",
				service.daysAhead, next.PeriodStart.Format("Jan 2")),
		})
	}

	for _, cycle := range result.Cycles {
		if sameCalendarDate(cycle.FertileWindow.Start, today) {
			reminders = append(reminders, dueReminder{
				kind: ReminderFertile,
				message: fmt.Sprintf("Abeba reminder: your fertile window starts today (%s).",
					today.Format("Jan 2")),
			})
			break
		}
	}
	return reminders
}

func (service *ReminderService) alreadySent(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	sentOn, ok := service.sent[key]
	return ok && sameCalendarDate(sentOn, today)
}

// markSent records a delivered reminder; failed sends stay eligible for the
// next run on the same day.
func (service *ReminderService) markSent(key string, today time.Time) {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.sent[key] = today
	if len(service.sent) > maxSentReminderKeys {
		service.sent = map[string]time.Time{key: today}
	}
}

func sameCalendarDate(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TelegramSender delivers reminders through the Bot API.
type TelegramSender struct {
	bot *telebot.Bot
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot}, nil
}

func (sender *TelegramSender) Send(ctx context.Context, chatID int64, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := sender.bot.Send(telebot.ChatID(chatID), message)
	return err
}
