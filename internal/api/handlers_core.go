package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/abeba/internal/i18n"
)

func NewHandler(deps *Services, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool, logger *logrus.Logger) (*Handler, error) {
	if deps == nil {
		return nil, errors.New("services are required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.Local
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{
		secretKey:         []byte(secret),
		location:          location,
		cookieSecure:      cookieSecure,
		i18n:              i18nManager,
		logger:            logger,
		loginLimiter:      newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		authService:       deps.Auth,
		symptomService:    deps.Symptoms,
		predictionService: deps.Prediction,
		reminderService:   deps.Reminders,
	}, nil
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
