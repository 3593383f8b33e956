package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/services"
)

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.CurrentPassword) == "" || strings.TrimSpace(input.NewPassword) == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword)
	switch {
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrPasswordUnchanged):
		return apiError(c, fiber.StatusBadRequest, "new password must differ")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case err != nil:
		handler.logger.WithError(err).WithField("user_id", user.ID).Error("change password failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to update password")
	}

	user.MustChangePassword = false
	if err := handler.issueSession(c, user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) UpdateTelegram(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := telegramInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.reminderService.SetTelegramChat(user.ID, input.ChatID); err != nil {
		if errors.Is(err, services.ErrTelegramChatInvalid) {
			return apiError(c, fiber.StatusBadRequest, "invalid telegram chat id")
		}
		handler.logger.WithError(err).WithField("user_id", user.ID).Error("update telegram chat failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to update telegram settings")
	}

	return c.JSON(fiber.Map{
		"ok":                true,
		"telegram_linked":   input.ChatID != nil,
		"reminders_enabled": handler.reminderService.Enabled(),
	})
}
