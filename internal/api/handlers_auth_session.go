package api

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password, time.Now().In(handler.location))
	switch {
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "email already exists")
	case err != nil:
		handler.logger.WithError(err).Error("register failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.issueSession(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.logger.WithField("user_id", user.ID).Info("user registered")
	return c.Status(fiber.StatusCreated).JSON(buildUserResponse(&user))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		wait := handler.loginLimiter.retryAfter(limiterKey, now)
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	credentials, err := parseCredentials(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		handler.logger.WithError(err).Error("login failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.issueSession(c, &user, credentials.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(buildUserResponse(&user))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.endSession(c)
	return c.JSON(fiber.Map{"ok": true})
}
