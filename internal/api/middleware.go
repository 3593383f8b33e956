package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/models"
)

const (
	authCookieName     = "abeba_auth"
	languageCookieName = "abeba_lang"
	contextUserKey     = "current_user"
	contextLanguageKey = "current_language"
)

// DefaultRequestTimeout bounds the work a single API request may do.
const DefaultRequestTimeout = 15 * time.Second

// RequestTimeout gives each request a user context with a deadline. Handlers
// pass it on so slow projections answer 503 instead of running on.
func RequestTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	tokenValue := strings.TrimSpace(c.Cookies(authCookieName))
	if tokenValue == "" {
		return nil, errors.New("missing auth cookie")
	}

	userID, err := handler.parseSessionToken(tokenValue)
	if err != nil {
		return nil, err
	}
	user, err := handler.authService.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LanguageMiddleware resolves the response language from the lang query,
// then the language cookie, then Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}
	if queryLanguage := strings.TrimSpace(c.Query("lang")); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
	}

	if cookieLanguage != language {
		handler.setLanguageCookie(c, language)
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().AddDate(1, 0, 0),
	})
}
