package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/abeba/internal/models"
)

const sessionIssuer = "abeba"

var errSessionInvalid = errors.New("invalid session token")

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// issueSession signs a token for user and stores it in the auth cookie. A
// remembered session gets a persistent cookie; otherwise the cookie dies with
// the browser while the token still carries the shorter TTL.
func (handler *Handler) issueSession(c *fiber.Ctx, user *models.User, rememberMe bool) error {
	ttl := defaultAuthTokenTTL
	if rememberMe {
		ttl = rememberAuthTokenTTL
	}

	now := time.Now()
	token, err := handler.signSessionToken(user.ID, now, ttl)
	if err != nil {
		return err
	}

	var expires time.Time
	if rememberMe {
		expires = now.Add(ttl)
	}
	c.Cookie(handler.sessionCookie(token, expires))
	return nil
}

func (handler *Handler) endSession(c *fiber.Ctx) {
	c.Cookie(handler.sessionCookie("", time.Now().Add(-time.Hour)))
}

func (handler *Handler) sessionCookie(value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     authCookieName,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
	}
}

func (handler *Handler) signSessionToken(userID uint, issuedAt time.Time, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

// parseSessionToken returns the user id of a valid, unexpired HS256 token
// issued by this server.
func (handler *Handler) parseSessionToken(raw string) (uint, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)

	claims := &authClaims{}
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, errSessionInvalid
	}
	return claims.UserID, nil
}
