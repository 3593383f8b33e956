package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrWeakPassword           = errors.New("weak password")
)

// NormalizeAuthEmail lower-cases a bare address. Anything mail.ParseAddress
// would rewrite, such as a display name or angle brackets, is rejected with
// an empty result.
func NormalizeAuthEmail(raw string) string {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	address, err := mail.ParseAddress(candidate)
	if err != nil || address.Address != candidate {
		return ""
	}
	return candidate
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// ValidatePasswordStrength requires eight runes mixing upper case, lower case
// and digits.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}
	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}
