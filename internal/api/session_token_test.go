package api

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTokenTestHandler(secret string) *Handler {
	return &Handler{secretKey: []byte(secret)}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	handler := newTokenTestHandler("0123456789abcdef0123456789abcdef")
	token, err := handler.signSessionToken(42, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	userID, err := handler.parseSessionToken(token)
	if err != nil {
		t.Fatalf("expected token to parse, got %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestSessionTokenRejections(t *testing.T) {
	t.Parallel()

	handler := newTokenTestHandler("0123456789abcdef0123456789abcdef")
	other := newTokenTestHandler("fedcba9876543210fedcba9876543210")

	expired, err := handler.signSessionToken(7, time.Now().Add(-48*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	foreign, err := other.signSessionToken(7, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("sign foreign token: %v", err)
	}
	valid, err := handler.signSessionToken(7, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("sign valid token: %v", err)
	}
	tampered := valid[:strings.LastIndex(valid, ".")+1] + "AAAA"

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(handler.secretKey)
	if err != nil {
		t.Fatalf("sign wrong issuer token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: sessionIssuer},
	}).SignedString(handler.secretKey)
	if err != nil {
		t.Fatalf("sign token without expiry: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, authClaims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	cases := map[string]string{
		"expired":       expired,
		"foreign key":   foreign,
		"tampered":      tampered,
		"wrong issuer":  wrongIssuer,
		"no expiry":     noExpiry,
		"alg none":      unsigned,
		"garbage value": "not-a-token",
	}
	for name, token := range cases {
		if _, err := handler.parseSessionToken(token); err == nil {
			t.Fatalf("%s: expected token to be rejected", name)
		}
	}
}
