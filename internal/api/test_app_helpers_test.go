package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/db"
	"github.com/terraincognita07/abeba/internal/i18n"
	"github.com/terraincognita07/abeba/internal/logging"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "StrongPass1"

var testNow = time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

type testApp struct {
	app      *fiber.App
	database *gorm.DB
	services *Services
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithTimeout(t, DefaultRequestTimeout)
}

func newTestAppWithTimeout(t *testing.T, requestTimeout time.Duration) *testApp {
	t.Helper()

	logger := logging.Discard()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "abeba-api-test.db"), logger)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	deps := NewServices(database, ServiceOptions{
		Location:          time.UTC,
		HorizonMonths:     24,
		ReminderDaysAhead: 2,
		Logger:            logger,
	})
	deps.Auth.WithHashCost(bcrypt.MinCost)
	deps.Prediction.WithClock(func() time.Time { return testNow })

	handler, err := NewHandler(deps, "test-secret-key-0123456789abcdef", time.UTC, i18nManager, false, logger)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(RequestTimeout(requestTimeout))
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, database: database, services: deps}
}

func (ta *testApp) do(t *testing.T, method string, path string, payload any, cookie string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

// registerAndLogin creates an account and returns its auth cookie header.
func (ta *testApp) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	response := ta.do(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"email":    email,
		"password": testPassword,
	}, "")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}

	value := responseCookieValue(response.Cookies(), authCookieName)
	if value == "" {
		t.Fatal("auth cookie is missing in register response")
	}
	return authCookieName + "=" + value
}

func (ta *testApp) saveJanuaryProfile(t *testing.T, cookie string) {
	t.Helper()

	response := ta.do(t, http.MethodPut, "/api/cycle/profile", fiber.Map{
		"start_date":   "2026-01-01",
		"cycle_length": 28,
		"luteal_phase": 14,
	}, cookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected profile status 200, got %d", response.StatusCode)
	}
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func decodeJSON[T any](t *testing.T, response *http.Response) T {
	t.Helper()

	var payload T
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	return decodeJSON[map[string]string](t, response)["error"]
}
