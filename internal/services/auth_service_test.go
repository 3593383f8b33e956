package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/abeba/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubAuthUserRepo struct {
	users         map[string]models.User
	nextID        uint
	createErr     error
	updatedUserID uint
	mustChange    bool
}

func newStubAuthUserRepo() *stubAuthUserRepo {
	return &stubAuthUserRepo{users: make(map[string]models.User), nextID: 1}
}

func (stub *stubAuthUserRepo) ExistsByNormalizedEmail(email string) (bool, error) {
	_, ok := stub.users[email]
	return ok, nil
}

func (stub *stubAuthUserRepo) FindByNormalizedEmail(email string) (models.User, error) {
	user, ok := stub.users[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *stubAuthUserRepo) FindByID(userID uint) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *stubAuthUserRepo) Create(user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.Email] = *user
	return nil
}

func (stub *stubAuthUserRepo) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	for email, user := range stub.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			user.MustChangePassword = mustChangePassword
			stub.users[email] = user
			stub.updatedUserID = userID
			stub.mustChange = mustChangePassword
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestAuthService(t *testing.T) (*AuthService, *stubAuthUserRepo) {
	t.Helper()
	repo := newStubAuthUserRepo()
	return NewAuthService(repo).WithHashCost(bcrypt.MinCost), repo
}

func TestAuthServiceRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	t.Parallel()

	service, repo := newTestAuthService(t)
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

	user, err := service.Register("  Owner@Example.COM ", "StrongPass1", now)
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if user.Email != "owner@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.ID == 0 {
		t.Fatal("expected persisted user id")
	}
	stored := repo.users["owner@example.com"]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("StrongPass1")) != nil {
		t.Fatal("expected stored bcrypt hash to match password")
	}
}

func TestAuthServiceRegisterRejectsDuplicateAndWeakInput(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)
	now := time.Now()
	if _, err := service.Register("owner@example.com", "StrongPass1", now); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	testCases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{name: "duplicate email", email: "OWNER@example.com", password: "StrongPass1", want: ErrEmailTaken},
		{name: "weak password", email: "new@example.com", password: "weak", want: ErrWeakPassword},
		{name: "invalid email", email: "not-an-email", password: "StrongPass1", want: ErrAuthCredentialsInvalid},
		{name: "blank password", email: "new@example.com", password: "   ", want: ErrAuthCredentialsInvalid},
	}

	for _, testCase := range testCases {
		_, err := service.Register(testCase.email, testCase.password, now)
		if !errors.Is(err, testCase.want) {
			t.Fatalf("%s: expected %v, got %v", testCase.name, testCase.want, err)
		}
	}
}

func TestAuthServiceAuthenticate(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)
	registered, err := service.Register("owner@example.com", "StrongPass1", time.Now())
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	user, err := service.Authenticate(" OWNER@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := service.Authenticate("owner@example.com", "WrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("missing@example.com", "StrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for unknown email, got %v", err)
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(t)
	user, err := service.Register("owner@example.com", "StrongPass1", time.Now())
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	if err := service.ChangePassword(user.ID, "WrongPass1", "NewStrong2"); !errors.Is(err, ErrInvalidCurrentPassword) {
		t.Fatalf("expected ErrInvalidCurrentPassword, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "StrongPass1", "StrongPass1"); !errors.Is(err, ErrPasswordUnchanged) {
		t.Fatalf("expected ErrPasswordUnchanged, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "StrongPass1", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := service.ChangePassword(user.ID, "StrongPass1", "NewStrong2"); err != nil {
		t.Fatalf("ChangePassword() unexpected error: %v", err)
	}
	if _, err := service.Authenticate("owner@example.com", "NewStrong2"); err != nil {
		t.Fatalf("expected login with new password, got %v", err)
	}
	if err := service.ChangePassword(999, "StrongPass1", "NewStrong2"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthServiceResetPasswordIssuesTemporaryPassword(t *testing.T) {
	t.Parallel()

	service, repo := newTestAuthService(t)
	user, err := service.Register("owner@example.com", "StrongPass1", time.Now())
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	temporary, err := service.ResetPassword("Owner@example.com")
	if err != nil {
		t.Fatalf("ResetPassword() unexpected error: %v", err)
	}
	if len(temporary) != temporaryPasswordLength {
		t.Fatalf("expected temporary password length %d, got %d", temporaryPasswordLength, len(temporary))
	}
	if err := ValidatePasswordStrength(temporary); err != nil {
		t.Fatalf("expected strong temporary password, got %v", err)
	}
	if repo.updatedUserID != user.ID || !repo.mustChange {
		t.Fatalf("expected forced password change for user %d, got user=%d must_change=%v", user.ID, repo.updatedUserID, repo.mustChange)
	}
	if _, err := service.Authenticate("owner@example.com", temporary); err != nil {
		t.Fatalf("expected login with temporary password, got %v", err)
	}

	if _, err := service.ResetPassword("missing@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.ResetPassword("   "); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid, got %v", err)
	}
}
