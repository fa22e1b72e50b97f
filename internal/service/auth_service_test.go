package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"quizladder/internal/database"
	"quizladder/internal/repository"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_" + t.Name() + ".db"
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewAuthService(repository.NewUserRepository(db), time.Hour)
}

func TestRegister(t *testing.T) {
	svc := setupAuthService(t)

	user, err := svc.Register("Player@Example.com", "longenough", "Player")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if user.Email != "player@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "longenough" {
		t.Error("password should be stored hashed")
	}

	tests := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"duplicate email", "player@example.com", "longenough", "Other"},
		{"invalid email", "not-an-email", "longenough", "Player"},
		{"short password", "new@example.com", "short", "Player"},
		{"blank name", "new@example.com", "longenough", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(tt.email, tt.password, tt.userName); err == nil {
				t.Error("Register() should fail")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc := setupAuthService(t)

	if _, err := svc.Register("player@example.com", "longenough", "Player"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	user, session, err := svc.Login("player@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if session.ID == "" {
		t.Error("session has no ID")
	}
	if session.UserID != user.ID {
		t.Errorf("session.UserID = %d, want %d", session.UserID, user.ID)
	}

	if _, _, err := svc.Login("player@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("unknown@example.com", "longenough"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateSession(t *testing.T) {
	svc := setupAuthService(t)

	registered, err := svc.Register("player@example.com", "longenough", "Player")
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	_, session, err := svc.Login("player@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	user, err := svc.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession() error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user ID = %d, want %d", user.ID, registered.ID)
	}

	if _, err := svc.ValidateSession("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("missing session error = %v, want ErrSessionNotFound", err)
	}

	if err := svc.Logout(session.ID); err != nil {
		t.Fatalf("Logout() error: %v", err)
	}
	if _, err := svc.ValidateSession(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("logged-out session error = %v, want ErrSessionNotFound", err)
	}
}

func TestValidateSessionExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := "test_" + t.Name() + ".db"
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	// A negative session duration makes every new session already expired.
	svc := NewAuthService(repository.NewUserRepository(db), -time.Minute)

	if _, err := svc.Register("player@example.com", "longenough", "Player"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	_, session, err := svc.Login("player@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if _, err := svc.ValidateSession(session.ID); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("ValidateSession() error = %v, want ErrSessionExpired", err)
	}

	// The expired session is deleted on first touch.
	if _, err := svc.ValidateSession(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second ValidateSession() error = %v, want ErrSessionNotFound", err)
	}
}

func TestLoginOAuth(t *testing.T) {
	svc := setupAuthService(t)

	user, session, err := svc.LoginOAuth("google", "subject-1", "player@example.com", "Player")
	if err != nil {
		t.Fatalf("LoginOAuth() error: %v", err)
	}
	if session.ID == "" {
		t.Error("session has no ID")
	}

	// The same identity maps back to the same account.
	again, _, err := svc.LoginOAuth("google", "subject-1", "player@example.com", "Player")
	if err != nil {
		t.Fatalf("second LoginOAuth() error: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("second login user ID = %d, want %d", again.ID, user.ID)
	}

	// A different identity with a taken email is rejected.
	if _, _, err := svc.LoginOAuth("facebook", "subject-2", "player@example.com", "Player"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("LoginOAuth() error = %v, want ErrEmailTaken", err)
	}

	if _, _, err := svc.LoginOAuth("", "", "x@example.com", "X"); err == nil {
		t.Error("LoginOAuth() should reject missing provider info")
	}
}
