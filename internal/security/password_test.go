package security

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "testPassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "" {
		t.Error("HashPassword() returned empty string")
	}

	if hash == password {
		t.Error("HashPassword() returned unhashed password")
	}

	// Test same password produces different hashes (due to salt)
	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == hash2 {
		t.Error("HashPassword() should produce different hashes due to salt")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "mySecurePassword"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "correct password",
			password: password,
			hash:     hash,
			want:     true,
		},
		{
			name:     "incorrect password",
			password: "wrongPassword",
			hash:     hash,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			hash:     hash,
			want:     false,
		},
		{
			name:     "empty hash",
			password: password,
			hash:     "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckPassword(tt.hash, tt.password)
			if result != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestCSRFGenerator(t *testing.T) {
	generator := NewCSRFGenerator("test-secret")

	token, err := generator.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}
	// Tokens travel in headers and form fields, so they must be URL-safe.
	if strings.ContainsAny(token, "+/=") {
		t.Errorf("GenerateToken() = %q, want URL-safe encoding", token)
	}

	// Deterministic per session
	token2, err := generator.GenerateToken("session-1")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token != token2 {
		t.Error("GenerateToken() should be deterministic for a session")
	}

	other, err := generator.GenerateToken("session-2")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == other {
		t.Error("different sessions should get different tokens")
	}

	if _, err := generator.GenerateToken(""); err == nil {
		t.Error("GenerateToken() should reject empty session ID")
	}

	tests := []struct {
		name      string
		sessionID string
		token     string
		want      bool
	}{
		{"valid token", "session-1", token, true},
		{"wrong session", "session-2", token, false},
		{"tampered token", "session-1", token + "x", false},
		{"empty token", "session-1", "", false},
		{"empty session", "", token, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := generator.ValidateToken(tt.sessionID, tt.token); got != tt.want {
				t.Errorf("ValidateToken() = %v, want %v", got, tt.want)
			}
		})
	}

	otherSecret := NewCSRFGenerator("other-secret")
	if otherSecret.ValidateToken("session-1", token) {
		t.Error("token should not validate under a different secret")
	}
}
