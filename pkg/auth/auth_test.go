package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPassword(hash, "secret123") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	Configure("test-secret", time.Hour)

	token, err := GenerateToken(7, "maria", RoleStaff)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	s := SessionFromClaims(claims)
	if s.UserID != 7 || s.Username != "maria" || s.Role != RoleStaff {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	Configure("first-secret", time.Hour)
	token, err := GenerateToken(1, "admin", RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	Configure("second-secret", time.Hour)
	if _, err := ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionRoles(t *testing.T) {
	if NormalizeRole(" Admin ") != RoleAdmin {
		t.Fatal("expected admin")
	}
	if NormalizeRole("janitor") != "" {
		t.Fatal("unknown role should normalize to empty")
	}

	student := Session{UserID: 3, Role: RoleStudent}
	if !student.CanRequest() || student.IsAdmin() {
		t.Fatalf("student permissions wrong: %+v", student)
	}
	admin := Session{UserID: 1, Role: RoleAdmin}
	if admin.CanRequest() || !admin.HasRole(RoleStaff, RoleAdmin) {
		t.Fatalf("admin permissions wrong: %+v", admin)
	}

	ctx := WithSession(context.Background(), student)
	got, ok := FromContext(ctx)
	if !ok || got != student {
		t.Fatalf("session not stored in context: %+v", got)
	}
}
