package handlers

import (
	"testing"
	"time"
)

func TestValidateNewPassword(t *testing.T) {
	if err := validateNewPassword("secret1", "secret1"); err != nil {
		t.Fatalf("expected matching password to pass, got %v", err)
	}
	if err := validateNewPassword("secret1", "secret2"); err == nil {
		t.Fatal("expected mismatch to fail")
	}
	if err := validateNewPassword("abc", "abc"); err == nil {
		t.Fatal("expected short password to fail")
	}
}

func TestNewUserDocumentDefaults(t *testing.T) {
	now := time.Now()
	user := newUserDocument("new@example.com", "hash", now)

	if user.Role != "user" {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.IsBlocked {
		t.Fatal("expected new user to not be blocked")
	}
	if user.Cart == nil || len(user.Cart) != 0 {
		t.Fatalf("expected empty non-nil cart, got %+v", user.Cart)
	}
	if !user.CreatedAt.Equal(now) || !user.UpdatedAt.Equal(now) {
		t.Fatal("expected timestamps set to now")
	}
}
