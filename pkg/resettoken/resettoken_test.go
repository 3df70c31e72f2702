package resettoken

import (
	"errors"
	"testing"
)

const (
	testSecret = "test-secret"
	oldHash    = "$2a$14$old-password-hash"
	newHash    = "$2a$14$new-password-hash"
)

func TestGenerateAndVerify(t *testing.T) {
	tok, err := Generate(42, oldHash, testSecret, 30)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	userID, err := Verify(tok, oldHash, testSecret)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestVerifyFailsAfterPasswordChange(t *testing.T) {
	tok, err := Generate(42, oldHash, testSecret, 30)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// The signing key derives from the password hash: changing the password
	// invalidates every outstanding token.
	if _, err := Verify(tok, newHash, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken after password change, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	tok, err := Generate(42, oldHash, testSecret, -1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := Verify(tok, oldHash, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := Verify("definitely-not-a-jwt", oldHash, testSecret); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
