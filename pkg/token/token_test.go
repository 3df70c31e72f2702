package token

import "testing"

const testSecret = "test-secret"

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := GenerateJWT(42, "admin", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(signed, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(42, "player", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(signed, "another-secret"); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	signed, err := GenerateJWT(42, "player", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(signed, testSecret); err == nil {
		t.Error("expected validation failure for expired token")
	}
}

func TestValidateJWTRejectsEmptyInput(t *testing.T) {
	if _, err := ValidateJWT("", testSecret); err == nil {
		t.Error("expected error for empty token")
	}
	if _, err := ValidateJWT("not-a-token", testSecret); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestRefreshTokensCarryUniqueIDs(t *testing.T) {
	first, err := GenerateRefreshToken(42, testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	second, err := GenerateRefreshToken(42, testSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if first == second {
		t.Error("refresh tokens for the same user must differ")
	}

	claims, err := ValidateJWT(first, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.ID == "" {
		t.Error("refresh token should carry a jti")
	}
}
