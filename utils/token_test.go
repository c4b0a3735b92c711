package utils

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("64f1b2c3d4e5f60718293a4b", "student@example.com", "student", "test-secret", 60)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims["sub"] != "64f1b2c3d4e5f60718293a4b" {
		t.Errorf("Expected subject to round-trip, got %v", claims["sub"])
	}
	if claims["role"] != "student" {
		t.Errorf("Expected role to round-trip, got %v", claims["role"])
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("64f1b2c3d4e5f60718293a4b", "student@example.com", "student", "test-secret", 60)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Errorf("Expected validation to fail with the wrong secret")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword(hash, "password123") {
		t.Errorf("Expected matching password to verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Errorf("Expected mismatched password to fail")
	}
}
