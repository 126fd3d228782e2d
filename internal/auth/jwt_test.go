package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Issuer:   "befit-test",
		Secret:   "test-secret",
		TTLHours: 1,
	})
}

func TestSignAndParse(t *testing.T) {
	m := testManager()

	token, exp, err := m.Sign(42, "ana@example.com", true)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
	if claims.Issuer != "befit-test" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := testManager()

	// Hand-build a token whose exp is in the past; Parse must reject it,
	// which is what flips the storefront to "not authenticated".
	claims := Claims{
		UserID: 7,
		Email:  "old@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "befit-test",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Parse(s); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseWrongSecret(t *testing.T) {
	m := testManager()
	other := NewJWTManager(JWTConfig{Issuer: "befit-test", Secret: "other-secret", TTLHours: 1})

	token, _, err := other.Sign(1, "x@example.com", false)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestParseGarbage(t *testing.T) {
	m := testManager()
	if _, err := m.Parse("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
