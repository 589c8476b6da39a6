package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "hunter2") || VerifyPassword(hash, "hunter3") {
		t.Fatalf("verify mismatch")
	}
}

func TestNewAccessTokenClaims(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ADMIN", 5)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if d := time.Until(tok.Exp); d < 4*time.Minute || d > 5*time.Minute {
		t.Fatalf("exp in %s", d)
	}
	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != float64(42) || claims["role"] != "ADMIN" {
		t.Fatalf("claims: %v", claims)
	}
}
