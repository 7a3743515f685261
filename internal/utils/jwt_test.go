package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "COORDINATOR", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if at.Token == "" {
		t.Fatal("empty token")
	}
	if remain := time.Until(at.Exp); remain < 14*time.Minute || remain > 16*time.Minute {
		t.Errorf("expiry %v not ~15m out", remain)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
		t.Errorf("sub = %v, want 42", claims["sub"])
	}
	if role, _ := claims["role"].(string); role != "COORDINATOR" {
		t.Errorf("role = %q, want COORDINATOR", role)
	}
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	at, err := NewAccessToken("right", 1, "ADMIN", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong"), nil
	})
	if err == nil && tok.Valid {
		t.Error("token validated with the wrong secret")
	}
}

func TestNewRefreshToken(t *testing.T) {
	r1, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(r1.Raw) != 96 { // 48 random bytes hex encoded
		t.Errorf("raw length = %d, want 96", len(r1.Raw))
	}
	r2, _ := NewRefreshToken(7)
	if r1.Raw == r2.Raw {
		t.Error("two refresh tokens are identical")
	}
}

func TestHashRefreshRaw(t *testing.T) {
	h1 := HashRefreshRaw("abc")
	h2 := HashRefreshRaw("abc")
	if h1 != h2 {
		t.Error("hash is not deterministic")
	}
	if len(h1) != 64 { // sha256 hex
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if HashRefreshRaw("abd") == h1 {
		t.Error("different inputs produced the same hash")
	}
}
