package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
    at, err := NewAccessToken("test-secret", 42, "PATIENT", 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    if err != nil || !parsed.Valid {
        t.Fatalf("token does not parse back: %v", err)
    }
    claims, ok := parsed.Claims.(jwt.MapClaims)
    if !ok {
        t.Fatalf("unexpected claims type %T", parsed.Claims)
    }
    if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
        t.Fatalf("sub = %v, want 42", claims["sub"])
    }
    if claims["role"] != "PATIENT" {
        t.Fatalf("role = %v, want PATIENT", claims["role"])
    }
    if time.Until(at.Exp) > 15*time.Minute {
        t.Fatalf("expiry %v further out than the ttl", at.Exp)
    }
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("secret-a", 1, "ADMIN", 5)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    _, err = jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("secret-b"), nil
    })
    if err == nil {
        t.Fatal("token verified under the wrong secret")
    }
}

func TestNewRefreshToken(t *testing.T) {
    rt, err := NewRefreshToken(7)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 {
        t.Fatalf("raw length = %d, want 96", len(rt.Raw))
    }
    if !rt.Exp.After(time.Now().UTC().Add(6 * 24 * time.Hour)) {
        t.Fatalf("expiry %v too close for a 7 day ttl", rt.Exp)
    }
    other, err := NewRefreshToken(7)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if rt.Raw == other.Raw {
        t.Fatal("two refresh tokens collided")
    }
}

func TestHashRefreshRaw(t *testing.T) {
    a := HashRefreshRaw("token-one")
    b := HashRefreshRaw("token-one")
    if a != b {
        t.Fatal("hash is not deterministic")
    }
    if len(a) != 64 {
        t.Fatalf("digest length = %d, want 64", len(a))
    }
    if a == HashRefreshRaw("token-two") {
        t.Fatal("distinct tokens share a digest")
    }
}
