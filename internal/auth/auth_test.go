package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	m := &Manager{Secret: []byte("secret"), TTL: time.Hour, Issuer: "agency-backend"}
	token, err := m.NewToken("u1", "admin")
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	m := &Manager{Secret: []byte("secret"), TTL: time.Hour, Issuer: "agency-backend"}
	token, _ := m.NewToken("u1", "admin")

	other := &Manager{Secret: []byte("other"), TTL: time.Hour, Issuer: "agency-backend"}
	if _, err := other.Parse(token); err == nil {
		t.Fatalf("expected signature error")
	}

	expired := &Manager{Secret: []byte("secret"), TTL: -time.Minute, Issuer: "agency-backend"}
	old, _ := expired.NewToken("u1", "admin")
	if _, err := m.Parse(old); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestPasswordHashing(t *testing.T) {
	a, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, _ := HashPassword("hunter22")
	if a == b {
		t.Fatalf("expected per-hash salt to produce different hashes")
	}
	if err := ComparePassword(a, "hunter22"); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if err := ComparePassword(a, "wrong"); err == nil {
		t.Fatalf("expected mismatch")
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error on empty password")
	}
}
