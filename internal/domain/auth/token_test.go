package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	session := validSession("kosei", RoleEmployee)

	token, err := GenerateToken(secret, session, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.SessionToken != session.Token() {
		t.Fatalf("session token = %q, want %q", claims.SessionToken, session.Token())
	}
	if claims.Username != "kosei" || claims.Role != string(RoleEmployee) {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", validSession("kosei", RoleEmployee), time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("secret", validSession("kosei", RoleEmployee), -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected expiry failure")
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	s := validSession("kosei", RoleEmployee)

	r.add(s)
	if got, ok := r.Lookup(s.Token()); !ok || got != s {
		t.Fatal("expected to find registered session")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("unexpected hit for unknown token")
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}

	if !r.remove(s.Token()) {
		t.Fatal("first remove should report presence")
	}
	if r.remove(s.Token()) {
		t.Fatal("second remove must report absence")
	}
	if r.Len() != 0 {
		t.Fatalf("len = %d, want 0", r.Len())
	}
}
