package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerifyToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue("frontdesk")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "frontdesk" {
		t.Fatalf("expected subject frontdesk, got %q", subject)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, err := NewTokenIssuer("secret-one", time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	other, err := NewTokenIssuer("secret-two", time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	token, err := issuer.Issue("frontdesk")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	// Same secret, but the token was minted with a negative lifetime.
	expired := &TokenIssuer{secret: issuer.secret, ttl: -time.Minute}

	token, err := expired.Issue("frontdesk")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if _, err := issuer.Verify("not.a.token"); err == nil {
		t.Fatal("expected garbage token to fail verification")
	}
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("   ", time.Minute); err == nil {
		t.Fatal("expected error for blank secret")
	}
}

func TestNewTokenIssuerDefaultTTL(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", 0)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	if issuer.ttl != DefaultTokenTTL {
		t.Fatalf("expected default ttl, got %v", issuer.ttl)
	}
}
