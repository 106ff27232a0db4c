package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.GenerateToken("admin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "admin" {
		t.Errorf("subject = %q, want admin", subject)
	}
}

func TestParseToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := svc.ParseToken("not-a-token"); err == nil {
			t.Error("expected an error for a malformed token")
		}
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour)
		token, err := other.GenerateToken("admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ParseToken(token); err == nil {
			t.Error("expected an error for a token signed with another secret")
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewTokenService("test-secret", -time.Minute)
		token, err := expired.GenerateToken("admin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ParseToken(token); err == nil {
			t.Error("expected an error for an expired token")
		}
	})
}
