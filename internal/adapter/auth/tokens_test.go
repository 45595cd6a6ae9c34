package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestTokens(t *testing.T, now time.Time) *Tokens {
	t.Helper()
	tokens, err := NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}
	tokens.now = func() time.Time { return now }
	return tokens
}

func TestTokens_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	tokens := newTestTokens(t, now)

	signed, expires, err := tokens.Issue("e-1", RoleEmployee, "d-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if !expires.Equal(now.Add(time.Hour)) {
		t.Errorf("expires = %v, want %v", expires, now.Add(time.Hour))
	}

	claims, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Subject != "e-1" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "e-1")
	}
	if claims.Role != RoleEmployee {
		t.Errorf("Role = %q, want %q", claims.Role, RoleEmployee)
	}
	if claims.DealerID != "d-1" {
		t.Errorf("DealerID = %q, want %q", claims.DealerID, "d-1")
	}
}

func TestTokens_Verify_Expired(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	tokens := newTestTokens(t, now)

	signed, _, err := tokens.Issue("d-1", RoleDealer, "d-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tokens.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := tokens.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want %v", err, ErrInvalidToken)
	}
}

func TestTokens_Verify_WrongSecret(t *testing.T) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	signed, _, err := newTestTokens(t, now).Issue("d-1", RoleAdmin, "d-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	other, err := NewTokens("another-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokens failed: %v", err)
	}
	other.now = func() time.Time { return now }

	if _, err := other.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want %v", err, ErrInvalidToken)
	}
}

func TestTokens_Verify_Garbage(t *testing.T) {
	tokens := newTestTokens(t, time.Now())
	if _, err := tokens.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want %v", err, ErrInvalidToken)
	}
}

func TestNewTokens_RequiresSecret(t *testing.T) {
	if _, err := NewTokens("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
