package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testManager(t *testing.T) Manager {
	t.Helper()

	m, err := NewHS256Manager(Config{
		Issuer: "authd",
		TTL:    12 * time.Hour,
		Secret: "test-secret-key",
	})
	if err != nil {
		t.Fatalf("NewHS256Manager: %v", err)
	}
	return m
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tok, exp, err := m.Issue("01HXYZUSER0000000000000000", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if want := now.Add(12 * time.Hour); !exp.Equal(want) {
		t.Fatalf("exp=%v want=%v", exp, want)
	}

	uid, err := m.Verify(tok, now)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if uid != "01HXYZUSER0000000000000000" {
		t.Fatalf("uid=%q", uid)
	}
}

func TestVerifyExpired(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tok, _, err := m.Issue("user-1", issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Still valid just inside the window, expired just past it.
	if _, err := m.Verify(tok, issued.Add(12*time.Hour-time.Second)); err != nil {
		t.Fatalf("Verify inside window: %v", err)
	}
	_, err = m.Verify(tok, issued.Add(12*time.Hour+time.Second))
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Now().UTC()

	for _, tok := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 200)} {
		if _, err := m.Verify(tok, now); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q): expected ErrMalformed, got %v", tok, err)
		}
	}
}

func TestVerifyWrongKey(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Now().UTC()

	other, err := NewHS256Manager(Config{Issuer: "authd", TTL: 12 * time.Hour, Secret: "another-secret"})
	if err != nil {
		t.Fatalf("NewHS256Manager: %v", err)
	}

	tok, _, err := other.Issue("user-1", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(tok, now); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for wrong key, got %v", err)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	t.Parallel()

	m := testManager(t)
	now := time.Now().UTC()

	other, err := NewHS256Manager(Config{Issuer: "someone-else", TTL: 12 * time.Hour, Secret: "test-secret-key"})
	if err != nil {
		t.Fatalf("NewHS256Manager: %v", err)
	}

	tok, _, err := other.Issue("user-1", now)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := m.Verify(tok, now); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for wrong issuer, got %v", err)
	}
}

func TestNewHS256ManagerRejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewHS256Manager(Config{Issuer: "authd", TTL: time.Hour}); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for missing secret, got %v", err)
	}
	if _, err := NewHS256Manager(Config{Issuer: "authd", Secret: "s"}); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for zero TTL, got %v", err)
	}
}
