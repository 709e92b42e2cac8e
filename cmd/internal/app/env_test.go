package app

import (
	"testing"
	"time"
)

func TestEnvString(t *testing.T) {
	t.Setenv("AUTHD_TEST_STR", "  value  ")
	if got := EnvString("AUTHD_TEST_STR", "def"); got != "value" {
		t.Fatalf("EnvString=%q", got)
	}
	if got := EnvString("AUTHD_TEST_STR_MISSING", "def"); got != "def" {
		t.Fatalf("EnvString default=%q", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("AUTHD_TEST_BOOL", "true")
	if !EnvBool("AUTHD_TEST_BOOL", false) {
		t.Fatalf("EnvBool should be true")
	}
	t.Setenv("AUTHD_TEST_BOOL", "nope")
	if EnvBool("AUTHD_TEST_BOOL", false) {
		t.Fatalf("garbage must keep the default")
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("AUTHD_TEST_INT", "42")
	if got := EnvInt("AUTHD_TEST_INT", 7); got != 42 {
		t.Fatalf("EnvInt=%d", got)
	}
	t.Setenv("AUTHD_TEST_INT", "-3")
	if got := EnvInt("AUTHD_TEST_INT", 7); got != 7 {
		t.Fatalf("non-positive must keep the default, got %d", got)
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("AUTHD_TEST_DUR", "90s")
	if got := EnvDuration("AUTHD_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("EnvDuration=%v", got)
	}
	t.Setenv("AUTHD_TEST_DUR", "soon")
	if got := EnvDuration("AUTHD_TEST_DUR", time.Second); got != time.Second {
		t.Fatalf("garbage must keep the default, got %v", got)
	}
}
