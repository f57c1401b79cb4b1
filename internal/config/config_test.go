package config

import (
	"testing"
	"time"
)

func TestGetHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "7")
	t.Setenv("TEST_DUR", "250ms")
	t.Setenv("TEST_BAD_INT", "seven")

	if got := Get("TEST_STR", "fallback"); got != "value" {
		t.Fatalf("Get = %q", got)
	}
	if got := Get("TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get fallback = %q", got)
	}
	if got := GetInt("TEST_INT", 1); got != 7 {
		t.Fatalf("GetInt = %d", got)
	}
	if got := GetInt("TEST_BAD_INT", 1); got != 1 {
		t.Fatalf("GetInt with bad value = %d", got)
	}
	if got := GetDuration("TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("GetDuration = %v", got)
	}
	if got := GetDuration("TEST_MISSING", time.Second); got != time.Second {
		t.Fatalf("GetDuration fallback = %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr == "" {
		t.Fatalf("expected a default HTTP address")
	}
	if cfg.RetryMaxAttempts != 3 || cfg.RetryInitialDelay != time.Second || cfg.RetryMaxDelay != 60*time.Second {
		t.Fatalf("unexpected retry defaults: %+v", cfg)
	}
	if cfg.CountryHint != "Denmark" {
		t.Fatalf("unexpected country hint: %q", cfg.CountryHint)
	}
}
