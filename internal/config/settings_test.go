package config

import (
	"testing"
	"time"
)

type fakeSettings map[string]string

func (f fakeSettings) GetSetting(key string) (string, error) {
	return f[key], nil
}

func TestLoader_TypedGetters(t *testing.T) {
	loader := NewLoader(fakeSettings{
		"int":      "42",
		"bad_int":  "not a number",
		"bool":     "true",
		"str":      "hello",
		"dur":      "90m",
		"bad_dur":  "soon",
		"hours":    "12",
	})

	if got := loader.Int("int", 7); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := loader.Int("bad_int", 7); got != 7 {
		t.Fatalf("expected default 7 for invalid int, got %d", got)
	}
	if got := loader.Int("missing", 7); got != 7 {
		t.Fatalf("expected default 7 for missing int, got %d", got)
	}

	if !loader.Bool("bool", false) {
		t.Fatal("expected true")
	}
	if loader.Bool("missing", false) {
		t.Fatal("expected default false")
	}

	if got := loader.String("str", "dflt"); got != "hello" {
		t.Fatalf("expected hello, got %q", got)
	}
	if got := loader.String("missing", "dflt"); got != "dflt" {
		t.Fatalf("expected default, got %q", got)
	}

	if got := loader.Duration("dur", time.Minute); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", got)
	}
	if got := loader.Duration("bad_dur", time.Minute); got != time.Minute {
		t.Fatalf("expected default for invalid duration, got %v", got)
	}

	if got := loader.DurationHours("hours", 1); got != 12*time.Hour {
		t.Fatalf("expected 12h, got %v", got)
	}
	if got := loader.DurationHours("missing", 3); got != 3*time.Hour {
		t.Fatalf("expected default 3h, got %v", got)
	}
}
