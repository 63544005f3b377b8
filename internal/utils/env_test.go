package utils

import (
	"reflect"
	"testing"
	"time"
)

func TestSafeEnv(t *testing.T) {
	const key = "_EVOA_TEST_SAFEENV"
	t.Setenv(key, "")
	if got := SafeEnv(key, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv(key, " value ")
	if got := SafeEnv(key, "fallback"); got != "value" {
		t.Fatalf("expected 'value', got %q", got)
	}
}

func TestSafeEnvTyped(t *testing.T) {
	t.Setenv("_EVOA_INT", "7")
	t.Setenv("_EVOA_FLOAT", "0.5")
	t.Setenv("_EVOA_DUR", "30m")
	t.Setenv("_EVOA_LIST", "http://a, ,http://b")
	if n, err := SafeEnvInt("_EVOA_INT", 1); err != nil || n != 7 {
		t.Fatalf("SafeEnvInt = %d, %v", n, err)
	}
	if n, err := SafeEnvInt("_EVOA_UNSET_INT", 3); err != nil || n != 3 {
		t.Fatalf("SafeEnvInt fallback = %d, %v", n, err)
	}
	if f, err := SafeEnvFloat("_EVOA_FLOAT", 1); err != nil || f != 0.5 {
		t.Fatalf("SafeEnvFloat = %v, %v", f, err)
	}
	if d, err := SafeEnvDuration("_EVOA_DUR", time.Second); err != nil || d != 30*time.Minute {
		t.Fatalf("SafeEnvDuration = %v, %v", d, err)
	}
	if got := SafeEnvList("_EVOA_LIST", nil); !reflect.DeepEqual(got, []string{"http://a", "http://b"}) {
		t.Fatalf("SafeEnvList = %v", got)
	}
	t.Setenv("_EVOA_INT", "seven")
	if _, err := SafeEnvInt("_EVOA_INT", 1); err == nil {
		t.Fatalf("expected parse error")
	}
	t.Setenv("_EVOA_DUR", "soon")
	if _, err := SafeEnvDuration("_EVOA_DUR", time.Second); err == nil {
		t.Fatalf("expected parse error")
	}
}
