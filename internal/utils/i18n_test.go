package utils

import "testing"

func TestT_Fallback(t *testing.T) {
	if got := T("fr", "health.ok"); got != "ok" {
		t.Fatalf("fallback to en failed: %s", got)
	}
	if got := T("zh", "error.missing_fields"); got != "缺少必填字段" {
		t.Fatalf("zh lookup failed: %s", got)
	}
	if got := T("en", "no.such.key"); got != "no.such.key" {
		t.Fatalf("expected key echo, got %s", got)
	}
}

func TestTranslationsCoverSameKeys(t *testing.T) {
	for key := range translations["en"] {
		if _, ok := translations["zh"][key]; !ok {
			t.Fatalf("zh missing %s", key)
		}
	}
}
