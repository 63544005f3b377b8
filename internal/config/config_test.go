package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"EVOA_ADDR", "GEMINI_MODEL", "EVOA_ANALYSIS_TIMEOUT", "EVOA_UPLOAD_MAX_DURATION", "EVOA_ALLOWED_ORIGINS", "EVOA_RATE_LIMIT_RPS", "EVOA_RATE_LIMIT_BURST", "CLOUDFLARE_API_BASE"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Gemini.Model != "gemini-2.5-flash" || cfg.AnalysisTimeout != 45*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Upload.MaxDuration != 120 || cfg.Upload.URLTTL != 30*time.Minute || cfg.Upload.BaseURL != "https://api.cloudflare.com" {
		t.Fatalf("unexpected upload defaults %+v", cfg.Upload)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" || !cfg.RateLimitEnabled() {
		t.Fatalf("unexpected origins/limits %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("EVOA_ADDR", ":9090")
	t.Setenv("EVOA_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("EVOA_UPLOAD_MAX_DURATION", "90")
	t.Setenv("EVOA_RATE_LIMIT_RPS", "0")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "acc")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || len(cfg.Upload.AllowedOrigins) != 2 || cfg.Upload.MaxDuration != 90 || cfg.Upload.AccountID != "acc" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.RateLimitEnabled() {
		t.Fatalf("rps 0 should disable limiter")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("EVOA_ANALYSIS_TIMEOUT", "soon")
	t.Setenv("EVOA_UPLOAD_MAX_DURATION", "-5")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "EVOA_ANALYSIS_TIMEOUT") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	t.Setenv("EVOA_ANALYSIS_TIMEOUT", "")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "EVOA_UPLOAD_MAX_DURATION") {
		t.Fatalf("expected duration error, got %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("EVOA_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("EVOA_TEST_DOTENV", "")
	os.Unsetenv("EVOA_TEST_DOTENV")
	LoadDotEnv(path)
	if got := os.Getenv("EVOA_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
	LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
}
