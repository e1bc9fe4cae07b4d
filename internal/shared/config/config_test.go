package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "LLM_PROVIDER", "LLM_MODEL", "LLM_TIMEOUT_SECONDS", "PROFILE_CACHE_SIZE", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %q", cfg.Env)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected provider openai, got %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("expected model gpt-4o-mini, got %q", cfg.LLMModel)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %s", cfg.LLMTimeout)
	}
	if cfg.ProfileCacheSize != 256 {
		t.Fatalf("expected cache size 256, got %d", cfg.ProfileCacheSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_TIMEOUT_SECONDS", "12")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %q", cfg.Env)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected gemini, got %q", cfg.LLMProvider)
	}
	if cfg.LLMTimeout != 12*time.Second {
		t.Fatalf("expected 12s, got %s", cfg.LLMTimeout)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected 2.5 rps, got %v", cfg.RateLimitRPS)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	t.Setenv("LLM_TIMEOUT_SECONDS", "soon")
	t.Setenv("PROFILE_CACHE_SIZE", "-3")

	cfg := Load()
	if cfg.LLMTimeout != 30*time.Second {
		t.Fatalf("expected fallback timeout, got %s", cfg.LLMTimeout)
	}
	if cfg.ProfileCacheSize != 256 {
		t.Fatalf("expected fallback cache size, got %d", cfg.ProfileCacheSize)
	}
}

func TestLoadEnvFilesDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("COACH_TEST_A=from-file\nCOACH_TEST_B=\"quoted\"\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("COACH_TEST_A", "from-process")
	t.Setenv("COACH_TEST_B", "")
	os.Unsetenv("COACH_TEST_B")

	loadEnvFiles(path, filepath.Join(dir, "missing.env"))

	if got := os.Getenv("COACH_TEST_A"); got != "from-process" {
		t.Fatalf("expected process env to win, got %q", got)
	}
	if got := os.Getenv("COACH_TEST_B"); got != "quoted" {
		t.Fatalf("expected quoted value from file, got %q", got)
	}
}
