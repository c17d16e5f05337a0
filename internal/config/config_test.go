package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadIncludesBudgetDefaults(t *testing.T) {
	t.Setenv("MAX_TOKENS", "")
	t.Setenv("DAILY_LIMIT_USD", "")
	t.Setenv("MONTHLY_LIMIT_USD", "")
	t.Setenv("INTER_CALL_DELAY", "")
	t.Setenv("COST_PER_TOKEN_USD", "")

	cfg := Load()
	if cfg.MaxTokens != 3000 {
		t.Fatalf("expected default max tokens 3000, got %d", cfg.MaxTokens)
	}
	if cfg.DailyLimitUSD != 450 {
		t.Fatalf("expected default daily limit 450, got %v", cfg.DailyLimitUSD)
	}
	if cfg.MonthlyLimitUSD != 2000 {
		t.Fatalf("expected default monthly limit 2000, got %v", cfg.MonthlyLimitUSD)
	}
	if cfg.InterCallDelay != 500*time.Millisecond {
		t.Fatalf("expected default inter-call delay 500ms, got %v", cfg.InterCallDelay)
	}
	if cfg.CostPerTokenUSD != 0.00001 {
		t.Fatalf("expected default cost per token 0.00001, got %v", cfg.CostPerTokenUSD)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("MAX_TOKENS", "1200")
	t.Setenv("DAILY_LIMIT_USD", "25.5")
	t.Setenv("INTER_CALL_DELAY", "2s")

	cfg := Load()
	if cfg.MaxTokens != 1200 {
		t.Fatalf("expected max tokens 1200, got %d", cfg.MaxTokens)
	}
	if cfg.DailyLimitUSD != 25.5 {
		t.Fatalf("expected daily limit 25.5, got %v", cfg.DailyLimitUSD)
	}
	if cfg.InterCallDelay != 2*time.Second {
		t.Fatalf("expected inter-call delay 2s, got %v", cfg.InterCallDelay)
	}
}

func TestFromFileOverlaysEnv(t *testing.T) {
	t.Setenv("MAX_TOKENS", "1200")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "max_tokens: 800\ndaily_limit_usd: 10\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error = %v", err)
	}
	if cfg.MaxTokens != 800 {
		t.Fatalf("expected file value 800 to win, got %d", cfg.MaxTokens)
	}
	if cfg.DailyLimitUSD != 10 {
		t.Fatalf("expected file value 10 to win, got %v", cfg.DailyLimitUSD)
	}
	if cfg.MonthlyLimitUSD != 2000 {
		t.Fatalf("expected untouched default 2000, got %v", cfg.MonthlyLimitUSD)
	}
}

func TestFromFileMissingFileFails(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
