package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Analysis.Window != 10 {
		t.Errorf("expected default window 10, got %d", cfg.Analysis.Window)
	}
	if cfg.Analysis.Threshold != 2.0 {
		t.Errorf("expected default threshold 2.0, got %v", cfg.Analysis.Threshold)
	}
	if cfg.Analysis.LookbackDays != 365 {
		t.Errorf("expected default lookback 365, got %d", cfg.Analysis.LookbackDays)
	}
	if cfg.DataSource.Symbol != "AAPL" {
		t.Errorf("expected default symbol AAPL, got %s", cfg.DataSource.Symbol)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
data_source:
  symbol: MSFT
analysis:
  window: 20
  threshold: 1.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANALYSIS_WINDOW", "30")
	t.Setenv("SYMBOL", "GOOG")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Symbol != "GOOG" {
		t.Errorf("env should override file, got %s", cfg.DataSource.Symbol)
	}
	if cfg.Analysis.Window != 30 {
		t.Errorf("env should override file, got %d", cfg.Analysis.Window)
	}
	if cfg.Analysis.Threshold != 1.5 {
		t.Errorf("file value should survive, got %v", cfg.Analysis.Threshold)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		cfg.Telegram.BotToken = "token"
		cfg.Telegram.ChatID = "chat"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing bot token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing chat id", func(c *Config) { c.Telegram.ChatID = "" }},
		{"missing symbol", func(c *Config) { c.DataSource.Symbol = "" }},
		{"zero window", func(c *Config) { c.Analysis.Window = 0 }},
		{"negative threshold", func(c *Config) { c.Analysis.Threshold = -1 }},
		{"zero lookback", func(c *Config) { c.Analysis.LookbackDays = 0 }},
	}
	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
