package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default config file to be created: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Provider != "mock" {
		t.Errorf("expected default auth provider 'mock', got %q", cfg.Auth.Provider)
	}
	if cfg.Theme.Default != "dark" {
		t.Errorf("expected default theme 'dark', got %q", cfg.Theme.Default)
	}
	if cfg.Chat.ReplyDelayMinMS != 1500 || cfg.Chat.ReplyDelayMaxMS != 2500 {
		t.Errorf("unexpected default reply delay range: %d-%d",
			cfg.Chat.ReplyDelayMinMS, cfg.Chat.ReplyDelayMaxMS)
	}
}

func TestLoadPartialConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	partial := `{"server": {"port": 9090}, "auth": {"provider": "local"}}`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090 from file, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Provider != "local" {
		t.Errorf("expected auth provider 'local' from file, got %q", cfg.Auth.Provider)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Database != "figment.db" {
		t.Errorf("expected default database path, got %q", cfg.Database)
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	t.Setenv("FIGMENT_PORT", "3000")
	t.Setenv("FIGMENT_AUTH_PROVIDER", "local")
	t.Setenv("FIGMENT_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("expected env override port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Provider != "local" {
		t.Errorf("expected env override provider 'local', got %q", cfg.Auth.Provider)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected env override level 'debug', got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad auth provider", func(c *Config) { c.Auth.Provider = "oauth" }},
		{"inverted delay range", func(c *Config) {
			c.Chat.ReplyDelayMinMS = 2000
			c.Chat.ReplyDelayMaxMS = 1000
		}},
		{"bad theme", func(c *Config) { c.Theme.Default = "sepia" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
