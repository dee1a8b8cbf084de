package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig  `json:"server"`
	Database   string        `json:"database"` // sqlite file path
	Characters string        `json:"characters"`
	Logging    LoggingConfig `json:"logging"`
	Auth       AuthConfig    `json:"auth"`
	Chat       ChatConfig    `json:"chat"`
	Theme      ThemeConfig   `json:"theme"`
}

// ServerConfig controls the HTTP server
type ServerConfig struct {
	Port        int    `json:"port"`
	BindAddress string `json:"bind_address"`
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level        string `json:"level"`         // "debug", "info", "warn", "error"
	DebugEnabled bool   `json:"debug_enabled"` // Enable debug file logging
	File         string `json:"file"`          // Debug log file path
	MaxSizeMB    int    `json:"max_size_mb"`   // Max file size before rotation
	MaxBackups   int    `json:"max_backups"`   // Number of backup files to keep
}

// AuthConfig controls the authentication provider
type AuthConfig struct {
	Provider        string `json:"provider"`          // "mock", "local", "sso"
	TokenExpiryDays int    `json:"token_expiry_days"` // local provider session tokens
}

// ChatConfig controls the simulated reply timing
type ChatConfig struct {
	ReplyDelayMinMS int `json:"reply_delay_min_ms"`
	ReplyDelayMaxMS int `json:"reply_delay_max_ms"`
	HistoryLimit    int `json:"history_limit"` // max messages returned per transcript fetch, 0 = all
}

// ThemeConfig controls the display theme
type ThemeConfig struct {
	Default string `json:"default"` // "light" or "dark"
	File    string `json:"file"`    // optional palette override file
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			BindAddress: "127.0.0.1",
		},
		Database:   "figment.db",
		Characters: "characters.json",
		Logging: LoggingConfig{
			Level:        "info",
			DebugEnabled: true,
			File:         "debug.log",
			MaxSizeMB:    10,
			MaxBackups:   3,
		},
		Auth: AuthConfig{
			Provider:        "mock",
			TokenExpiryDays: 7,
		},
		Chat: ChatConfig{
			ReplyDelayMinMS: 1500,
			ReplyDelayMaxMS: 2500,
			HistoryLimit:    0,
		},
		Theme: ThemeConfig{
			Default: "dark",
		},
	}
}

// Load reads configuration from file and environment. A missing file is
// created with defaults so a fresh checkout runs without setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.applyMissingDefaults()
	} else {
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk as indented JSON
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// applyMissingDefaults fills fields a partial config file left zero-valued
func (c *Config) applyMissingDefaults() {
	def := Default()

	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.BindAddress == "" {
		c.Server.BindAddress = def.Server.BindAddress
	}
	if c.Database == "" {
		c.Database = def.Database
	}
	if c.Characters == "" {
		c.Characters = def.Characters
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = def.Logging.File
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = def.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = def.Logging.MaxBackups
	}
	if c.Auth.Provider == "" {
		c.Auth.Provider = def.Auth.Provider
	}
	if c.Auth.TokenExpiryDays == 0 {
		c.Auth.TokenExpiryDays = def.Auth.TokenExpiryDays
	}
	if c.Chat.ReplyDelayMinMS == 0 {
		c.Chat.ReplyDelayMinMS = def.Chat.ReplyDelayMinMS
	}
	if c.Chat.ReplyDelayMaxMS == 0 {
		c.Chat.ReplyDelayMaxMS = def.Chat.ReplyDelayMaxMS
	}
	if c.Theme.Default == "" {
		c.Theme.Default = def.Theme.Default
	}
}

// applyEnvOverrides lets the environment win over the config file
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("FIGMENT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("FIGMENT_BIND"); v != "" {
		c.Server.BindAddress = v
	}
	if v := os.Getenv("FIGMENT_DB"); v != "" {
		c.Database = v
	}
	if v := os.Getenv("FIGMENT_CHARACTERS"); v != "" {
		c.Characters = v
	}
	if v := os.Getenv("FIGMENT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FIGMENT_AUTH_PROVIDER"); v != "" {
		c.Auth.Provider = v
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Logging.Level)
	}
	switch c.Auth.Provider {
	case "mock", "local", "sso":
	default:
		return fmt.Errorf("unknown auth provider: %s", c.Auth.Provider)
	}
	if c.Chat.ReplyDelayMinMS < 0 || c.Chat.ReplyDelayMaxMS < c.Chat.ReplyDelayMinMS {
		return fmt.Errorf("invalid reply delay range: %d-%d ms", c.Chat.ReplyDelayMinMS, c.Chat.ReplyDelayMaxMS)
	}
	switch c.Theme.Default {
	case "light", "dark":
	default:
		return fmt.Errorf("unknown default theme: %s", c.Theme.Default)
	}
	return nil
}
