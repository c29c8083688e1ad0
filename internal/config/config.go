// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for haven.
//
// Configuration lives at ~/.haven/config.toml with sensible defaults,
// environment variable overrides, and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/haven-tui/internal/api"
	"github.com/jeranaias/haven-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete haven configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Chat   ChatConfig   `toml:"chat"`
	UI     UIConfig     `toml:"ui"`
}

// ServerConfig locates the haven backend.
type ServerConfig struct {
	// BaseURL of the backend, e.g. http://127.0.0.1:5000
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig controls the message pipeline.
type ChatConfig struct {
	// DefaultLanguage is the reply language code: "en", "es", "fr"
	DefaultLanguage string `toml:"default_language"`
	// HistoryLimit caps how many archived messages load at startup
	// (0 = all)
	HistoryLimit int `toml:"history_limit"`
}

// UIConfig controls presentation.
type UIConfig struct {
	// Theme selects the color scheme: "dark" or "light"
	Theme string `toml:"theme"`
	// ChartHeight is the trend chart height in rows
	ChartHeight int `toml:"chart_height"`
	// ShowTimestamps renders a timestamp next to each message
	ShowTimestamps bool `toml:"show_timestamps"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://127.0.0.1:5000",
			TimeoutSecs: 30,
		},
		Chat: ChatConfig{
			DefaultLanguage: api.LangEnglish,
			HistoryLimit:    200,
		},
		UI: UIConfig{
			Theme:          "dark",
			ChartHeight:    10,
			ShowTimestamps: false,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the haven configuration directory (~/.haven).
func ConfigDir() (string, error) {
	// HAVEN_CONFIG points at an alternate directory
	if dir := os.Getenv("HAVEN_CONFIG"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".haven"), nil
}

// ConfigPath returns the TOML config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, falling back to defaults when absent.
// Environment overrides apply after the file, validation last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file. A missing
// file is not an error; defaults are used.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
		fillDefaults(cfg)
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = def.Server.BaseURL
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = def.Server.TimeoutSecs
	}
	if cfg.Chat.DefaultLanguage == "" {
		cfg.Chat.DefaultLanguage = def.Chat.DefaultLanguage
	}
	if cfg.Chat.HistoryLimit == 0 {
		cfg.Chat.HistoryLimit = def.Chat.HistoryLimit
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = def.UI.Theme
	}
	if cfg.UI.ChartHeight == 0 {
		cfg.UI.ChartHeight = def.UI.ChartHeight
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - HAVEN_SERVER_URL: overrides server.base_url
//   - HAVEN_TIMEOUT_SECS: overrides server.timeout_secs
//   - HAVEN_LANGUAGE: overrides chat.default_language
//   - HAVEN_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("HAVEN_SERVER_URL"); u != "" {
		c.Server.BaseURL = u
	}
	if secs := os.Getenv("HAVEN_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil {
			c.Server.TimeoutSecs = n
		}
	}
	if lang := os.Getenv("HAVEN_LANGUAGE"); lang != "" {
		c.Chat.DefaultLanguage = strings.ToLower(lang)
	}
	if theme := os.Getenv("HAVEN_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Server.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ValidationError{Field: "server.base_url", Message: "must be an http or https URL"}
	}
	if c.Server.TimeoutSecs < 1 || c.Server.TimeoutSecs > 300 {
		return ValidationError{Field: "server.timeout_secs", Message: "must be between 1 and 300"}
	}
	if !api.IsSupportedLanguage(c.Chat.DefaultLanguage) {
		return ValidationError{Field: "chat.default_language", Message: "must be one of: " + strings.Join(api.SupportedLanguages, ", ")}
	}
	if c.Chat.HistoryLimit < 0 {
		return ValidationError{Field: "chat.history_limit", Message: "must not be negative"}
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return ValidationError{Field: "ui.theme", Message: "must be dark or light"}
	}
	if c.UI.ChartHeight < 4 || c.UI.ChartHeight > 40 {
		return ValidationError{Field: "ui.chart_height", Message: "must be between 4 and 40"}
	}
	return nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to its default path atomically.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration to a specific file.
func SaveToPath(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# haven configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// GLOBAL INSTANCE
// =============================================================================

var (
	globalConfig     *Config
	globalConfigMu   sync.RWMutex
	globalConfigOnce sync.Once
)

// Global returns the global configuration instance, loading it on
// first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal replaces the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}
