// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/jeranaias/allie-tui/internal/session"
	"github.com/jeranaias/allie-tui/internal/suggest"
	"github.com/jeranaias/allie-tui/internal/transport"
	"github.com/jeranaias/allie-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete allie configuration.
type Config struct {
	// Chat endpoint
	Endpoint EndpointConfig `toml:"endpoint" json:"endpoint" yaml:"endpoint"`

	// Assistant presentation and suggestions
	Assistant AssistantConfig `toml:"assistant" json:"assistant" yaml:"assistant"`

	// Diagnostics
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`

	// Terminal UI
	UI UIConfig `toml:"ui" json:"ui" yaml:"ui"`
}

// EndpointConfig describes the remote chat service.
type EndpointConfig struct {
	// URL receives POST {"message": ...}
	URL string `toml:"url" json:"url" yaml:"url"`
	// TimeoutSecs bounds one exchange
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs" yaml:"timeout_secs"`
	// RequestsPerMinute limits outgoing requests; 0 disables the limit
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute" yaml:"requests_per_minute"`
}

// Timeout returns TimeoutSecs as a duration.
func (e EndpointConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// AssistantConfig contains what the widget shows.
type AssistantConfig struct {
	Title        string `toml:"title" json:"title" yaml:"title"`
	FallbackText string `toml:"fallback_text" json:"fallback_text" yaml:"fallback_text"`
	// Suggestions is the catalog sampled for a new conversation
	Suggestions []string `toml:"suggestions" json:"suggestions" yaml:"suggestions"`
	// SuggestionCount is how many suggestions are offered
	SuggestionCount int `toml:"suggestion_count" json:"suggestion_count" yaml:"suggestion_count"`
	// Seed makes suggestion sampling reproducible; 0 picks a random seed
	Seed uint64 `toml:"seed" json:"seed" yaml:"seed"`
}

// LoggingConfig contains log settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error, disabled
	Level string `toml:"level" json:"level" yaml:"level"`
	// File receives logs; the TUI always logs to a file (default: ~/.allie/allie.log)
	File string `toml:"file" json:"file" yaml:"file"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Width caps the widget width in columns; 0 uses the terminal width
	Width int `toml:"width" json:"width" yaml:"width"`
	// ShowTimestamps prints the time next to each turn
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps" yaml:"show_timestamps"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultTitle is the widget header.
const DefaultTitle = "Allie, Allora's AI Assistant"

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:         transport.DefaultURL,
			TimeoutSecs: int(transport.DefaultTimeout / time.Second),
		},
		Assistant: AssistantConfig{
			Title:           DefaultTitle,
			FallbackText:    session.DefaultFallbackText,
			Suggestions:     suggest.DefaultCatalog().Questions(),
			SuggestionCount: suggest.DefaultCount,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Catalog returns the configured suggestion catalog.
func (c *Config) Catalog() suggest.Catalog {
	return suggest.NewCatalog(c.Assistant.Suggestions...)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the allie configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "could not determine home directory")
	}
	return filepath.Join(home, ".allie"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns where the TUI writes its log when none is configured.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "allie.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration. A non-empty path is read as-is; otherwise the
// TOML file is tried first, then JSON, then defaults. Environment overrides
// are applied last and the result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()

	tomlPath, err := ConfigPathTOML()
	if err == nil && fileExists(tomlPath) {
		if err := LoadTOML(cfg, tomlPath); err != nil {
			return nil, errors.Wrap(err, "failed to load TOML config")
		}
		return finish(cfg)
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil && fileExists(jsonPath) {
		if err := LoadJSON(cfg, jsonPath); err != nil {
			return nil, errors.Wrap(err, "failed to load JSON config")
		}
		return finish(cfg)
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "failed to load JSON config from %s", path)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, errors.Wrapf(err, "failed to load TOML config from %s", path)
		}
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file over the values in cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return errors.Wrap(err, "failed to decode TOML file")
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file over the values in cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read JSON file")
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(err, "failed to decode JSON file")
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	// Endpoint
	if cfg.Endpoint.URL == "" {
		cfg.Endpoint.URL = defaults.Endpoint.URL
	}
	if cfg.Endpoint.TimeoutSecs == 0 {
		cfg.Endpoint.TimeoutSecs = defaults.Endpoint.TimeoutSecs
	}

	// Assistant
	if strings.TrimSpace(cfg.Assistant.Title) == "" {
		cfg.Assistant.Title = defaults.Assistant.Title
	}
	if strings.TrimSpace(cfg.Assistant.FallbackText) == "" {
		cfg.Assistant.FallbackText = defaults.Assistant.FallbackText
	}
	if len(cfg.Assistant.Suggestions) == 0 {
		cfg.Assistant.Suggestions = defaults.Assistant.Suggestions
	}
	if cfg.Assistant.SuggestionCount == 0 {
		cfg.Assistant.SuggestionCount = defaults.Assistant.SuggestionCount
	}

	// Logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) (string, error) {
	path, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	return path, SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# allie configuration file")
	fmt.Fprintln(&buf, "")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}
	return nil
}

// TOML returns the configuration encoded as TOML.
func (c *Config) TOML() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", errors.Wrap(err, "failed to encode config")
	}
	return buf.String(), nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Assistant.Suggestions = append([]string(nil), c.Assistant.Suggestions...)
	return &clone
}
