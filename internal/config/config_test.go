// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/allie-tui/internal/session"
	"github.com/jeranaias/allie-tui/internal/suggest"
	"github.com/jeranaias/allie-tui/internal/transport"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolate points the home directory at an empty temp dir and clears
// ALLIE_* variables for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{"ALLIE_ENDPOINT", "ALLIE_TIMEOUT_SECS", "ALLIE_REQUESTS_PER_MINUTE", "ALLIE_LOG_LEVEL", "ALLIE_LOG_FILE", "ALLIE_SEED"} {
		t.Setenv(key, "")
	}
	return home
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, transport.DefaultURL, cfg.Endpoint.URL)
	assert.Equal(t, 30*time.Second, cfg.Endpoint.Timeout())
	assert.Equal(t, DefaultTitle, cfg.Assistant.Title)
	assert.Equal(t, session.DefaultFallbackText, cfg.Assistant.FallbackText)
	assert.Equal(t, suggest.DefaultCatalog().Questions(), cfg.Catalog().Questions())
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_NoFilesUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// =============================================================================
// FILE LOADING
// =============================================================================

func TestLoadFromPath_TOML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "allie.toml", `
[endpoint]
url = "https://assistant.example.com/chat"
timeout_secs = 10
requests_per_minute = 20

[assistant]
suggestions = ["One?", "Two?"]
seed = 42

[logging]
level = "debug"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://assistant.example.com/chat", cfg.Endpoint.URL)
	assert.Equal(t, 10*time.Second, cfg.Endpoint.Timeout())
	assert.Equal(t, 20, cfg.Endpoint.RequestsPerMinute)
	assert.Equal(t, []string{"One?", "Two?"}, cfg.Assistant.Suggestions)
	assert.Equal(t, uint64(42), cfg.Assistant.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset values keep their defaults.
	assert.Equal(t, DefaultTitle, cfg.Assistant.Title)
	assert.Equal(t, suggest.DefaultCount, cfg.Assistant.SuggestionCount)
}

func TestLoadFromPath_JSON(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "allie.json",
		`{"endpoint": {"url": "http://localhost:9000/chat"}, "ui": {"width": 80}}`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/chat", cfg.Endpoint.URL)
	assert.Equal(t, 80, cfg.UI.Width)
	assert.Equal(t, 30, cfg.Endpoint.TimeoutSecs)
}

func TestLoad_HomeTOMLBeforeJSON(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".allie")
	require.NoError(t, os.MkdirAll(dir, 0755))
	writeFile(t, dir, "config.toml", "[endpoint]\nurl = \"http://toml.example/chat\"\n")
	writeFile(t, dir, "config.json", `{"endpoint": {"url": "http://json.example/chat"}}`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://toml.example/chat", cfg.Endpoint.URL)

	require.NoError(t, os.Remove(filepath.Join(dir, "config.toml")))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://json.example/chat", cfg.Endpoint.URL)
}

func TestLoad_BrokenFileIsAnError(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "bad.toml", "[endpoint\nurl = ")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "bad.toml", `
[endpoint]
url = "ftp://example.com"
timeout_secs = -1

[logging]
level = "loud"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint.url")
	assert.Contains(t, err.Error(), "endpoint.timeout_secs")
	assert.Contains(t, err.Error(), "logging.level")
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ALLIE_ENDPOINT", "https://env.example/chat")
	t.Setenv("ALLIE_TIMEOUT_SECS", "5")
	t.Setenv("ALLIE_REQUESTS_PER_MINUTE", "6")
	t.Setenv("ALLIE_LOG_LEVEL", "warn")
	t.Setenv("ALLIE_LOG_FILE", "/tmp/allie.log")
	t.Setenv("ALLIE_SEED", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/chat", cfg.Endpoint.URL)
	assert.Equal(t, 5, cfg.Endpoint.TimeoutSecs)
	assert.Equal(t, 6, cfg.Endpoint.RequestsPerMinute)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/allie.log", cfg.Logging.File)
	assert.Equal(t, uint64(7), cfg.Assistant.Seed)
}

func TestApplyEnvOverrides_BadNumber(t *testing.T) {
	isolate(t)
	t.Setenv("ALLIE_TIMEOUT_SECS", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALLIE_TIMEOUT_SECS")
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"relative url", func(c *Config) { c.Endpoint.URL = "/chat" }, "endpoint.url"},
		{"negative rate", func(c *Config) { c.Endpoint.RequestsPerMinute = -1 }, "endpoint.requests_per_minute"},
		{"blank suggestion", func(c *Config) { c.Assistant.Suggestions = []string{"ok", " "} }, "assistant.suggestions[1]"},
		{"too many suggestions", func(c *Config) { c.Assistant.SuggestionCount = 11 }, "assistant.suggestion_count"},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"negative width", func(c *Config) { c.UI.Width = -5 }, "ui.width"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

// =============================================================================
// KEYS, SAVE, CLONE
// =============================================================================

func TestGetSet(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("endpoint.url")
	require.NoError(t, err)
	assert.Equal(t, transport.DefaultURL, v)

	require.NoError(t, cfg.Set("endpoint.timeout_secs", "12"))
	assert.Equal(t, 12, cfg.Endpoint.TimeoutSecs)

	require.NoError(t, cfg.Set("assistant.seed", "99"))
	assert.Equal(t, uint64(99), cfg.Assistant.Seed)

	require.NoError(t, cfg.Set("ui.show_timestamps", "yes"))
	assert.True(t, cfg.UI.ShowTimestamps)

	require.NoError(t, cfg.Set("assistant.suggestions", "A? | B?"))
	assert.Equal(t, []string{"A?", "B?"}, cfg.Assistant.Suggestions)

	_, err = cfg.Get("endpoint.nope")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("endpoint.timeout_secs", "abc"))
	assert.Error(t, cfg.Set("endpoint.url.deeper", "x"))
}

func TestAllKeysResolve(t *testing.T) {
	cfg := Default()
	for _, key := range AllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestSaveTOMLRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Endpoint.URL = "https://saved.example/chat"
	cfg.Assistant.Seed = 3
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestTOML(t *testing.T) {
	out, err := Default().TOML()
	require.NoError(t, err)
	assert.Contains(t, out, "[endpoint]")
	assert.Contains(t, out, `url = "`+transport.DefaultURL+`"`)
	assert.Contains(t, out, "[assistant]")
}

func TestClone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Assistant.Suggestions[0] = "changed"
	assert.NotEqual(t, "changed", cfg.Assistant.Suggestions[0])
}
