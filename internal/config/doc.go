// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for allie.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - EndpointConfig: chat endpoint URL, timeout and rate limit
//   - AssistantConfig: title, fallback text and suggestion catalog
//   - LoggingConfig: log level and file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ALLIE_*)
//   - the file given with --config
//   - ~/.allie/config.toml
//   - ~/.allie/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	client := transport.NewClient(&transport.Config{URL: cfg.Endpoint.URL, Timeout: cfg.Endpoint.Timeout()})
package config
