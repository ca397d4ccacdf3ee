// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// MaxSuggestionCount bounds assistant.suggestion_count.
const MaxSuggestionCount = 10

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Endpoint
	if u, err := url.Parse(c.Endpoint.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "endpoint.url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http or https URL", c.Endpoint.URL),
		})
	}
	if c.Endpoint.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "endpoint.timeout_secs",
			Message: "must not be negative",
		})
	}
	if c.Endpoint.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "endpoint.requests_per_minute",
			Message: "must not be negative",
		})
	}

	// Assistant
	for i, s := range c.Assistant.Suggestions {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("assistant.suggestions[%d]", i),
				Message: "must not be blank",
			})
		}
	}
	if c.Assistant.SuggestionCount < 0 || c.Assistant.SuggestionCount > MaxSuggestionCount {
		errs = append(errs, ValidationError{
			Field:   "assistant.suggestion_count",
			Message: fmt.Sprintf("must be between 0 and %d", MaxSuggestionCount),
		})
	}

	// Logging
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: trace, debug, info, warn, error, disabled", c.Logging.Level),
		})
	}

	// UI
	if c.UI.Width < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.width",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ALLIE_ENDPOINT: overrides endpoint.url
//   - ALLIE_TIMEOUT_SECS: overrides endpoint.timeout_secs
//   - ALLIE_REQUESTS_PER_MINUTE: overrides endpoint.requests_per_minute
//   - ALLIE_LOG_LEVEL: overrides logging.level
//   - ALLIE_LOG_FILE: overrides logging.file
//   - ALLIE_SEED: overrides assistant.seed
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("ALLIE_ENDPOINT"); v != "" {
		c.Endpoint.URL = v
	}

	if v := os.Getenv("ALLIE_TIMEOUT_SECS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "ALLIE_TIMEOUT_SECS")
		}
		c.Endpoint.TimeoutSecs = n
	}

	if v := os.Getenv("ALLIE_REQUESTS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "ALLIE_REQUESTS_PER_MINUTE")
		}
		c.Endpoint.RequestsPerMinute = n
	}

	if v := os.Getenv("ALLIE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv("ALLIE_LOG_FILE"); v != "" {
		c.Logging.File = v
	}

	if v := os.Getenv("ALLIE_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "ALLIE_SEED")
		}
		c.Assistant.Seed = n
	}

	return nil
}
