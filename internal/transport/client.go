// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Kind categorizes transport failures.
type Kind int

const (
	KindUnreachable Kind = iota
	KindServerError
	KindMalformedResponse
)

// String returns the kind name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindServerError:
		return "server_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error is a failed exchange with the chat endpoint.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, set for KindServerError
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same kind, so errors.Is(err, ErrUnreachable) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Status == 0 || t.Status == e.Status)
}

// Sentinel errors for easy checking.
var (
	ErrUnreachable       = &Error{Kind: KindUnreachable, Message: "chat endpoint unreachable"}
	ErrServerError       = &Error{Kind: KindServerError, Message: "chat endpoint returned an error"}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse, Message: "malformed response from chat endpoint"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	// DefaultURL is the endpoint used when none is configured.
	DefaultURL = "http://127.0.0.1:8000/chat"

	// DefaultTimeout bounds a single exchange.
	DefaultTimeout = 30 * time.Second

	// MaxResponseBytes caps the body the client will read.
	MaxResponseBytes = 4 << 20
)

// Config holds configuration options for the client.
type Config struct {
	// URL is the chat endpoint (default: DefaultURL)
	URL string

	// Timeout for a whole request (default: 30s)
	Timeout time.Duration

	// RequestsPerMinute limits outgoing requests; 0 disables the limit.
	RequestsPerMinute int

	// HTTPClient overrides the underlying client. Its Timeout is left alone.
	HTTPClient *http.Client

	// Logger receives per-request diagnostics (default: disabled)
	Logger *zerolog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		URL:     DefaultURL,
		Timeout: DefaultTimeout,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends messages to the chat endpoint.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates a client. A nil config uses DefaultConfig.
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.URL == "" {
		config.URL = DefaultURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	var limiter *rate.Limiter
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(config.RequestsPerMinute)), 1)
	}

	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		limiter:    limiter,
		log:        log.With().Str("component", "transport").Logger(),
	}
}

// URL returns the endpoint the client posts to.
func (c *Client) URL() string {
	return c.config.URL
}

// Send posts message to the endpoint and decodes the reply. It makes
// exactly one request and never retries.
func (c *Client) Send(ctx context.Context, message string) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &Error{Kind: KindUnreachable, Message: "rate limit wait aborted", Cause: err}
		}
	}

	body, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		msg := "chat endpoint unreachable"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		c.log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg(msg)
		return nil, &Error{Kind: KindUnreachable, Message: msg, Cause: err}
	}
	defer drainAndClose(resp.Body)

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("chat endpoint responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    KindServerError,
			Status:  resp.StatusCode,
			Message: "chat request failed: " + resp.Status,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, &Error{Kind: KindUnreachable, Message: "failed to read response", Cause: err}
	}
	if len(data) > MaxResponseBytes {
		return nil, malformed(fmt.Sprintf("response exceeds %d bytes", MaxResponseBytes), nil)
	}

	return decodeReply(data)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// KindOf returns the kind of a transport error and whether err is one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// StatusOf returns the HTTP status carried by a server error, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// IsUnreachable checks if an error means the endpoint gave no response.
func IsUnreachable(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindUnreachable
}

// IsServerError checks if an error is a non-2xx response.
func IsServerError(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindServerError
}

// IsMalformedResponse checks if an error is an unparseable response body.
func IsMalformedResponse(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindMalformedResponse
}

// Helper to drain response body so the connection can be reused.
func drainAndClose(r io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(r, MaxResponseBytes))
	r.Close()
}
