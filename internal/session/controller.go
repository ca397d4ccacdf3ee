// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jeranaias/allie-tui/internal/model"
	"github.com/jeranaias/allie-tui/internal/suggest"
	"github.com/jeranaias/allie-tui/internal/transport"
	"github.com/jeranaias/allie-tui/internal/util"
)

// DefaultFallbackText is shown in place of an answer when an exchange fails.
const DefaultFallbackText = "Sorry, something went wrong. Please try again."

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInputRejected is returned for a message that is empty after trimming.
	ErrInputRejected = errors.New("session: message is empty")

	// ErrBusy is returned while a response is pending.
	ErrBusy = errors.New("session: awaiting response")

	// ErrClosed is returned after the session has been closed.
	ErrClosed = errors.New("session: closed")

	// ErrNoSuggestions is returned when selecting a suggestion after the
	// conversation has started.
	ErrNoSuggestions = errors.New("session: no suggestions available")

	// ErrUnknownSuggestion is returned when the selection is not one of the
	// offered suggestions.
	ErrUnknownSuggestion = errors.New("session: not an offered suggestion")
)

// =============================================================================
// PHASE
// =============================================================================

// Phase is the state of the conversation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseComposing
	PhaseAwaitingResponse
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseComposing:
		return "composing"
	case PhaseAwaitingResponse:
		return "awaiting_response"
	default:
		return "unknown"
	}
}

// =============================================================================
// OPTIONS
// =============================================================================

// Sender performs one request/response exchange with the chat service.
// *transport.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, message string) (*transport.Reply, error)
}

// Options configures a Controller.
type Options struct {
	// Sender makes the remote call (default: transport client with default config)
	Sender Sender

	// Sampler picks the opening suggestions (default: default catalog, random seed)
	Sampler suggest.Sampler

	// SuggestionCount is how many suggestions to offer (default: 3)
	SuggestionCount int

	// FallbackText replaces the answer of a failed exchange
	FallbackText string

	// Logger receives exchange diagnostics (default: disabled)
	Logger *zerolog.Logger
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the state of one conversation. It is safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	id       string
	sender   Sender
	fallback string
	log      zerolog.Logger

	turns       []model.Turn
	phase       Phase
	suggestions []string
	pending     *Exchange
	closed      bool
}

// New creates a session and samples its opening suggestions.
func New(opts Options) *Controller {
	if opts.Sender == nil {
		opts.Sender = transport.NewClient(nil)
	}
	if opts.Sampler == nil {
		opts.Sampler = suggest.NewPool(suggest.DefaultCatalog(), nil)
	}
	if opts.SuggestionCount <= 0 {
		opts.SuggestionCount = suggest.DefaultCount
	}
	if strings.TrimSpace(opts.FallbackText) == "" {
		opts.FallbackText = DefaultFallbackText
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	id := uuid.NewString()
	suggestions := opts.Sampler.Sample(opts.SuggestionCount)
	if suggestions == nil {
		suggestions = []string{}
	}

	c := &Controller{
		id:          id,
		sender:      opts.Sender,
		fallback:    opts.FallbackText,
		log:         log.With().Str("session_id", id).Logger(),
		phase:       PhaseIdle,
		suggestions: suggestions,
	}
	c.log.Debug().Strs("suggestions", suggestions).Msg("session started")
	return c
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID returns the session ID.
func (c *Controller) ID() string {
	return c.id
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Turns returns a copy of the conversation so far, oldest first.
func (c *Controller) Turns() []model.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Turn, len(c.turns))
	for i, t := range c.turns {
		out[i] = t.Clone()
	}
	return out
}

// Suggestions returns the offered suggestions. It is empty once any turn
// has been recorded.
func (c *Controller) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}

// Pending reports whether an exchange is in flight.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// FallbackText returns the text used for failed exchanges.
func (c *Controller) FallbackText() string {
	return c.fallback
}

// =============================================================================
// OPERATIONS
// =============================================================================

// UpdateDraft tracks the input field. A non-blank draft moves an idle
// session to Composing and clearing it moves back. Ignored while awaiting.
func (c *Controller) UpdateDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.phase == PhaseAwaitingResponse {
		return
	}
	if strings.TrimSpace(text) != "" {
		c.phase = PhaseComposing
	} else {
		c.phase = PhaseIdle
	}
}

// Submit records message as a user turn and starts an exchange for it.
// The message is trimmed first. Rejected submissions change nothing.
func (c *Controller) Submit(message string) (*Exchange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitLocked(message)
}

func (c *Controller) submitLocked(message string) (*Exchange, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if c.phase == PhaseAwaitingResponse {
		c.log.Debug().Msg("submit ignored while awaiting response")
		return nil, ErrBusy
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInputRejected
	}

	c.turns = append(c.turns, model.NewUserTurn(message))
	c.suggestions = []string{}
	c.phase = PhaseAwaitingResponse

	ex := &Exchange{
		ID:      uuid.NewString(),
		Message: message,
		sender:  c.sender,
	}
	c.pending = ex

	c.log.Info().Str("exchange_id", ex.ID).Int("turn", len(c.turns)).Msg("exchange started")
	c.log.Debug().Str("exchange_id", ex.ID).Str("preview", util.TruncateWidth(util.FirstLine(message), 60)).Msg("message queued")
	return ex, nil
}

// SelectSuggestion submits one of the offered suggestions.
func (c *Controller) SelectSuggestion(s string) (*Exchange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if len(c.suggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	for _, offered := range c.suggestions {
		if offered == s {
			return c.submitLocked(s)
		}
	}
	return nil, ErrUnknownSuggestion
}

// SelectSuggestionAt submits the i-th offered suggestion.
func (c *Controller) SelectSuggestionAt(i int) (*Exchange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if len(c.suggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	if i < 0 || i >= len(c.suggestions) {
		return nil, ErrUnknownSuggestion
	}
	return c.submitLocked(c.suggestions[i])
}

// Resolve records the outcome of the pending exchange and returns the
// session to Idle. A failed outcome becomes the fallback turn.
//
// It reports false, changing nothing, when the session is closed or the
// outcome belongs to an exchange that is not pending.
func (c *Controller) Resolve(out Outcome) bool {
	_, ok := c.resolve(out)
	return ok
}

func (c *Controller) resolve(out Outcome) (model.Turn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := c.log.With().Str("exchange_id", out.ExchangeID).Logger()
	if c.closed {
		log.Debug().Msg("outcome dropped: session closed")
		return model.Turn{}, false
	}
	if c.pending == nil || c.pending.ID != out.ExchangeID {
		log.Debug().Msg("outcome dropped: exchange not pending")
		return model.Turn{}, false
	}

	var turn model.Turn
	if err := out.failure(); err != nil {
		ev := log.Warn().Err(err)
		if kind, ok := transport.KindOf(err); ok {
			ev = ev.Str("kind", kind.String())
			if status := transport.StatusOf(err); status != 0 {
				ev = ev.Int("status", status)
			}
		}
		ev.Msg("exchange failed")
		turn = model.NewFallbackTurn(c.fallback)
	} else {
		log.Info().Int("sources", len(out.Reply.Sources)).Msg("exchange completed")
		turn = model.NewAssistantTurn(out.Reply.Text, out.Reply.Sources)
	}

	c.turns = append(c.turns, turn)
	c.pending = nil
	c.phase = PhaseIdle
	return turn.Clone(), true
}

// Ask submits message, performs the exchange and records its outcome in one
// blocking call. The returned turn is the assistant turn, which is the
// fallback turn when the exchange failed; err then carries the cause.
func (c *Controller) Ask(ctx context.Context, message string) (model.Turn, error) {
	ex, err := c.Submit(message)
	if err != nil {
		return model.Turn{}, err
	}
	out := ex.Run(ctx)
	turn, ok := c.resolve(out)
	if !ok {
		return model.Turn{}, ErrClosed
	}
	return turn, out.failure()
}

// Close discards the session. Outcomes that arrive later are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.pending = nil
	c.log.Debug().Int("turns", len(c.turns)).Msg("session closed")
}
