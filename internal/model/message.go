// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SPEAKER TYPE
// =============================================================================

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// String returns the string representation of the speaker.
func (s Speaker) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the speaker.
func (s Speaker) DisplayName() string {
	switch s {
	case SpeakerUser:
		return "You"
	case SpeakerAssistant:
		return "Allie"
	default:
		return string(s)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one message in a conversation. Turns are values: once a session
// has recorded a turn it never changes, and callers receive copies.
type Turn struct {
	ID        string    `json:"id" yaml:"id"`
	Speaker   Speaker   `json:"speaker" yaml:"speaker"`
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Sources are the citation labels the service returned. Only assistant
	// turns carry sources.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`

	// Fallback marks an assistant turn synthesized after a failed exchange.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// NewUserTurn creates a user turn.
func NewUserTurn(text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Speaker:   SpeakerUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAssistantTurn creates an assistant turn with its sources.
func NewAssistantTurn(text string, sources []string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Speaker:   SpeakerAssistant,
		Text:      text,
		Timestamp: time.Now(),
		Sources:   cloneStrings(sources),
	}
}

// NewFallbackTurn creates the assistant turn shown when an exchange fails.
func NewFallbackTurn(text string) Turn {
	t := NewAssistantTurn(text, nil)
	t.Fallback = true
	return t
}

// IsUser reports whether the turn came from the user.
func (t Turn) IsUser() bool {
	return t.Speaker == SpeakerUser
}

// IsAssistant reports whether the turn came from the assistant.
func (t Turn) IsAssistant() bool {
	return t.Speaker == SpeakerAssistant
}

// HasSources reports whether the turn carries any sources.
func (t Turn) HasSources() bool {
	return len(t.Sources) > 0
}

// Clone returns a copy that shares no memory with t.
func (t Turn) Clone() Turn {
	t.Sources = cloneStrings(t.Sources)
	return t
}

// FormatTime returns the timestamp as HH:MM for display.
func (t Turn) FormatTime() string {
	return t.Timestamp.Format("15:04")
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
