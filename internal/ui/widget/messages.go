// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/allie-tui/internal/session"
)

// =============================================================================
// MESSAGES
// =============================================================================

// OutcomeMsg carries a finished exchange back to the update loop.
type OutcomeMsg struct {
	Outcome session.Outcome
}

// CopiedMsg reports the result of copying an answer to the clipboard.
type CopiedMsg struct {
	Err error
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// RunExchange performs ex off the update loop.
func RunExchange(ctx context.Context, ex *session.Exchange) tea.Cmd {
	return func() tea.Msg {
		return OutcomeMsg{Outcome: ex.Run(ctx)}
	}
}

// CopyText writes text to the clipboard with the given writer.
func CopyText(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: write(text)}
	}
}
