// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/allie-tui/internal/model"
	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

// =============================================================================
// TURN BUBBLES
// =============================================================================

// SourcesLabel heads the citation footer under an assistant answer.
const SourcesLabel = "Sources:"

// SourceIcon prefixes each citation line.
const SourceIcon = "📄"

// TurnView renders conversation turns as chat bubbles.
type TurnView struct {
	theme          *styles.Theme
	Width          int
	ShowTimestamps bool
}

// NewTurnView creates a turn renderer.
func NewTurnView(theme *styles.Theme, width int) *TurnView {
	return &TurnView{theme: theme, Width: width}
}

// Render draws one turn. User text is shown verbatim; assistant text goes
// through the markdown renderer and carries its sources footer.
func (v *TurnView) Render(turn model.Turn) string {
	bubble := v.theme.UserBubble
	if turn.IsAssistant() {
		bubble = v.theme.AssistantBubble
		if turn.Fallback {
			bubble = v.theme.FallbackBubble
		}
	}

	// Border and padding take four columns, the side margin four more.
	inner := v.Width - 8
	if inner < 10 {
		inner = 10
	}

	var body string
	switch {
	case turn.IsUser():
		body = ansi.Wordwrap(Sanitize(turn.Text), inner, "")
	case turn.Fallback:
		body = ansi.Wordwrap(Sanitize(turn.Text), inner, "")
	default:
		body = RenderMarkdown(v.theme, turn.Text, inner)
	}
	if turn.HasSources() {
		body += "\n\n" + RenderSources(v.theme, turn.Sources)
	}

	label := v.theme.SpeakerLabel.Render(turn.Speaker.DisplayName())
	if v.ShowTimestamps && !turn.Timestamp.IsZero() {
		label += " " + v.theme.Timestamp.Render(turn.FormatTime())
	}

	return label + "\n" + bubble.Render(body)
}

// RenderAll draws turns in order separated by a blank line.
func (v *TurnView) RenderAll(turns []model.Turn) string {
	parts := make([]string, 0, len(turns))
	for _, t := range turns {
		parts = append(parts, v.Render(t))
	}
	return strings.Join(parts, "\n\n")
}

// RenderSources draws the citation footer. It returns "" when there are no
// sources so callers can append unconditionally.
func RenderSources(theme *styles.Theme, sources []string) string {
	if len(sources) == 0 {
		return ""
	}
	lines := make([]string, 0, len(sources)+1)
	lines = append(lines, theme.SourcesHeader.Render(SourcesLabel))
	for _, src := range sources {
		lines = append(lines, theme.SourceItem.Render(SourceIcon+" "+Sanitize(src)))
	}
	return strings.Join(lines, "\n")
}
