// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

// ThinkingText is shown while an answer is outstanding.
const ThinkingText = "Thinking..."

// NewThinkingSpinner creates the spinner shown next to ThinkingText.
func NewThinkingSpinner(theme *styles.Theme) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"●∙∙", "∙●∙", "∙∙●", "∙●∙"},
		FPS:    time.Second / 6,
	}
	s.Style = theme.ListMarker
	return s
}

// RenderThinking draws the pending indicator inside an assistant bubble.
func RenderThinking(theme *styles.Theme, frame string) string {
	return theme.AssistantBubble.Render(frame + " " + theme.Loading.Render(ThinkingText))
}
