// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/allie-tui/internal/ui/styles"
	"github.com/jeranaias/allie-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// CloseHintText is shown at the right edge of the header.
const CloseHintText = "esc to close"

// Header is the title bar of the widget.
type Header struct {
	Title string
	Width int
	theme *styles.Theme
}

// NewHeader creates a header with the given title.
func NewHeader(theme *styles.Theme, title string) *Header {
	return &Header{Title: title, Width: 80, theme: theme}
}

// SetWidth updates the available width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the title on the left and the close hint on the right.
// On narrow terminals the hint is dropped and the title truncated.
func (h *Header) View() string {
	// Border and padding take six columns.
	inner := h.Width - 6
	if inner < 10 {
		inner = 10
	}

	title := Sanitize(h.Title)
	hint := h.theme.CloseHint.Render(CloseHintText)
	hintWidth := lipgloss.Width(hint)

	var line string
	if util.StringWidth(title)+hintWidth+2 > inner {
		line = h.theme.HeaderTitle.Render(util.TruncateWidth(title, inner))
	} else {
		rendered := h.theme.HeaderTitle.Render(title)
		gap := inner - lipgloss.Width(rendered) - hintWidth
		line = rendered + strings.Repeat(" ", gap) + hint
	}

	return h.theme.Header.Width(inner + 4).Render(line)
}
