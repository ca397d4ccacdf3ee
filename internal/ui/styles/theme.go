// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components of the widget.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	CloseHint   lipgloss.Style

	// ==========================================================================
	// TURNS
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	FallbackBubble  lipgloss.Style
	SpeakerLabel    lipgloss.Style
	Timestamp       lipgloss.Style
	SourcesHeader   lipgloss.Style
	SourceItem      lipgloss.Style

	// ==========================================================================
	// MARKDOWN
	// ==========================================================================

	Body       lipgloss.Style
	H1         lipgloss.Style
	H2         lipgloss.Style
	H3         lipgloss.Style
	Bold       lipgloss.Style
	Italic     lipgloss.Style
	InlineCode lipgloss.Style
	ListMarker lipgloss.Style
	CodeBlock  lipgloss.Style
	CodeBadge  lipgloss.Style
	LineNumber lipgloss.Style

	// ==========================================================================
	// SUGGESTIONS AND INPUT
	// ==========================================================================

	SuggestionsHeader  lipgloss.Style
	Suggestion         lipgloss.Style
	SuggestionSelected lipgloss.Style
	InputContainer     lipgloss.Style
	InputPrompt        lipgloss.Style
	Loading            lipgloss.Style
	StatusBar          lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// NewPlainTheme creates a theme for output without color, such as pipes.
func NewPlainTheme() *Theme {
	t := &Theme{ColorProfile: termenv.Ascii}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(t.ColorProfile))
	r.SetColorProfile(t.ColorProfile)
	r.SetHasDarkBackground(t.IsDark)
	s := r.NewStyle

	// Header
	t.Header = s().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2)

	t.HeaderTitle = s().Bold(true).Foreground(Purple)
	t.CloseHint = s().Foreground(TextMuted)

	// Turns
	t.UserBubble = s().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = s().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.FallbackBubble = t.AssistantBubble.
		BorderForeground(Rose).
		Foreground(Rose)

	t.SpeakerLabel = s().Bold(true).Foreground(TextSecondary)
	t.Timestamp = s().Foreground(TextMuted)
	t.SourcesHeader = s().Bold(true).Foreground(Emerald)
	t.SourceItem = s().Foreground(TextSecondary)

	// Markdown
	t.Body = s().Foreground(TextPrimary)
	t.H1 = s().Bold(true).Underline(true).Foreground(Purple)
	t.H2 = s().Bold(true).Foreground(Purple)
	t.H3 = s().Bold(true).Foreground(Cyan)
	t.Bold = s().Bold(true)
	t.Italic = s().Italic(true)
	t.InlineCode = s().Foreground(Cyan).Background(SurfaceDim)
	t.ListMarker = s().Foreground(Purple)
	t.CodeBlock = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.CodeBadge = s().
		Foreground(TextMuted).
		Background(OverlayDim).
		Padding(0, 1).
		Bold(true)
	t.LineNumber = s().Foreground(TextMuted).Align(lipgloss.Right).MarginRight(1)

	// Suggestions and input
	t.SuggestionsHeader = s().Bold(true).Foreground(Amber)
	t.Suggestion = s().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Overlay).
		PaddingLeft(1)
	t.SuggestionSelected = t.Suggestion.
		Background(SelectionBg).
		BorderForeground(Cyan).
		Bold(true)

	t.InputContainer = s().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = s().Foreground(Cyan).Bold(true)
	t.Loading = s().Foreground(Purple).Italic(true)
	t.StatusBar = s().Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
