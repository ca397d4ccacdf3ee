// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

// =============================================================================
// SUGGESTION LIST
// =============================================================================

// SuggestionsLabel heads the suggested questions.
const SuggestionsLabel = "✨ Try asking about:"

// SuggestionList shows the offered questions with one highlighted.
type SuggestionList struct {
	theme    *styles.Theme
	items    []string
	selected int
}

// NewSuggestionList creates an empty list.
func NewSuggestionList(theme *styles.Theme) *SuggestionList {
	return &SuggestionList{theme: theme}
}

// SetItems replaces the offered questions and resets the highlight.
func (l *SuggestionList) SetItems(items []string) {
	l.items = append(l.items[:0], items...)
	l.selected = 0
}

// Sync replaces the offered questions, keeping the highlight when they
// are unchanged.
func (l *SuggestionList) Sync(items []string) {
	if slices.Equal(l.items, items) {
		return
	}
	l.SetItems(items)
}

// Items returns the offered questions.
func (l *SuggestionList) Items() []string {
	return append([]string(nil), l.items...)
}

// Len returns the number of offered questions.
func (l *SuggestionList) Len() int { return len(l.items) }

// Selected returns the highlighted index, or -1 when the list is empty.
func (l *SuggestionList) Selected() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.selected
}

// Next moves the highlight down, wrapping at the end.
func (l *SuggestionList) Next() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.items)
}

// Prev moves the highlight up, wrapping at the start.
func (l *SuggestionList) Prev() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected - 1 + len(l.items)) % len(l.items)
}

// Current returns the highlighted question.
func (l *SuggestionList) Current() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	return l.items[l.selected], true
}

// View draws the list, or "" when nothing is offered.
func (l *SuggestionList) View(width int) string {
	if len(l.items) == 0 {
		return ""
	}
	inner := width - 6
	if inner < 10 {
		inner = 10
	}

	lines := []string{l.theme.SuggestionsHeader.Render(SuggestionsLabel)}
	for i, q := range l.items {
		style := l.theme.Suggestion
		if i == l.selected {
			style = l.theme.SuggestionSelected
		}
		text := strconv.Itoa(i+1) + ". " + Sanitize(q)
		lines = append(lines, style.Render(ansi.Wordwrap(text, inner, "")))
	}
	return strings.Join(lines, "\n")
}
