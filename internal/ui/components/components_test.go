// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/allie-tui/internal/markdown"
	"github.com/jeranaias/allie-tui/internal/model"
	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

func plain(s string) string { return ansi.Strip(s) }

// =============================================================================
// MARKDOWN VIEW TESTS
// =============================================================================

func TestMarkdownView_Blocks(t *testing.T) {
	theme := styles.NewPlainTheme()
	out := plain(RenderMarkdown(theme, "# Title\n\n**Hello** *world*\n\n* one\n* two\n\n1. first\n2. second", 60))

	assert.Equal(t, "Title\n\nHello world\n\n• one\n• two\n\n1. first\n2. second", out)
}

func TestMarkdownView_LineBreaksAndInlineCode(t *testing.T) {
	theme := styles.NewPlainTheme()
	out := plain(RenderMarkdown(theme, "run `allie ask`\nthen wait", 60))

	assert.Equal(t, "run allie ask\nthen wait", out)
}

func TestMarkdownView_WrapsToWidth(t *testing.T) {
	theme := styles.NewPlainTheme()
	text := strings.Repeat("word ", 40)
	out := RenderMarkdown(theme, text, 30)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 30, "line %q too wide", plain(line))
	}
}

func TestMarkdownView_ListContinuationIndented(t *testing.T) {
	theme := styles.NewPlainTheme()
	out := plain(RenderMarkdown(theme, "* "+strings.Repeat("alpha ", 10), 24))

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "• alpha"))
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, "  "), "continuation %q not indented", line)
	}
}

func TestMarkdownView_CodeBlock(t *testing.T) {
	theme := styles.NewPlainTheme()
	out := plain(RenderMarkdown(theme, "```go\nx := 1\n**y**\n```", 60))

	assert.Contains(t, out, "go")
	assert.Contains(t, out, "1 x := 1")
	assert.Contains(t, out, "2 **y**")
}

func TestMarkdownView_EmptyDocument(t *testing.T) {
	theme := styles.NewPlainTheme()
	assert.Equal(t, "", NewMarkdownView(theme, 40).Render(markdown.Render("")))
	assert.Equal(t, "", NewMarkdownView(theme, 40).Render(nil))
}

func TestMarkdownView_StripsTerminalEscapes(t *testing.T) {
	theme := styles.NewPlainTheme()
	out := RenderMarkdown(theme, "hi \x1b]0;pwned\x07there \x1b[2J", 60)

	assert.NotContains(t, out, "\x1b]0;")
	assert.NotContains(t, out, "\x1b[2J")
	assert.NotContains(t, out, "\x07")
	assert.Contains(t, plain(out), "hi")
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "a\tb\nc", Sanitize("a\tb\nc"))
	assert.Equal(t, "ab", Sanitize("a\x00\x08b\x7f"))
	assert.Equal(t, "red", Sanitize("\x1b[31mred\x1b[0m"))

	for _, c1 := range []string{"\u0080", "\u0085", "\u009b", "\u009d", "\u009f"} {
		out := Sanitize("x" + c1 + "y")
		assert.NotContains(t, out, c1)
		assert.True(t, strings.HasPrefix(out, "x"), "got %q", out)
	}
	assert.Equal(t, "café ü", Sanitize("café ü"), "printable latin-1 is kept")
}

// =============================================================================
// TURN VIEW TESTS
// =============================================================================

func TestTurnView_UserVerbatim(t *testing.T) {
	theme := styles.NewPlainTheme()
	v := NewTurnView(theme, 60)
	out := plain(v.Render(model.NewUserTurn("**not bold** # nope")))

	assert.Contains(t, out, "You")
	assert.Contains(t, out, "**not bold** # nope")
}

func TestTurnView_AssistantWithSources(t *testing.T) {
	theme := styles.NewPlainTheme()
	v := NewTurnView(theme, 60)
	out := plain(v.Render(model.NewAssistantTurn("**Allora** is a network.", []string{"docs/intro.md", "docs/topics.md"})))

	assert.Contains(t, out, "Allie")
	assert.Contains(t, out, "Allora is a network.")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "📄 docs/intro.md")
	assert.Contains(t, out, "📄 docs/topics.md")
	assert.Less(t, strings.Index(out, "📄 docs/intro.md"), strings.Index(out, "📄 docs/topics.md"))
}

func TestTurnView_NoSourcesNoFooter(t *testing.T) {
	theme := styles.NewPlainTheme()
	v := NewTurnView(theme, 60)
	out := plain(v.Render(model.NewAssistantTurn("plain answer", nil)))

	assert.NotContains(t, out, "Sources:")
}

func TestTurnView_FallbackNotMarkdown(t *testing.T) {
	theme := styles.NewPlainTheme()
	v := NewTurnView(theme, 60)
	out := plain(v.Render(model.NewFallbackTurn("Sorry, something went wrong. Please try again.")))

	assert.Contains(t, out, "Sorry, something went wrong.")
}

func TestTurnView_Timestamps(t *testing.T) {
	theme := styles.NewPlainTheme()
	turn := model.NewUserTurn("hello")

	v := NewTurnView(theme, 60)
	assert.NotContains(t, plain(v.Render(turn)), turn.FormatTime())

	v.ShowTimestamps = true
	assert.Contains(t, plain(v.Render(turn)), turn.FormatTime())
}

func TestTurnView_RenderAllOrder(t *testing.T) {
	theme := styles.NewPlainTheme()
	v := NewTurnView(theme, 60)
	out := plain(v.RenderAll([]model.Turn{
		model.NewUserTurn("first question"),
		model.NewAssistantTurn("first answer", nil),
	}))

	assert.Less(t, strings.Index(out, "first question"), strings.Index(out, "first answer"))
}

func TestRenderSources_Empty(t *testing.T) {
	assert.Equal(t, "", RenderSources(styles.NewPlainTheme(), nil))
}

// =============================================================================
// SUGGESTION LIST TESTS
// =============================================================================

func TestSuggestionList_Navigation(t *testing.T) {
	l := NewSuggestionList(styles.NewPlainTheme())
	assert.Equal(t, -1, l.Selected())
	_, ok := l.Current()
	assert.False(t, ok)
	l.Next()
	l.Prev()

	l.SetItems([]string{"a", "b", "c"})
	assert.Equal(t, 0, l.Selected())

	l.Next()
	cur, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "b", cur)

	l.Next()
	l.Next()
	assert.Equal(t, 0, l.Selected(), "Next wraps to the start")

	l.Prev()
	assert.Equal(t, 2, l.Selected(), "Prev wraps to the end")

	l.SetItems([]string{"x"})
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, []string{"x"}, l.Items())
}

func TestSuggestionList_View(t *testing.T) {
	l := NewSuggestionList(styles.NewPlainTheme())
	assert.Equal(t, "", l.View(60))

	l.SetItems([]string{"What is Allora?", "How do workers earn?"})
	out := plain(l.View(60))

	assert.Contains(t, out, SuggestionsLabel)
	assert.Contains(t, out, "1. What is Allora?")
	assert.Contains(t, out, "2. How do workers earn?")
}

// =============================================================================
// HEADER AND THINKING TESTS
// =============================================================================

func TestHeader_View(t *testing.T) {
	h := NewHeader(styles.NewPlainTheme(), "Allie, Allora's AI Assistant")
	h.SetWidth(70)
	out := h.View()

	assert.Contains(t, plain(out), "Allie, Allora's AI Assistant")
	assert.Contains(t, plain(out), CloseHintText)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 70)
	}
}

func TestHeader_NarrowDropsHint(t *testing.T) {
	h := NewHeader(styles.NewPlainTheme(), "Allie, Allora's AI Assistant")
	h.SetWidth(24)
	out := plain(h.View())

	assert.NotContains(t, out, CloseHintText)
	assert.Contains(t, out, "...")
}

func TestRenderThinking(t *testing.T) {
	theme := styles.NewPlainTheme()
	s := NewThinkingSpinner(theme)
	out := plain(RenderThinking(theme, s.View()))

	assert.Contains(t, out, ThinkingText)
}
