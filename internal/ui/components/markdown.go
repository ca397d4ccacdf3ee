// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/jeranaias/allie-tui/internal/markdown"
	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

// =============================================================================
// TERMINAL MARKDOWN RENDERER
// =============================================================================

// MarkdownView draws a rendered markdown.Document as styled terminal text.
// Inline content is collected per block and word-wrapped as a unit.
type MarkdownView struct {
	theme *styles.Theme
	width int
}

// NewMarkdownView creates a view that wraps at width columns.
func NewMarkdownView(theme *styles.Theme, width int) *MarkdownView {
	if width < 10 {
		width = 10
	}
	return &MarkdownView{theme: theme, width: width}
}

// RenderMarkdown is a shorthand for rendering text through the markdown
// subset and drawing it at the given width.
func RenderMarkdown(theme *styles.Theme, text string, width int) string {
	return NewMarkdownView(theme, width).Render(markdown.Render(text))
}

// Render draws each block separated by a blank line.
func (v *MarkdownView) Render(doc *markdown.Document) string {
	if doc.Empty() {
		return ""
	}
	blocks := make([]string, 0, len(doc.Blocks))
	for _, n := range doc.Blocks {
		blocks = append(blocks, v.block(n))
	}
	return strings.Join(blocks, "\n\n")
}

func (v *MarkdownView) block(n *markdown.Node) string {
	switch n.Kind {
	case markdown.KindHeading:
		base := v.theme.H3
		switch n.Level {
		case 1:
			base = v.theme.H1
		case 2:
			base = v.theme.H2
		}
		return v.wrap(v.inline(n.Children, inlineState{base: base}), v.width)

	case markdown.KindParagraph:
		return v.wrap(v.inline(n.Children, inlineState{base: v.plain()}), v.width)

	case markdown.KindCodeBlock:
		cb := NewCodeBlock(n.Lang, n.Text)
		cb.MaxWidth = v.width
		cb.Highlight = v.theme.ColorProfile != termenv.Ascii
		return cb.Render(v.theme)

	case markdown.KindList, markdown.KindOrderedList:
		return v.list(n)
	}
	return ""
}

func (v *MarkdownView) list(n *markdown.Node) string {
	lines := make([]string, 0, len(n.Children))
	for i, item := range n.Children {
		marker := "• "
		if n.Kind == markdown.KindOrderedList {
			marker = strconv.Itoa(i+1) + ". "
		}
		markerWidth := lipgloss.Width(marker)
		body := v.wrap(v.inline(item.Children, inlineState{base: v.plain()}), v.width-markerWidth)

		indent := strings.Repeat(" ", markerWidth)
		bodyLines := strings.Split(body, "\n")
		for j, line := range bodyLines {
			if j == 0 {
				bodyLines[j] = v.theme.ListMarker.Render(marker) + line
			} else {
				bodyLines[j] = indent + line
			}
		}
		lines = append(lines, strings.Join(bodyLines, "\n"))
	}
	return strings.Join(lines, "\n")
}

// inlineState carries emphasis depth down the inline tree. Counters rather
// than flags so nested strong and emphasis unwind correctly.
type inlineState struct {
	base   lipgloss.Style
	bold   int
	italic int
}

func (s inlineState) style() lipgloss.Style {
	st := s.base
	if s.bold > 0 {
		st = st.Bold(true)
	}
	if s.italic > 0 {
		st = st.Italic(true)
	}
	return st
}

func (v *MarkdownView) inline(nodes []*markdown.Node, state inlineState) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case markdown.KindText:
			b.WriteString(renderWords(state.style(), Sanitize(n.Text)))
		case markdown.KindInlineCode:
			b.WriteString(v.theme.InlineCode.Render(Sanitize(n.Text)))
		case markdown.KindLineBreak:
			b.WriteString("\n")
		case markdown.KindStrong:
			inner := state
			inner.bold++
			b.WriteString(v.inline(n.Children, inner))
		case markdown.KindEmphasis:
			inner := state
			inner.italic++
			b.WriteString(v.inline(n.Children, inner))
		}
	}
	return b.String()
}

func (v *MarkdownView) plain() lipgloss.Style {
	return v.theme.Body
}

func (v *MarkdownView) wrap(s string, width int) string {
	if width < 10 {
		width = 10
	}
	return ansi.Wordwrap(s, width, "")
}

// renderWords styles each space-separated word on its own so the wrapper
// can break between them without splitting an escape sequence pair.
func renderWords(style lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, " ")
}

// Sanitize drops escape sequences and C0 and C1 control characters from chat
// text so it cannot drive the terminal. Newlines and tabs are kept.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return -1
		}
		return r
	}, s)
}
