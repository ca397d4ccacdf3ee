// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/jeranaias/allie-tui/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock is a fenced code element ready for terminal display.
type CodeBlock struct {
	Language  string
	Code      string
	MaxWidth  int
	Highlight bool // apply chroma colors; off for plain output
}

// NewCodeBlock creates a code block with highlighting enabled.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language:  language,
		Code:      code,
		MaxWidth:  80,
		Highlight: true,
	}
}

// Render draws the block with line numbers, a language badge and a
// rounded border. Content is shown verbatim apart from control characters.
func (c CodeBlock) Render(theme *styles.Theme) string {
	code := Sanitize(c.Code)
	if c.Highlight {
		code = highlightCode(code, c.Language)
	}

	lines := strings.Split(code, "\n")
	gutter := len(strconv.Itoa(len(lines)))
	if gutter < 2 {
		gutter = 2
	}
	lineNumStyle := theme.LineNumber.Width(gutter)

	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		rendered = append(rendered, lineNumStyle.Render(strconv.Itoa(i+1))+line)
	}
	content := strings.Join(rendered, "\n")

	if c.Language != "" {
		badge := theme.CodeBadge.Render(Sanitize(c.Language))
		content = badge + "\n" + content
	}

	maxWidth := c.MaxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}

	return theme.CodeBlock.MaxWidth(maxWidth).Render(content)
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// highlightCode colors code for a 256-color terminal. An unknown or empty
// language falls back to content analysis, then to plain text.
func highlightCode(code, language string) string {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
