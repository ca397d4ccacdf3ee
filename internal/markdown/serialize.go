// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// =============================================================================
// HTML
// =============================================================================

// vocabulary lists every HTML element the serializer may emit.
var vocabulary = []string{"h1", "h2", "h3", "p", "strong", "em", "code", "pre", "ul", "ol", "li", "br"}

// policy is a last line of defence: even if a serializer bug produced markup
// outside the vocabulary, it would be stripped here.
var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(vocabulary...)
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^markdown-[a-z0-9-]+$`)).OnElements(vocabulary...)
	return p
}()

// HTML serializes the document. All literal text is escaped and the output
// only ever contains the elements of the rendering vocabulary.
func (d *Document) HTML() string {
	if d.Empty() {
		return ""
	}
	var sb strings.Builder
	for i, b := range d.Blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeHTML(&sb, b)
	}
	return policy.Sanitize(sb.String())
}

func writeHTML(sb *strings.Builder, n *Node) {
	switch n.Kind {
	case KindText:
		sb.WriteString(html.EscapeString(n.Text))
	case KindLineBreak:
		sb.WriteString("<br/>")
	case KindCodeBlock:
		sb.WriteString(`<pre class="markdown-code-block"><code>`)
		sb.WriteString(html.EscapeString(n.Text))
		sb.WriteString("</code></pre>")
	case KindInlineCode:
		sb.WriteString(`<code class="markdown-inline-code">`)
		sb.WriteString(html.EscapeString(n.Text))
		sb.WriteString("</code>")
	default:
		tag := htmlTag(n)
		sb.WriteString("<" + tag + ` class="` + n.Class() + `">`)
		for _, c := range n.Children {
			writeHTML(sb, c)
		}
		sb.WriteString("</" + tag + ">")
	}
}

func htmlTag(n *Node) string {
	switch n.Kind {
	case KindHeading:
		return "h" + strconv.Itoa(n.Level)
	case KindList:
		return "ul"
	case KindOrderedList:
		return "ol"
	case KindListItem, KindOrderedItem:
		return "li"
	case KindStrong:
		return "strong"
	case KindEmphasis:
		return "em"
	}
	return "p"
}

// =============================================================================
// SOURCE AND PLAIN TEXT
// =============================================================================

// Markdown re-emits canonical markdown for the document. Rendering the result
// again yields an equal document for input built from the supported
// constructs.
func (d *Document) Markdown() string {
	if d.Empty() {
		return ""
	}
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		parts = append(parts, blockMarkdown(b))
	}
	return strings.Join(parts, "\n\n")
}

func blockMarkdown(n *Node) string {
	switch n.Kind {
	case KindHeading:
		return strings.Repeat("#", n.Level) + " " + inlineMarkdown(n.Children)
	case KindCodeBlock:
		return fence + n.Lang + "\n" + n.Text + "\n" + fence
	case KindList, KindOrderedList:
		lines := make([]string, 0, len(n.Children))
		for i, item := range n.Children {
			marker := "* "
			if n.Kind == KindOrderedList {
				marker = strconv.Itoa(i+1) + ". "
			}
			lines = append(lines, marker+inlineMarkdown(item.Children))
		}
		return strings.Join(lines, "\n")
	}
	return inlineMarkdown(n.Children)
}

func inlineMarkdown(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			sb.WriteString(n.Text)
		case KindLineBreak:
			sb.WriteByte('\n')
		case KindInlineCode:
			sb.WriteString("`" + n.Text + "`")
		case KindStrong:
			sb.WriteString("**" + inlineMarkdown(n.Children) + "**")
		case KindEmphasis:
			sb.WriteString("*" + inlineMarkdown(n.Children) + "*")
		}
	}
	return sb.String()
}

// PlainText returns the document's text with all markup removed. Blocks are
// separated by blank lines and list items by newlines.
func (d *Document) PlainText() string {
	if d.Empty() {
		return ""
	}
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		parts = append(parts, plainText(b))
	}
	return strings.Join(parts, "\n\n")
}

func plainText(n *Node) string {
	switch n.Kind {
	case KindText, KindInlineCode, KindCodeBlock:
		return n.Text
	case KindLineBreak:
		return "\n"
	case KindList, KindOrderedList:
		lines := make([]string, 0, len(n.Children))
		for _, item := range n.Children {
			lines = append(lines, plainText(item))
		}
		return strings.Join(lines, "\n")
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(plainText(c))
	}
	return sb.String()
}
