// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import (
	"regexp"
	"strings"
)

// fence delimits preformatted code blocks.
const fence = "```"

var (
	headingPattern     = regexp.MustCompile(`^(#{1,3}) (.*)$`)
	listItemPattern    = regexp.MustCompile(`^\* (.*)$`)
	orderedItemPattern = regexp.MustCompile(`^\d+\. (.*)$`)
	langPattern        = regexp.MustCompile(`^[A-Za-z0-9_+#.-]+$`)

	codeSpanPattern = regexp.MustCompile("`([^`]+)`")
	boldPattern     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern   = regexp.MustCompile(`\*(.+?)\*`)
)

// =============================================================================
// RENDER
// =============================================================================

// Render converts text into a document. It never fails: anything that is not
// one of the supported constructs is kept as literal paragraph text.
//
// Fenced code is split out first so its content is never touched by the
// other rules. The remaining text is read line by line into headings, lists
// and paragraphs. Inline rules then run per line: bold, then italic on
// whatever text bold left over, with code spans held aside so their content
// stays literal while emphasis may still wrap them.
func Render(text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	doc := &Document{}
	rest := text
	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			doc.Blocks = append(doc.Blocks, parseBlocks(rest)...)
			break
		}
		doc.Blocks = append(doc.Blocks, parseBlocks(rest[:open])...)
		rest = rest[open+len(fence):]

		end := strings.Index(rest, fence)
		if end < 0 {
			// Unterminated fence: the remainder is code.
			doc.Blocks = append(doc.Blocks, codeBlock(rest))
			break
		}
		doc.Blocks = append(doc.Blocks, codeBlock(rest[:end]))
		rest = rest[end+len(fence):]
	}
	return doc
}

// codeBlock builds a preformatted block from the raw text between fences.
// A single word on the opening line is taken as the language label and the
// newline before the closing fence is dropped; everything else is verbatim.
func codeBlock(raw string) *Node {
	n := &Node{Kind: KindCodeBlock}
	if nl := strings.IndexByte(raw, '\n'); nl >= 0 {
		first := strings.TrimSpace(raw[:nl])
		if first == "" || langPattern.MatchString(first) {
			n.Lang = first
			raw = raw[nl+1:]
		}
	}
	n.Text = strings.TrimSuffix(raw, "\n")
	return n
}

// =============================================================================
// BLOCKS
// =============================================================================

type blockParser struct {
	blocks    []*Node
	paragraph []string
	list      *Node
}

func parseBlocks(text string) []*Node {
	p := &blockParser{}
	for _, line := range strings.Split(text, "\n") {
		p.line(line)
	}
	p.flushParagraph()
	p.flushList()
	return p.blocks
}

func (p *blockParser) line(line string) {
	if strings.TrimSpace(line) == "" {
		p.flushParagraph()
		p.flushList()
		return
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		p.flushParagraph()
		p.flushList()
		p.blocks = append(p.blocks, &Node{
			Kind:     KindHeading,
			Level:    len(m[1]),
			Children: parseInline(strings.TrimSpace(m[2])),
		})
		return
	}

	if m := listItemPattern.FindStringSubmatch(line); m != nil {
		p.item(KindList, KindListItem, m[1])
		return
	}

	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		p.item(KindOrderedList, KindOrderedItem, m[1])
		return
	}

	p.flushList()
	p.paragraph = append(p.paragraph, strings.TrimSpace(line))
}

// item appends a list item, starting a new container unless the previous
// line was an item of the same list kind.
func (p *blockParser) item(container, kind Kind, content string) {
	p.flushParagraph()
	if p.list != nil && p.list.Kind != container {
		p.flushList()
	}
	if p.list == nil {
		p.list = &Node{Kind: container}
	}
	p.list.Children = append(p.list.Children, &Node{
		Kind:     kind,
		Children: parseInline(strings.TrimSpace(content)),
	})
}

func (p *blockParser) flushParagraph() {
	if len(p.paragraph) == 0 {
		return
	}
	para := &Node{Kind: KindParagraph}
	for i, line := range p.paragraph {
		if i > 0 {
			para.Children = append(para.Children, &Node{Kind: KindLineBreak})
		}
		para.Children = append(para.Children, parseInline(line)...)
	}
	p.blocks = append(p.blocks, para)
	p.paragraph = nil
}

func (p *blockParser) flushList() {
	if p.list == nil {
		return
	}
	p.blocks = append(p.blocks, p.list)
	p.list = nil
}

// =============================================================================
// INLINE
// =============================================================================

// placeholder stands in for a code span while emphasis is matched, so a
// bold or italic pair can wrap code without seeing its content.
const placeholder = "\uE000"

// inlineParser matches emphasis over a line whose code spans were replaced
// by placeholders. Placeholders are consumed left to right, which is the
// order the emphasis passes emit text in.
type inlineParser struct {
	tokens []*Node
	next   int
}

// parseInline splits a single line into inline elements. Code spans are
// lifted out first and put back where they fall once bold and italic have
// been matched over the whole line.
func parseInline(line string) []*Node {
	p := &inlineParser{}
	var sb strings.Builder
	last := 0
	for _, loc := range codeSpanPattern.FindAllStringSubmatchIndex(line, -1) {
		p.literal(&sb, line[last:loc[0]])
		p.tokens = append(p.tokens, &Node{Kind: KindInlineCode, Text: line[loc[2]:loc[3]]})
		sb.WriteString(placeholder)
		last = loc[1]
	}
	p.literal(&sb, line[last:])
	return mergeText(p.bold(sb.String()))
}

// literal copies plain text, turning any placeholder rune already in the
// input into a text token so it comes back unchanged.
func (p *inlineParser) literal(sb *strings.Builder, s string) {
	for {
		i := strings.Index(s, placeholder)
		if i < 0 {
			sb.WriteString(s)
			return
		}
		sb.WriteString(s[:i+len(placeholder)])
		p.tokens = append(p.tokens, &Node{Kind: KindText, Text: placeholder})
		s = s[i+len(placeholder):]
	}
}

func (p *inlineParser) bold(s string) []*Node {
	var out []*Node
	last := 0
	for _, loc := range boldPattern.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, p.italic(s[last:loc[0]])...)
		out = append(out, &Node{
			Kind:     KindStrong,
			Children: mergeText(p.italic(s[loc[2]:loc[3]])),
		})
		last = loc[1]
	}
	return append(out, p.italic(s[last:])...)
}

func (p *inlineParser) italic(s string) []*Node {
	var out []*Node
	last := 0
	for _, loc := range italicPattern.FindAllStringSubmatchIndex(s, -1) {
		out = append(out, p.text(s[last:loc[0]])...)
		out = append(out, &Node{
			Kind:     KindEmphasis,
			Children: mergeText(p.text(s[loc[2]:loc[3]])),
		})
		last = loc[1]
	}
	return append(out, p.text(s[last:])...)
}

// text emits s as text nodes with each placeholder replaced by its token.
func (p *inlineParser) text(s string) []*Node {
	var out []*Node
	for {
		i := strings.Index(s, placeholder)
		if i < 0 {
			return append(out, textNode(s)...)
		}
		out = append(out, textNode(s[:i])...)
		out = append(out, p.tokens[p.next])
		p.next++
		s = s[i+len(placeholder):]
	}
}

func textNode(s string) []*Node {
	if s == "" {
		return nil
	}
	return []*Node{{Kind: KindText, Text: s}}
}

// mergeText joins adjacent text nodes left behind by the splitting passes.
func mergeText(nodes []*Node) []*Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind == KindText && len(out) > 0 && out[len(out)-1].Kind == KindText {
			out[len(out)-1].Text += n.Text
			continue
		}
		out = append(out, n)
	}
	return out
}
