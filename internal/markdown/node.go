// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markdown

import "strconv"

// =============================================================================
// ELEMENT KINDS
// =============================================================================

// Kind identifies an element of the rendered vocabulary.
type Kind int

const (
	KindText Kind = iota
	KindHeading
	KindParagraph
	KindCodeBlock
	KindList
	KindListItem
	KindOrderedList
	KindOrderedItem
	KindStrong
	KindEmphasis
	KindInlineCode
	KindLineBreak
)

var kindNames = [...]string{
	KindText:        "text",
	KindHeading:     "heading",
	KindParagraph:   "paragraph",
	KindCodeBlock:   "code_block",
	KindList:        "list",
	KindListItem:    "list_item",
	KindOrderedList: "ordered_list",
	KindOrderedItem: "ordered_item",
	KindStrong:      "strong",
	KindEmphasis:    "emphasis",
	KindInlineCode:  "inline_code",
	KindLineBreak:   "line_break",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText lets JSON and YAML dumps carry kind names instead of numbers.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsBlock reports whether the kind is a block-level element.
func (k Kind) IsBlock() bool {
	switch k {
	case KindHeading, KindParagraph, KindCodeBlock, KindList, KindOrderedList:
		return true
	}
	return false
}

// =============================================================================
// NODE
// =============================================================================

// Node is one element of a rendered document.
//
// Text holds literal content for KindText, KindInlineCode and KindCodeBlock.
// It is data, never markup: serializers escape it.
type Node struct {
	Kind     Kind
	Level    int    // heading level, 1-3
	Lang     string // code block language label, may be empty
	Text     string
	Children []*Node
}

// Class returns the style classification of the node, used by consumers to
// apply presentation independently of structure. Text and line breaks have
// no class.
func (n *Node) Class() string {
	switch n.Kind {
	case KindHeading:
		return "markdown-h" + strconv.Itoa(n.Level)
	case KindParagraph:
		return "markdown-paragraph"
	case KindCodeBlock:
		return "markdown-code-block"
	case KindList:
		return "markdown-list"
	case KindListItem:
		return "markdown-list-item"
	case KindOrderedList:
		return "markdown-ordered-list"
	case KindOrderedItem:
		return "markdown-ordered-item"
	case KindStrong:
		return "markdown-bold"
	case KindEmphasis:
		return "markdown-italic"
	case KindInlineCode:
		return "markdown-inline-code"
	}
	return ""
}

// Equal reports whether two nodes have the same structure and content.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind || n.Level != other.Level || n.Lang != other.Lang || n.Text != other.Text {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is the result of rendering: an ordered list of block elements.
// An empty input yields a document with no blocks.
type Document struct {
	Blocks []*Node
}

// Empty reports whether the document has no blocks.
func (d *Document) Empty() bool {
	return d == nil || len(d.Blocks) == 0
}

// Equal reports whether two documents have the same element structure.
func (d *Document) Equal(other *Document) bool {
	if d.Empty() || other.Empty() {
		return d.Empty() && other.Empty()
	}
	if len(d.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range d.Blocks {
		if !d.Blocks[i].Equal(other.Blocks[i]) {
			return false
		}
	}
	return true
}

// Element is the serializable outline of a node, used for JSON and YAML dumps.
type Element struct {
	Kind     Kind      `json:"kind" yaml:"kind"`
	Class    string    `json:"class,omitempty" yaml:"class,omitempty"`
	Level    int       `json:"level,omitempty" yaml:"level,omitempty"`
	Lang     string    `json:"lang,omitempty" yaml:"lang,omitempty"`
	Text     string    `json:"text,omitempty" yaml:"text,omitempty"`
	Children []Element `json:"children,omitempty" yaml:"children,omitempty"`
}

// Elements returns the document outline.
func (d *Document) Elements() []Element {
	if d.Empty() {
		return []Element{}
	}
	return toElements(d.Blocks)
}

func toElements(nodes []*Node) []Element {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, Element{
			Kind:     n.Kind,
			Class:    n.Class(),
			Level:    n.Level,
			Lang:     n.Lang,
			Text:     n.Text,
			Children: toElements(n.Children),
		})
	}
	return out
}
