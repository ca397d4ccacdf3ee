// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders the assistant's markdown subset into a typed element tree.
//
// The renderer understands a fixed vocabulary and nothing else:
//
//   - Headings: "# ", "## ", "### " at the start of a line
//   - Bold: **text**
//   - Italic: *text*
//   - Fenced code: ```lang ... ``` (content verbatim, unterminated fences run to the end)
//   - Inline code: `text`
//   - Unordered lists: lines starting with "* "
//   - Ordered lists: lines starting with "1. ", "2. ", ...
//   - Paragraphs: separated by blank lines, single newlines become line breaks
//
// # Safety
//
// Render never produces markup. Literal text is kept as data on the nodes and
// every serializer escapes it, so chat text cannot inject structure into the
// display surface. HTML output is additionally passed through an allow-list
// policy limited to the vocabulary above.
//
// # Usage
//
//	doc := markdown.Render("**Hello** *world*")
//	fmt.Println(doc.HTML())
//	// <p class="markdown-paragraph"><strong class="markdown-bold">Hello</strong> <em class="markdown-italic">world</em></p>
//
// # Overlapping emphasis
//
// "***text***" is not nested. Bold consumes "***text**", leaving a strong
// element whose text is "*text" followed by a literal "*".
package markdown
