// Copyright 2025 The inkmark Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package markdown parses a [CommonMark]-like dialect into a tree of
// typed block nodes and renders the tree to HTML or to plain text lines
// for fixed-width terminal display.
//
// Parsing is line oriented:
// a [LineIterator] walks the input
// while recognizers for each block kind are tried in a fixed precedence
// order, and any line no recognizer claims becomes paragraph text.
// Nested containers (list items, block quotes) reuse the same machinery
// under a [Context] that strips their indentation or markers.
//
// The dialect extends CommonMark with pipe tables,
// preserved HTML comments,
// and a style tag on fenced code blocks (for example "```**sh**")
// that renders the code bold or italic.
//
// [CommonMark]: https://commonmark.org/
package markdown

import "strings"

// A Document is the parse result: it owns the root container of blocks.
// The tree is immutable after parsing
// and no node in it outlives its document.
type Document struct {
	container *ContainerBlock
}

// Parse splits source into lines and parses them into a [Document].
// A parse always succeeds:
// input that yields no blocks produces an empty document,
// and in the worst case everything lands in one big paragraph.
func Parse(source string) *Document {
	lines := newLineIterator(splitLines(source))
	return &Document{container: parseContainerBlock(lines)}
}

// Container returns the document's root container.
func (d *Document) Container() *ContainerBlock {
	return d.container
}

// RenderToHTML renders a complete HTML page.
// extraHeadContents is inserted verbatim into the <head> element.
func (d *Document) RenderToHTML(extraHeadContents string, cfg RenderExtensionConfig) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString(extraHeadContents)
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(d.RenderToInlineHTML(cfg))
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

// RenderToInlineHTML renders only the document's block fragments,
// with no enclosing page markup.
func (d *Document) RenderToInlineHTML(cfg RenderExtensionConfig) string {
	return d.container.RenderToHTML(cfg, false)
}

// RenderForTerminal renders the document as newline-joined plain text
// wrapped to viewWidth terminal cells.
// A viewWidth of zero or less disables wrapping.
func (d *Document) RenderForTerminal(viewWidth int) string {
	lines := d.container.RenderLinesForTerminal(viewWidth)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Walk traverses the document tree in pre-order.
// Returning [Recurse] from a visitor callback descends into children,
// [Continue] skips the node's subtree,
// and [Break] stops the traversal with no further callbacks.
// Walk itself only ever returns [Continue] or [Break].
func (d *Document) Walk(v *Visitor) RecursionDecision {
	return d.container.Walk(v)
}
