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

package markdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// A List is an ordered or unordered sequence of items.
// Each item is a [ContainerBlock] parsed under a list item [Context],
// so nested lists, code blocks, and paragraphs inside items
// go through the ordinary container parser.
type List struct {
	items       []*ContainerBlock
	isOrdered   bool
	isTight     bool
	startNumber int
}

// Items returns the list's items in order.
func (l *List) Items() []*ContainerBlock {
	return l.items
}

// IsOrdered reports whether the list uses numbered markers.
func (l *List) IsOrdered() bool {
	return l.isOrdered
}

// IsTight reports whether the list renders in tight mode.
// A list is tight unless a blank line separated two of its items
// or some item contained blank lines of its own;
// once loose, a list never becomes tight again.
func (l *List) IsTight() bool {
	return l.isTight
}

// StartNumber returns the first item's number for ordered lists, else 1.
func (l *List) StartNumber() int {
	return l.startNumber
}

// parseList recognizes a run of list items.
// A nil return means the current line does not begin a list at all;
// once a first item has been accepted,
// any later line that does not continue the list simply ends it
// without being consumed.
func parseList(lines *LineIterator, isInterruptingParagraph bool) *List {
	var items []*ContainerBlock

	first := true
	isOrdered := false
	isTight := true
	hasTrailingBlankLines := false
	startNumber := 1

	for !lines.IsEnd() {
		line := lines.Line()
		offset := leadingSpaces(line)

		// Up to three spaces of indentation are allowed. Four or more
		// on the opening line means indented code, not a list.
		if offset > 3 {
			if first {
				return nil
			}
			break
		}

		appearsUnordered := false
		if offset+2 <= len(line) && line[offset+1] == ' ' &&
			(line[offset] == '*' || line[offset] == '-' || line[offset] == '+') {
			appearsUnordered = true
			offset++
		}

		appearsOrdered := false
		// At most nine digits, enough for any sane start number and a
		// bound against pathological scans.
		for i := offset; i-offset < 10 && i < len(line); i++ {
			ch := line[i]
			if '0' <= ch && ch <= '9' {
				continue
			}
			if (ch == '.' || ch == ')') && i > offset && i+1 < len(line) && line[i+1] == ' ' {
				n, err := strconv.Atoi(line[offset:i])
				if err != nil {
					break
				}
				if first {
					startNumber = n
					// Only an ordered list starting at 1 may interrupt
					// a paragraph.
					if isInterruptingParagraph && n != 1 {
						return nil
					}
				}
				appearsOrdered = true
				offset = i + 1
			}
			break
		}

		if appearsUnordered && appearsOrdered {
			panic("markdown: line matched both ordered and unordered list markers")
		}
		if !appearsUnordered && !appearsOrdered {
			if first {
				return nil
			}
			break
		}

		// offset now sits on the space that follows the marker.
		fallbackContextIndent := offset + 1
		for offset < len(line) && line[offset] == ' ' {
			offset++
		}
		contextIndent := offset

		// An over-indented item keeps only marker width plus one space
		// as its content indentation, so that indented code at the
		// start of the item's content is still recognized as code.
		if 1+offset-fallbackContextIndent > 4 {
			contextIndent = fallbackContextIndent
		}

		if first {
			isOrdered = appearsOrdered
		} else if appearsOrdered != isOrdered {
			break
		}

		isTight = isTight && !hasTrailingBlankLines

		lines.PushContext(ListItemContext(contextIndent))
		item := parseContainerBlock(lines)
		lines.PopContext()

		isTight = isTight && !item.hasBlankLines
		hasTrailingBlankLines = hasTrailingBlankLines || item.hasTrailingBlankLines
		items = append(items, item)

		first = false
	}

	return &List{
		items:       items,
		isOrdered:   isOrdered,
		isTight:     isTight,
		startNumber: startNumber,
	}
}

// RenderToHTML renders the list.
// In tight mode items whose first child is a paragraph
// keep their content on the <li> line,
// and the items render their children in tight mode.
func (l *List) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	tag := "ul"
	if l.isOrdered {
		tag = "ol"
	}

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	if l.startNumber != 1 {
		fmt.Fprintf(&sb, " start=\"%d\"", l.startNumber)
	}
	sb.WriteString(">\n")

	for _, item := range l.items {
		sb.WriteString("<li>")
		startsWithParagraph := false
		if len(item.blocks) > 0 {
			_, startsWithParagraph = item.blocks[0].(*Paragraph)
		}
		if !l.isTight || !startsWithParagraph {
			sb.WriteByte('\n')
		}
		sb.WriteString(item.RenderToHTML(cfg, l.isTight))
		sb.WriteString("</li>\n")
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">\n")
	return sb.String()
}

// RenderLinesForTerminal renders each item
// with a two-space lead-in before its marker;
// continuation lines align under the start of the item's content.
func (l *List) RenderLinesForTerminal(viewWidth int) []string {
	var lines []string

	for i, item := range l.items {
		itemLines := item.RenderLinesForTerminal(viewWidth)
		var firstLine string
		if len(itemLines) > 0 {
			firstLine = itemLines[0]
			itemLines = itemLines[1:]
		}

		var sb strings.Builder
		sb.WriteString("  ")
		if l.isOrdered {
			fmt.Fprintf(&sb, "%d.", l.startNumber+i)
		} else {
			sb.WriteByte('*')
		}
		sb.WriteByte(' ')
		itemIndentation := runewidth.StringWidth(sb.String())

		sb.WriteString(firstLine)
		lines = append(lines, sb.String())

		pad := strings.Repeat(" ", itemIndentation)
		for _, line := range itemLines {
			if line == "" {
				lines = append(lines, "")
				continue
			}
			lines = append(lines, pad+line)
		}
	}

	return lines
}

// Walk visits the list, then each item in order.
func (l *List) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(l)
	if rd != Recurse {
		return rd.normalize()
	}
	for _, item := range l.items {
		if item.Walk(v) == Break {
			return Break
		}
	}
	return Continue
}
