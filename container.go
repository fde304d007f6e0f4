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
	"regexp"
	"strings"
)

// A ContainerBlock owns an ordered sequence of child blocks.
// It is the generic block container:
// the root of a [Document] is one, as is each list item.
type ContainerBlock struct {
	blocks []Block

	// hasBlankLines records that a blank run was followed by more
	// content inside this container;
	// hasTrailingBlankLines records that any blank line was consumed.
	// The enclosing list reads both to decide tightness.
	hasBlankLines         bool
	hasTrailingBlankLines bool
}

// Blocks returns the container's children in document order.
func (c *ContainerBlock) Blocks() []Block {
	return c.blocks
}

// HasBlankLines reports whether a blank run occurred
// before further content inside the container.
func (c *ContainerBlock) HasBlankLines() bool {
	return c.hasBlankLines
}

// HasTrailingBlankLines reports whether the container consumed
// any blank line at all, including at its very end.
func (c *ContainerBlock) HasTrailingBlankLines() bool {
	return c.hasTrailingBlankLines
}

var (
	setextUnderlineH1RE = regexp.MustCompile(`^ {0,3}=+[ \t]*$`)
	setextUnderlineH2RE = regexp.MustCompile(`^ {0,3}-+[ \t]*$`)
)

// parseSetextHeadingUnderline returns the heading level (1 or 2)
// indicated by a setext underline line, or 0 if line is not one.
func parseSetextHeadingUnderline(line string) int {
	if setextUnderlineH1RE.MatchString(line) {
		return 1
	}
	if setextUnderlineH2RE.MatchString(line) {
		return 2
	}
	return 0
}

// parseContainerBlock consumes lines from the iterator
// until it is exhausted (or its active context stops matching)
// and returns the blocks recognized along the way.
//
// Recognizers are tried in a fixed precedence order
// and the first success wins for each line.
// A line no recognizer claims is accumulated as paragraph text,
// so the parser always makes progress.
func parseContainerBlock(lines *LineIterator) *ContainerBlock {
	var blocks []Block
	var paragraphText strings.Builder
	var currentSection *Heading

	flushParagraph := func() {
		if paragraphText.Len() == 0 {
			return
		}
		blocks = append(blocks, &Paragraph{text: parseText(paragraphText.String())})
		paragraphText.Reset()
	}

	hasBlankLines := false
	hasTrailingBlankLines := false

	for !lines.IsEnd() {
		line := lines.Line()

		if isBlankLine(line) {
			hasTrailingBlankLines = true
			lines.Advance()
			flushParagraph()
			continue
		}
		hasBlankLines = hasBlankLines || hasTrailingBlankLines

		isInterruptingParagraph := paragraphText.Len() > 0

		// A setext underline is only meaningful when paragraph text is
		// pending; it also disqualifies the line as a horizontal rule.
		setextLevel := 0
		if isInterruptingParagraph {
			setextLevel = parseSetextHeadingUnderline(line)
		}

		var block Block
		if h := parseHeading(lines); h != nil {
			currentSection = h
			block = h
		} else if t := parseTable(lines); t != nil {
			block = t
		} else if setextLevel == 0 {
			block = blockOrNil(parseHorizontalRule(lines))
		}
		if block == nil {
			// The code block recognizer needs the nearest enclosing
			// heading for its terminal rendering decisions.
			if cb := parseCodeBlock(lines, currentSection, isInterruptingParagraph); cb != nil {
				block = cb
			} else if l := parseList(lines, isInterruptingParagraph); l != nil {
				block = l
			} else if cmt := parseCommentBlock(lines); cmt != nil {
				block = cmt
			} else if q := parseBlockQuote(lines); q != nil {
				block = q
			}
		}

		if block != nil {
			// Flush before appending so pending paragraph text keeps
			// its place ahead of the block that interrupted it.
			flushParagraph()
			blocks = append(blocks, block)
			continue
		}

		if setextLevel != 0 {
			heading := &Heading{text: parseText(paragraphText.String()), level: setextLevel}
			currentSection = heading
			blocks = append(blocks, heading)
			paragraphText.Reset()
			lines.Advance()
			continue
		}

		if paragraphText.Len() > 0 {
			paragraphText.WriteByte('\n')
		}
		paragraphText.WriteString(line)
		lines.Advance()
	}

	flushParagraph()

	return &ContainerBlock{
		blocks:                blocks,
		hasBlankLines:         hasBlankLines,
		hasTrailingBlankLines: hasTrailingBlankLines,
	}
}

// blockOrNil converts a typed nil recognizer result into a nil [Block]
// so the dispatcher's interface comparison behaves.
func blockOrNil(hr *HorizontalRule) Block {
	if hr == nil {
		return nil
	}
	return hr
}

// RenderToHTML renders the container's children in order.
// In tight mode the final paragraph's trailing line break is suppressed.
func (c *ContainerBlock) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	var sb strings.Builder

	for i, block := range c.blocks {
		s := block.RenderToHTML(cfg, tight)
		if tight && i == len(c.blocks)-1 {
			if _, isParagraph := block.(*Paragraph); isParagraph {
				s = strings.TrimSuffix(s, "\n")
			}
		}
		sb.WriteString(s)
	}

	return sb.String()
}

// RenderLinesForTerminal concatenates the children's terminal lines.
func (c *ContainerBlock) RenderLinesForTerminal(viewWidth int) []string {
	var lines []string
	for _, block := range c.blocks {
		lines = append(lines, block.RenderLinesForTerminal(viewWidth)...)
	}
	return lines
}

// Walk visits the container, then each child in order.
func (c *ContainerBlock) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(c)
	if rd != Recurse {
		return rd.normalize()
	}
	for _, block := range c.blocks {
		if block.Walk(v) == Break {
			return Break
		}
	}
	return Continue
}
