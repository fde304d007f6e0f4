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

// A BlockQuote wraps a nested container of quoted blocks.
type BlockQuote struct {
	contents *ContainerBlock
}

// Contents returns the quoted container.
func (q *BlockQuote) Contents() *ContainerBlock {
	return q.contents
}

// parseBlockQuote recognizes a run of '>'-prefixed lines.
// The quoted lines are parsed by the ordinary container parser
// under a block quote [Context] that strips the markers,
// so quotes nest arbitrarily with other containers.
func parseBlockQuote(lines *LineIterator) *BlockQuote {
	if lines.IsEnd() {
		return nil
	}
	if _, ok := trimBlockQuotePrefix(lines.Line()); !ok {
		return nil
	}

	lines.PushContext(BlockQuoteContext())
	contents := parseContainerBlock(lines)
	lines.PopContext()

	return &BlockQuote{contents: contents}
}

// RenderToHTML renders the quote's contents inside <blockquote> tags.
func (q *BlockQuote) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	return "<blockquote>\n" + q.contents.RenderToHTML(cfg, false) + "</blockquote>\n"
}

// RenderLinesForTerminal prefixes the quoted lines with a quote marker.
func (q *BlockQuote) RenderLinesForTerminal(viewWidth int) []string {
	inner := q.contents.RenderLinesForTerminal(viewWidth)
	lines := make([]string, 0, len(inner))
	for _, line := range inner {
		if line == "" {
			lines = append(lines, ">")
			continue
		}
		lines = append(lines, "> "+line)
	}
	return lines
}

// Walk visits the quote, then its contents.
func (q *BlockQuote) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(q)
	if rd != Recurse {
		return rd.normalize()
	}
	return q.contents.Walk(v)
}
