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

import "strings"

// A CommentBlock preserves an HTML comment
// so that HTML rendering can re-emit it verbatim.
// Terminal rendering drops it.
type CommentBlock struct {
	comment string
}

// Comment returns the comment source, including its delimiters.
func (c *CommentBlock) Comment() string {
	return c.comment
}

// parseCommentBlock recognizes a line opening an HTML comment
// and consumes lines through the one that closes it.
// A comment left open at the end of input ends there.
func parseCommentBlock(lines *LineIterator) *CommentBlock {
	if lines.IsEnd() {
		return nil
	}
	line := lines.Line()
	indent := leadingSpaces(line)
	if indent > 3 || !strings.HasPrefix(line[indent:], "<!--") {
		return nil
	}

	var sb strings.Builder
	for !lines.IsEnd() {
		line := lines.Line()
		lines.Advance()
		if i := strings.Index(line, "-->"); i >= 0 {
			sb.WriteString(line[:i+len("-->")])
			break
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return &CommentBlock{comment: sb.String()}
}

// RenderToHTML re-emits the comment unchanged.
func (c *CommentBlock) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	return c.comment + "\n"
}

// RenderLinesForTerminal renders nothing; comments are invisible.
func (c *CommentBlock) RenderLinesForTerminal(viewWidth int) []string {
	return nil
}

// Walk visits the block, then the comment as a leaf string.
func (c *CommentBlock) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(c)
	if rd != Recurse {
		return rd.normalize()
	}
	return v.visitString(c.comment).normalize()
}
