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

// A HorizontalRule is a thematic break between block content.
type HorizontalRule struct{}

// parseHorizontalRule recognizes a line of three or more
// '-', '_', or '*' characters (all the same), optionally spaced,
// with at most three columns of indentation.
func parseHorizontalRule(lines *LineIterator) *HorizontalRule {
	if lines.IsEnd() {
		return nil
	}
	line := lines.Line()
	if leadingSpaces(line) > 3 {
		return nil
	}
	if !isThematicBreak(line) {
		return nil
	}
	lines.Advance()
	return &HorizontalRule{}
}

func isThematicBreak(line string) bool {
	n := 0
	var want byte
	for i := 0; i < len(line); i++ {
		switch b := line[i]; b {
		case '-', '_', '*':
			if n == 0 {
				want = b
			} else if b != want {
				return false
			}
			n++
		case ' ', '\t':
			// Ignore.
		default:
			return false
		}
	}
	return n >= 3
}

// RenderToHTML renders the rule.
func (r *HorizontalRule) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	return "<hr />\n"
}

// RenderLinesForTerminal renders a full-width separator line.
func (r *HorizontalRule) RenderLinesForTerminal(viewWidth int) []string {
	if viewWidth <= 0 {
		viewWidth = 80
	}
	return []string{strings.Repeat("-", viewWidth), ""}
}

// Walk visits the rule; it has no children.
func (r *HorizontalRule) Walk(v *Visitor) RecursionDecision {
	return v.visitBlock(r).normalize()
}
