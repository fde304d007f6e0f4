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
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// A Paragraph is the catch-all leaf block:
// any line no other recognizer claims is accumulated into one.
// There is no paragraph recognizer;
// the container parser builds paragraphs from its scratch buffer.
type Paragraph struct {
	text *Text
}

// Text returns the paragraph's inline content.
func (p *Paragraph) Text() *Text {
	return p.text
}

// RenderToHTML renders the paragraph.
// In tight mode the <p> wrapper is omitted.
func (p *Paragraph) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	var sb strings.Builder
	if !tight {
		sb.WriteString("<p>")
	}
	sb.WriteString(p.text.RenderToHTML(cfg))
	if !tight {
		sb.WriteString("</p>")
	}
	sb.WriteByte('\n')
	return sb.String()
}

// RenderLinesForTerminal word-wraps the paragraph to the view width
// and follows it with a blank separator line.
func (p *Paragraph) RenderLinesForTerminal(viewWidth int) []string {
	text := p.text.PlainString()
	if viewWidth > 0 {
		text = wordwrap.String(text, viewWidth)
	}
	lines := strings.Split(text, "\n")
	return append(lines, "")
}

// Walk visits the paragraph, then its inline text.
func (p *Paragraph) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(p)
	if rd != Recurse {
		return rd.normalize()
	}
	return p.text.Walk(v)
}
