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
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A Heading is a section heading with a level from 1 to 6,
// derived either from a leading '#' run (ATX form)
// or from a setext underline beneath paragraph text.
//
// Beyond its place in the tree, the most recently parsed heading serves
// as the "current section" that code blocks hold a non-owning reference
// to; see [CodeBlock].
type Heading struct {
	text  *Text
	level int
}

// Text returns the heading's inline content.
func (h *Heading) Text() *Text {
	return h.text
}

// Level returns the heading level, 1 through 6.
func (h *Heading) Level() int {
	return h.level
}

// parseHeading recognizes the ATX form:
// up to three spaces of indentation,
// one to six '#' characters,
// then whitespace (or end of line) before the content.
// An optional closing '#' run is stripped.
func parseHeading(lines *LineIterator) *Heading {
	if lines.IsEnd() {
		return nil
	}
	line := lines.Line()
	indent := leadingSpaces(line)
	if indent > 3 {
		return nil
	}
	level, content, ok := parseATXHeading(line[indent:])
	if !ok {
		return nil
	}
	lines.Advance()
	return &Heading{text: parseText(content), level: level}
}

func parseATXHeading(line string) (level int, content string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}

	i := level
	if i >= len(line) {
		return level, "", true
	}
	if line[i] != ' ' && line[i] != '\t' {
		return 0, "", false
	}
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	start := i

	// Trim trailing whitespace, then an unescaped closing hash run.
	end := len(line)
	for end > start && (line[end-1] == ' ' || line[end-1] == '\t') && !isEndEscaped(line[:end-1]) {
		end--
	}
	if end > start && line[end-1] == '#' {
		hashStart := end
		for hashStart > start && line[hashStart-1] == '#' {
			hashStart--
		}
		switch {
		case hashStart == start:
			end = start
		case line[hashStart-1] == ' ' || line[hashStart-1] == '\t':
			end = hashStart
			for end > start && (line[end-1] == ' ' || line[end-1] == '\t') && !isEndEscaped(line[:end-1]) {
				end--
			}
		}
	}
	return level, line[start:end], true
}

// isEndEscaped reports whether s ends with an odd number of backslashes.
func isEndEscaped(s string) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}

// RenderToHTML renders the heading.
// With [FragmentLinksInHeading] enabled the heading carries an id
// and its content links to its own fragment.
func (h *Heading) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	inner := h.text.RenderToHTML(cfg)
	if cfg.IsEnabled(FragmentLinksInHeading) {
		if slug := headingSlug(h.text.PlainString()); slug != "" {
			return fmt.Sprintf("<h%d id=%q><a href=\"#%s\">%s</a></h%d>\n",
				h.level, slug, slug, inner, h.level)
		}
	}
	return fmt.Sprintf("<h%d>%s</h%d>\n", h.level, inner, h.level)
}

// RenderLinesForTerminal renders the heading as a man page section name:
// levels 1 and 2 are upper-cased,
// deeper levels keep their own casing.
func (h *Heading) RenderLinesForTerminal(viewWidth int) []string {
	name := h.text.PlainString()
	if h.level <= 2 {
		name = strings.ToUpper(name)
	} else {
		name = strings.Repeat(" ", 2*(h.level-2)) + name
	}
	return []string{name, ""}
}

// Walk visits the heading, then its inline text.
func (h *Heading) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(h)
	if rd != Recurse {
		return rd.normalize()
	}
	return h.text.Walk(v)
}

var slugCaser = cases.Lower(language.Und)

// headingSlug derives a fragment identifier from a heading name:
// Unicode lowercase with runs of non-alphanumerics folded to dashes.
func headingSlug(name string) string {
	name = slugCaser.String(name)
	var sb strings.Builder
	pendingDash := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingDash = false
			sb.WriteRune(r)
		} else {
			pendingDash = true
		}
	}
	return sb.String()
}
