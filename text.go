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

	"go4.org/bytereplacer"
)

// Text is a parsed run of inline content:
// literal text, code spans, emphasis, links, and line breaks.
// The block parser treats it as an opaque value;
// raw text goes in, a renderable node sequence comes out.
type Text struct {
	source string
	nodes  []inlineNode
}

// parseText tokenizes raw inline text.
// It never fails: anything unrecognized stays literal text.
func parseText(source string) *Text {
	return &Text{source: source, nodes: parseInlineNodes(source)}
}

// Source returns the raw text the value was parsed from.
func (t *Text) Source() string {
	return t.source
}

// RenderToHTML renders the inline sequence as an HTML fragment.
func (t *Text) RenderToHTML(cfg RenderExtensionConfig) string {
	var sb strings.Builder
	for _, n := range t.nodes {
		n.renderToHTML(&sb, cfg)
	}
	return sb.String()
}

// PlainString renders the inline sequence as plain text
// with all markup dropped, suitable for terminal display.
func (t *Text) PlainString() string {
	var sb strings.Builder
	for _, n := range t.nodes {
		n.renderPlain(&sb)
	}
	return sb.String()
}

// Walk visits the text value, then its literal runs as leaf strings.
func (t *Text) Walk(v *Visitor) RecursionDecision {
	rd := v.visitText(t)
	if rd != Recurse {
		return rd.normalize()
	}
	for _, n := range t.nodes {
		if n.walk(v) == Break {
			return Break
		}
	}
	return Continue
}

type inlineNode interface {
	renderToHTML(sb *strings.Builder, cfg RenderExtensionConfig)
	renderPlain(sb *strings.Builder)
	walk(v *Visitor) RecursionDecision
}

type textNode string

type codeSpanNode string

type lineBreakNode struct {
	hard bool
}

type emphasisNode struct {
	strong   bool
	children []inlineNode
}

type linkNode struct {
	image    bool
	children []inlineNode
	href     string
	title    string
}

var htmlEscaper = bytereplacer.New(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeHTML(s string) string {
	return string(htmlEscaper.Replace([]byte(s)))
}

func (n textNode) renderToHTML(sb *strings.Builder, cfg RenderExtensionConfig) {
	sb.WriteString(escapeHTML(string(n)))
}

func (n textNode) renderPlain(sb *strings.Builder) {
	sb.WriteString(string(n))
}

func (n textNode) walk(v *Visitor) RecursionDecision {
	return v.visitString(string(n)).normalize()
}

func (n codeSpanNode) renderToHTML(sb *strings.Builder, cfg RenderExtensionConfig) {
	sb.WriteString("<code>")
	sb.WriteString(escapeHTML(string(n)))
	sb.WriteString("</code>")
}

func (n codeSpanNode) renderPlain(sb *strings.Builder) {
	sb.WriteString(string(n))
}

func (n codeSpanNode) walk(v *Visitor) RecursionDecision {
	return v.visitString(string(n)).normalize()
}

func (n lineBreakNode) renderToHTML(sb *strings.Builder, cfg RenderExtensionConfig) {
	if n.hard {
		sb.WriteString("<br />")
	}
	sb.WriteByte('\n')
}

func (n lineBreakNode) renderPlain(sb *strings.Builder) {
	sb.WriteByte(' ')
}

func (n lineBreakNode) walk(v *Visitor) RecursionDecision {
	return Continue
}

func (n *emphasisNode) renderToHTML(sb *strings.Builder, cfg RenderExtensionConfig) {
	tag := "em"
	if n.strong {
		tag = "strong"
	}
	sb.WriteString("<" + tag + ">")
	for _, c := range n.children {
		c.renderToHTML(sb, cfg)
	}
	sb.WriteString("</" + tag + ">")
}

func (n *emphasisNode) renderPlain(sb *strings.Builder) {
	for _, c := range n.children {
		c.renderPlain(sb)
	}
}

func (n *emphasisNode) walk(v *Visitor) RecursionDecision {
	for _, c := range n.children {
		if c.walk(v) == Break {
			return Break
		}
	}
	return Continue
}

func (n *linkNode) renderToHTML(sb *strings.Builder, cfg RenderExtensionConfig) {
	href := n.href
	if cfg.IsEnabled(PrependFileProtocolIfAbsolutePath) && strings.HasPrefix(href, "/") {
		href = "file://" + href
	}
	if n.image {
		sb.WriteString(`<img src="`)
		sb.WriteString(escapeHTML(href))
		sb.WriteString(`" alt="`)
		var alt strings.Builder
		for _, c := range n.children {
			c.renderPlain(&alt)
		}
		sb.WriteString(escapeHTML(alt.String()))
		sb.WriteString(`"`)
		if n.title != "" {
			sb.WriteString(` title="`)
			sb.WriteString(escapeHTML(n.title))
			sb.WriteString(`"`)
		}
		sb.WriteString(" />")
		return
	}
	sb.WriteString(`<a href="`)
	sb.WriteString(escapeHTML(href))
	sb.WriteString(`"`)
	if n.title != "" {
		sb.WriteString(` title="`)
		sb.WriteString(escapeHTML(n.title))
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	for _, c := range n.children {
		c.renderToHTML(sb, cfg)
	}
	sb.WriteString("</a>")
}

func (n *linkNode) renderPlain(sb *strings.Builder) {
	for _, c := range n.children {
		c.renderPlain(sb)
	}
}

func (n *linkNode) walk(v *Visitor) RecursionDecision {
	for _, c := range n.children {
		if c.walk(v) == Break {
			return Break
		}
	}
	return Continue
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}

func parseInlineNodes(s string) []inlineNode {
	var nodes []inlineNode
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			nodes = append(nodes, textNode(plain.String()))
			plain.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) && isASCIIPunct(s[i+1]) {
				plain.WriteByte(s[i+1])
				i += 2
			} else {
				plain.WriteByte('\\')
				i++
			}
		case '\n':
			// Two or more trailing spaces make the break hard.
			trimmed := strings.TrimRight(plain.String(), " ")
			hard := plain.Len()-len(trimmed) >= 2
			plain.Reset()
			plain.WriteString(trimmed)
			flush()
			nodes = append(nodes, lineBreakNode{hard: hard})
			i++
			for i < len(s) && s[i] == ' ' {
				i++
			}
		case '`':
			if span, next, ok := parseCodeSpan(s, i); ok {
				flush()
				nodes = append(nodes, span)
				i = next
			} else {
				plain.WriteByte(c)
				i++
			}
		case '*', '_':
			if em, next, ok := parseEmphasis(s, i); ok {
				flush()
				nodes = append(nodes, em)
				i = next
			} else {
				plain.WriteByte(c)
				i++
			}
		case '[':
			if link, next, ok := parseLink(s, i, false); ok {
				flush()
				nodes = append(nodes, link)
				i = next
			} else {
				plain.WriteByte(c)
				i++
			}
		case '!':
			if i+1 < len(s) && s[i+1] == '[' {
				if link, next, ok := parseLink(s, i+1, true); ok {
					flush()
					nodes = append(nodes, link)
					i = next
					continue
				}
			}
			plain.WriteByte(c)
			i++
		default:
			plain.WriteByte(c)
			i++
		}
	}
	flush()
	return nodes
}

// parseCodeSpan matches a backtick run against the next run
// of exactly the same length.
// Newlines inside the span become spaces,
// and one leading and trailing space are stripped together
// when the content is not all spaces.
func parseCodeSpan(s string, start int) (node inlineNode, next int, ok bool) {
	open := start
	for open < len(s) && s[open] == '`' {
		open++
	}
	runLen := open - start

	for i := open; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] == '`' {
			j++
		}
		if j-i == runLen {
			content := strings.ReplaceAll(s[open:i], "\n", " ")
			if len(content) >= 2 &&
				strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ") &&
				strings.TrimLeft(content, " ") != "" {
				content = content[1 : len(content)-1]
			}
			return codeSpanNode(content), j, true
		}
		i = j
	}
	return nil, 0, false
}

// parseEmphasis matches a '*' or '_' delimiter run of length one or two
// against the next run of the same character and length.
// The content may not start or end with whitespace.
func parseEmphasis(s string, start int) (node inlineNode, next int, ok bool) {
	ch := s[start]
	runLen := 1
	if start+1 < len(s) && s[start+1] == ch {
		runLen = 2
	}
	open := start + runLen
	closer := findDelimiterRun(s, open, ch, runLen)
	if closer < 0 {
		return nil, 0, false
	}
	content := s[open:closer]
	if content == "" ||
		content[0] == ' ' || content[0] == '\n' ||
		content[len(content)-1] == ' ' || content[len(content)-1] == '\n' {
		return nil, 0, false
	}
	return &emphasisNode{
		strong:   runLen == 2,
		children: parseInlineNodes(content),
	}, closer + runLen, true
}

// findDelimiterRun returns the index of the next unescaped run
// of exactly n ch bytes at or after start, or -1.
func findDelimiterRun(s string, start int, ch byte, n int) int {
	for i := start; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] != ch {
			continue
		}
		j := i
		for j < len(s) && s[j] == ch {
			j++
		}
		if j-i == n && i > start {
			return i
		}
		i = j - 1
	}
	return -1
}

// parseLink matches [text](destination "title").
// start must point at the opening bracket.
func parseLink(s string, start int, image bool) (node inlineNode, next int, ok bool) {
	textEnd := -1
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				textEnd = i
			}
		}
		if textEnd >= 0 {
			break
		}
	}
	if textEnd < 0 || textEnd+1 >= len(s) || s[textEnd+1] != '(' {
		return nil, 0, false
	}

	destEnd := -1
	for i := textEnd + 2; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '\n':
			return nil, 0, false
		case ')':
			destEnd = i
		}
		if destEnd >= 0 {
			break
		}
	}
	if destEnd < 0 {
		return nil, 0, false
	}

	href := strings.TrimSpace(s[textEnd+2 : destEnd])
	title := ""
	if i := strings.IndexAny(href, " \t"); i >= 0 {
		rest := strings.TrimSpace(href[i:])
		if len(rest) >= 2 && rest[0] == '"' && rest[len(rest)-1] == '"' {
			title = rest[1 : len(rest)-1]
			href = href[:i]
		}
	}
	href = unescapePunctuation(href)

	return &linkNode{
		image:    image,
		children: parseInlineNodes(s[start+1 : textEnd]),
		href:     href,
		title:    unescapePunctuation(title),
	}, destEnd + 1, true
}

func unescapePunctuation(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
