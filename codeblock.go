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
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeBlockIndentLimit is the column width of an indent
// required to start or continue an indented code block.
const codeBlockIndentLimit = 4

// A CodeBlock is a fenced or indented run of literal code.
//
// Fenced blocks may carry a language tag and a style tag,
// an extension of the dialect:
//
//	```**sh**
//	$ echo hello friends!
//	```
//
// renders the code bold and, where possible,
// syntax-highlighted as a shell script.
type CodeBlock struct {
	code     string
	language string
	style    string

	// currentSection points at the heading in effect where the block
	// was parsed. The reference is non-owning and is valid only while
	// the Document that owns both nodes is alive.
	currentSection *Heading
}

// Code returns the literal code, newline terminated.
func (b *CodeBlock) Code() string {
	return b.code
}

// Language returns the language tag from the opening fence,
// or "" for indented blocks and untagged fences.
func (b *CodeBlock) Language() string {
	return b.language
}

// Style returns the style tag from the opening fence:
// a run of '*' or '_' used as a bold or italic hint.
func (b *CodeBlock) Style() string {
	return b.style
}

// CurrentSection returns the heading the block was parsed under,
// or nil. The caller must not retain it past the document's lifetime.
func (b *CodeBlock) CurrentSection() *Heading {
	return b.currentSection
}

// Separate expressions are used for the two fence characters because
// an info string after a backtick fence cannot contain backticks,
// while one after a tilde fence can contain both backticks and tildes.
var (
	backtickOpenFenceRE = regexp.MustCompile("^( {0,3})(`{3,})[ \t]*([*_]*)[ \t]*([^*_ \t`]*)[^`]*$")
	tildeOpenFenceRE    = regexp.MustCompile(`^( {0,3})(~{3,})[ \t]*([*_]*)[ \t]*([^*_ \t]*).*$`)
)

// parseCloseFence recognizes a closing fence line:
// up to three spaces, a run of a single fence character,
// then nothing but whitespace.
func parseCloseFence(line string) (fenceChar byte, runLength int, ok bool) {
	i := leadingSpaces(line)
	if i > 3 || i >= len(line) {
		return 0, 0, false
	}
	fenceChar = line[i]
	if fenceChar != '`' && fenceChar != '~' {
		return 0, 0, false
	}
	for i < len(line) && line[i] == fenceChar {
		i++
		runLength++
	}
	if runLength < 3 || !isBlankLine(line[i:]) {
		return 0, 0, false
	}
	return fenceChar, runLength, true
}

// codeBlockPrefix returns the byte length of a four-column indentation
// prefix, with tabs advancing the column count to the tab stop.
// ok is false if the line has fewer than four columns of indentation.
func codeBlockPrefix(line string) (n int, ok bool) {
	cols := 0
	for i := 0; i < len(line) && cols < codeBlockIndentLimit; i++ {
		switch line[i] {
		case ' ':
			n++
			cols++
		case '\t':
			n++
			cols = codeBlockIndentLimit
		default:
			return 0, false
		}
	}
	if cols < codeBlockIndentLimit {
		return 0, false
	}
	return n, true
}

// parseCodeBlock tries the fenced recognizer, then the indented one.
// Neither consumes input on failure.
// An indented code block cannot interrupt a paragraph;
// a fenced one can.
func parseCodeBlock(lines *LineIterator, currentSection *Heading, isInterruptingParagraph bool) *CodeBlock {
	if lines.IsEnd() {
		return nil
	}
	line := lines.Line()

	if m := backtickOpenFenceRE.FindStringSubmatch(line); m != nil {
		return parseFencedCodeBlock(lines, currentSection, m)
	}
	if m := tildeOpenFenceRE.FindStringSubmatch(line); m != nil {
		return parseFencedCodeBlock(lines, currentSection, m)
	}

	if isInterruptingParagraph {
		return nil
	}
	if _, ok := codeBlockPrefix(line); ok {
		return parseIndentedCodeBlock(lines)
	}
	return nil
}

func parseFencedCodeBlock(lines *LineIterator, currentSection *Heading, match []string) *CodeBlock {
	fenceIndent := len(match[1])
	fence := match[2]
	style := match[3]
	language := match[4]

	lines.Advance()

	var code strings.Builder
	for !lines.IsEnd() {
		line := lines.Line()
		lines.Advance()

		if ch, n, ok := parseCloseFence(line); ok && ch == fence[0] && n >= len(fence) {
			break
		}

		// Content lines shed up to the opening fence's own indentation.
		offset := 0
		for offset < len(line) && offset < fenceIndent && line[offset] == ' ' {
			offset++
		}
		code.WriteString(line[offset:])
		code.WriteByte('\n')
	}

	// Reaching the end of input without a closing fence is fine;
	// the block simply ends there.
	return &CodeBlock{
		code:           code.String(),
		language:       language,
		style:          style,
		currentSection: currentSection,
	}
}

// parseIndentedCodeBlock consumes chunks of four-column-indented lines.
// Blank runs between chunks are preserved verbatim in the output.
// A blank run after the final chunk is not part of the block:
// the run is only consumed once another chunk is known to follow it,
// so trailing blanks stay in the iterator
// for the caller to treat as ordinary blank lines.
func parseIndentedCodeBlock(lines *LineIterator) *CodeBlock {
	var code strings.Builder

	for !lines.IsEnd() {
		line := lines.Line()
		prefix, ok := codeBlockPrefix(line)
		if !ok || prefix == len(line) {
			if !isBlankLine(line) {
				break
			}
			run, more := measureBlankRun(lines)
			if !more {
				break
			}
			for i := 0; i < run; i++ {
				lines.Advance()
			}
			code.WriteString(strings.Repeat("\n", run))
			continue
		}
		lines.Advance()
		code.WriteString(line[prefix:])
		code.WriteByte('\n')
	}

	return &CodeBlock{code: code.String()}
}

// measureBlankRun reports the length of the blank run
// starting at the cursor
// and whether an indented chunk follows it.
func measureBlankRun(lines *LineIterator) (run int, chunkFollows bool) {
	run = 1
	for {
		next, ok := lines.peek(run)
		if !ok {
			return run, false
		}
		if isBlankLine(next) {
			run++
			continue
		}
		if prefix, ok := codeBlockPrefix(next); ok && prefix != len(next) {
			return run, true
		}
		return run, false
	}
}

// RenderToHTML renders the code in <pre><code> wrappers,
// with the style tag as <strong> or <em>
// and the language tag as a class.
// With [SyntaxHighlightCodeBlocks] enabled,
// recognized languages are rendered through the highlighter.
func (b *CodeBlock) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	var sb strings.Builder
	sb.WriteString("<pre>")

	if len(b.style) >= 2 {
		sb.WriteString("<strong>")
	} else if len(b.style) == 1 {
		sb.WriteString("<em>")
	}

	if b.language == "" {
		sb.WriteString("<code>")
	} else {
		fmt.Fprintf(&sb, "<code class=\"language-%s\">", escapeHTML(b.language))
	}

	highlighted := false
	if b.language != "" && cfg.IsEnabled(SyntaxHighlightCodeBlocks) {
		if markup, err := highlightCode(b.code, b.language); err == nil {
			sb.WriteString(markup)
			highlighted = true
		}
	}
	if !highlighted {
		sb.WriteString(escapeHTML(b.code))
	}

	sb.WriteString("</code>")
	if len(b.style) >= 2 {
		sb.WriteString("</strong>")
	} else if len(b.style) == 1 {
		sb.WriteString("</em>")
	}
	sb.WriteString("</pre>\n")
	return sb.String()
}

var highlightFormatter = chromahtml.New(chromahtml.PreventSurroundingPre(true))

// highlightCode converts source code to HTML markup
// for the given language tag.
func highlightCode(code, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("highlight code: no lexer for language %q", language)
	}
	lexer = chroma.Coalesce(lexer)
	tokens, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("highlight code: %w", err)
	}
	var sb strings.Builder
	if err := highlightFormatter.Format(&sb, styles.Fallback, tokens); err != nil {
		return "", fmt.Errorf("highlight code: %w", err)
	}
	return sb.String(), nil
}

// RenderLinesForTerminal emits the code indented by four spaces,
// or by two inside a synopsis section,
// where man page convention keeps command lines close to the margin.
func (b *CodeBlock) RenderLinesForTerminal(viewWidth int) []string {
	indentation := "    "
	if b.currentSection != nil {
		sectionName := b.currentSection.RenderLinesForTerminal(viewWidth)[0]
		if strings.Contains(sectionName, "SYNOPSIS") {
			indentation = "  "
		}
	}

	var lines []string
	for _, line := range strings.Split(strings.TrimSuffix(b.code, "\n"), "\n") {
		lines = append(lines, indentation+line)
	}
	return append(lines, "")
}

// Walk visits the block, then its code as a leaf string.
// The language and style tags are not visited.
func (b *CodeBlock) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(b)
	if rd != Recurse {
		return rd.normalize()
	}
	return v.visitString(b.code).normalize()
}
