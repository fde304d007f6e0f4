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

// Package format writes a parsed document back out as Markdown
// that parses to an equivalent document.
package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inkmark/markdown"
)

// Format writes doc as Markdown to w.
func Format(w io.Writer, doc *markdown.Document) error {
	ww := &errWriter{w: w}
	writeBlocks(ww, doc.Container().Blocks(), false)
	return ww.err
}

// writeBlocks writes each block's lines,
// separating blocks with a blank line unless the run is tight.
func writeBlocks(w *errWriter, blocks []markdown.Block, tight bool) {
	for i, b := range blocks {
		if i > 0 && !tight {
			w.WriteString("\n")
		}
		for _, line := range blockLines(b) {
			w.WriteString(line)
			w.WriteString("\n")
		}
	}
}

func blockLines(b markdown.Block) []string {
	switch b := b.(type) {
	case *markdown.Paragraph:
		return strings.Split(b.Text().Source(), "\n")
	case *markdown.Heading:
		return []string{strings.Repeat("#", b.Level()) + " " + b.Text().Source()}
	case *markdown.HorizontalRule:
		return []string{"---"}
	case *markdown.CodeBlock:
		return codeBlockLines(b)
	case *markdown.List:
		return listLines(b)
	case *markdown.BlockQuote:
		return prefixLines(containerLines(b.Contents(), false), "> ")
	case *markdown.CommentBlock:
		return strings.Split(strings.TrimSuffix(b.Comment(), "\n"), "\n")
	case *markdown.Table:
		return tableLines(b)
	case *markdown.ContainerBlock:
		return containerLines(b, false)
	default:
		panic(fmt.Sprintf("format: unhandled block type %T", b))
	}
}

func containerLines(c *markdown.ContainerBlock, tight bool) []string {
	var lines []string
	for i, b := range c.Blocks() {
		if i > 0 && !tight {
			lines = append(lines, "")
		}
		lines = append(lines, blockLines(b)...)
	}
	return lines
}

func codeBlockLines(b *markdown.CodeBlock) []string {
	fence := "```"
	// A longer fence keeps code containing backtick runs intact.
	for strings.Contains(b.Code(), fence) {
		fence += "`"
	}
	info := b.Style() + b.Language()
	lines := []string{fence + info}
	code := strings.TrimSuffix(b.Code(), "\n")
	if code != "" {
		lines = append(lines, strings.Split(code, "\n")...)
	}
	return append(lines, fence)
}

func listLines(l *markdown.List) []string {
	var lines []string
	for i, item := range l.Items() {
		if i > 0 && !l.IsTight() {
			lines = append(lines, "")
		}
		marker := "-"
		if l.IsOrdered() {
			marker = strconv.Itoa(l.StartNumber()+i) + "."
		}
		indent := strings.Repeat(" ", len(marker)+1)
		for j, line := range containerLines(item, l.IsTight()) {
			switch {
			case j == 0:
				lines = append(lines, marker+" "+line)
			case line == "":
				lines = append(lines, "")
			default:
				lines = append(lines, indent+line)
			}
		}
	}
	return lines
}

func tableLines(t *markdown.Table) []string {
	row := func(cells []*markdown.Text) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = cell.Source()
		}
		return "| " + strings.Join(parts, " | ") + " |"
	}
	lines := []string{row(t.Header())}
	delims := make([]string, len(t.Alignments()))
	for i, a := range t.Alignments() {
		switch a {
		case markdown.AlignLeft:
			delims[i] = ":---"
		case markdown.AlignCenter:
			delims[i] = ":---:"
		case markdown.AlignRight:
			delims[i] = "---:"
		default:
			delims[i] = "---"
		}
	}
	lines = append(lines, "| "+strings.Join(delims, " | ")+" |")
	for _, r := range t.Rows() {
		lines = append(lines, row(r))
	}
	return lines
}

func prefixLines(lines []string, prefix string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			out[i] = strings.TrimRight(prefix, " ")
		} else {
			out[i] = prefix + line
		}
	}
	return out
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}
