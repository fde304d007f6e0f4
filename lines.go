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

// A Context changes how a [LineIterator] exposes lines to a nested parse
// by stripping a per-nesting-level prefix from every line.
// Contexts are strictly nested:
// callers must pop exactly the contexts they pushed,
// on every return path,
// and the stack depth always equals the active container nesting depth.
type Context struct {
	kind         contextKind
	indent       int
	ignorePrefix bool
}

type contextKind int8

const (
	contextListItem contextKind = iota
	contextBlockQuote
)

// ListItemContext returns a [Context] that strips indent columns of
// list item indentation from every line.
// The line the item marker sits on is exposed
// with its first indent bytes removed regardless of their content,
// since the marker itself occupies the indentation there.
func ListItemContext(indent int) Context {
	return Context{kind: contextListItem, indent: indent, ignorePrefix: true}
}

// BlockQuoteContext returns a [Context] that strips a block quote marker
// (up to three spaces, '>', and an optional following space)
// from every line.
// A line without the marker ends the iteration for the nested parse.
func BlockQuoteContext() Context {
	return Context{kind: contextBlockQuote}
}

// A LineIterator is a cursor over the lines of a document.
// Dereferencing and end checks always apply the active context stack,
// so nested parses see lines with their enclosing indentation
// already removed.
type LineIterator struct {
	lines []string
	pos   int
	stack []Context
}

func newLineIterator(lines []string) *LineIterator {
	return &LineIterator{lines: lines}
}

// IsEnd reports whether the cursor is exhausted.
// Under an active context,
// a line that does not match the context ends iteration
// even though more lines follow:
// the nested parse returns,
// the caller pops the context,
// and the same line is reconsidered at the enclosing level.
func (it *LineIterator) IsEnd() bool {
	if it.pos >= len(it.lines) {
		return true
	}
	_, ok := it.applyContexts(it.lines[it.pos], true)
	return !ok
}

// Line returns the current line with all active contexts applied.
// It panics if IsEnd reports true.
func (it *LineIterator) Line() string {
	if it.pos >= len(it.lines) {
		panic("markdown: Line called past end of input")
	}
	line, ok := it.applyContexts(it.lines[it.pos], true)
	if !ok {
		panic("markdown: Line called on a line excluded by the active context")
	}
	return line
}

// Advance moves the cursor to the next line.
// Unconditional prefix stripping applies only to the line
// that was current when its context was pushed,
// so advancing clears the flag on the whole stack.
func (it *LineIterator) Advance() {
	it.pos++
	for i := range it.stack {
		it.stack[i].ignorePrefix = false
	}
}

// PushContext makes ctx the innermost active context.
func (it *LineIterator) PushContext(ctx Context) {
	it.stack = append(it.stack, ctx)
}

// PopContext removes the innermost active context.
// It panics if no context is active.
func (it *LineIterator) PopContext() {
	if len(it.stack) == 0 {
		panic("markdown: PopContext called with no active context")
	}
	it.stack = it.stack[:len(it.stack)-1]
}

// peek returns the line offset lines past the cursor
// with the active contexts applied.
// Unconditional prefix stripping is only honored for the current line:
// it was established for that line alone.
func (it *LineIterator) peek(offset int) (string, bool) {
	if it.pos+offset >= len(it.lines) {
		return "", false
	}
	return it.applyContexts(it.lines[it.pos+offset], offset == 0)
}

// applyContexts strips each active context's prefix
// in the order the contexts were pushed.
// Outer contexts were established on earlier lines,
// so their prefixes come first in the raw line
// and stripping composes sequentially.
func (it *LineIterator) applyContexts(line string, honorIgnorePrefix bool) (string, bool) {
	for _, ctx := range it.stack {
		switch ctx.kind {
		case contextListItem:
			switch {
			case ctx.ignorePrefix && honorIgnorePrefix:
				if ctx.indent < len(line) {
					line = line[ctx.indent:]
				} else {
					line = ""
				}
			case isBlankLine(line):
				// Blank lines continue the container regardless of indentation.
			case leadingSpaces(line) >= ctx.indent:
				line = line[ctx.indent:]
			default:
				return "", false
			}
		case contextBlockQuote:
			rest, ok := trimBlockQuotePrefix(line)
			if !ok {
				return "", false
			}
			line = rest
		default:
			panic("markdown: unknown context kind")
		}
	}
	return line, true
}

// splitLines splits source on newlines.
// Carriage returns before a newline are dropped
// and a final line without a terminator is kept,
// while a trailing terminator does not produce an extra empty line.
func splitLines(source string) []string {
	lines := strings.Split(source, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		if b := line[i]; b != ' ' && b != '\t' {
			return false
		}
	}
	return true
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func trimBlockQuotePrefix(line string) (string, bool) {
	n := leadingSpaces(line)
	if n > 3 || n >= len(line) || line[n] != '>' {
		return "", false
	}
	rest := line[n+1:]
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
	}
	return rest, true
}
