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

	"github.com/mattn/go-runewidth"
)

// TableAlignment is a column's cell alignment,
// taken from the ':' placement in the delimiter row.
type TableAlignment int8

const (
	AlignDefault TableAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// A Table is a pipe table:
// a header row, a delimiter row, and zero or more data rows.
type Table struct {
	header     []*Text
	alignments []TableAlignment
	rows       [][]*Text
}

// Header returns the header cells.
func (t *Table) Header() []*Text {
	return t.header
}

// Alignments returns the per-column alignments.
func (t *Table) Alignments() []TableAlignment {
	return t.alignments
}

// Rows returns the data rows.
// Every row has exactly as many cells as the header.
func (t *Table) Rows() [][]*Text {
	return t.rows
}

// parseTable recognizes a header line containing '|'
// followed by a delimiter row with a matching column count.
// It needs one line of lookahead for the delimiter row
// and consumes nothing unless both lines match.
func parseTable(lines *LineIterator) *Table {
	if lines.IsEnd() {
		return nil
	}
	headerLine := lines.Line()
	if leadingSpaces(headerLine) > 3 || !strings.ContainsRune(headerLine, '|') {
		return nil
	}
	delimiterLine, ok := lines.peek(1)
	if !ok {
		return nil
	}
	alignments, ok := parseTableDelimiterRow(delimiterLine)
	if !ok {
		return nil
	}
	headerCells := splitTableRow(headerLine)
	if len(headerCells) != len(alignments) {
		return nil
	}
	lines.Advance()
	lines.Advance()

	table := &Table{
		header:     parseTableCells(headerCells, len(alignments)),
		alignments: alignments,
	}
	for !lines.IsEnd() {
		line := lines.Line()
		if isBlankLine(line) || !strings.ContainsRune(line, '|') {
			break
		}
		lines.Advance()
		table.rows = append(table.rows, parseTableCells(splitTableRow(line), len(alignments)))
	}
	return table
}

// parseTableDelimiterRow parses a row of cells
// each matching an optional ':', a run of '-', and an optional ':'.
func parseTableDelimiterRow(line string) ([]TableAlignment, bool) {
	if leadingSpaces(line) > 3 || !strings.ContainsRune(line, '|') {
		return nil, false
	}
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	alignments := make([]TableAlignment, 0, len(cells))
	for _, cell := range cells {
		cell = strings.TrimSpace(cell)
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":") && len(cell) > 1
		dashes := strings.TrimSuffix(strings.TrimPrefix(cell, ":"), ":")
		if len(dashes) == 0 || strings.Count(dashes, "-") != len(dashes) {
			return nil, false
		}
		switch {
		case left && right:
			alignments = append(alignments, AlignCenter)
		case left:
			alignments = append(alignments, AlignLeft)
		case right:
			alignments = append(alignments, AlignRight)
		default:
			alignments = append(alignments, AlignDefault)
		}
	}
	return alignments, true
}

// splitTableRow splits a row on pipes that are not backslash-escaped,
// dropping a leading and trailing empty cell
// produced by the customary outer pipes.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	var cells []string
	var cell strings.Builder
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if i+1 < len(line) {
				cell.WriteByte('\\')
				cell.WriteByte(line[i+1])
				i++
				continue
			}
			cell.WriteByte('\\')
		case '|':
			cells = append(cells, cell.String())
			cell.Reset()
		default:
			cell.WriteByte(line[i])
		}
	}
	cells = append(cells, cell.String())
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// parseTableCells parses each cell's inline content,
// truncating or padding the row to the header's column count.
func parseTableCells(cells []string, columns int) []*Text {
	texts := make([]*Text, columns)
	for i := range texts {
		if i < len(cells) {
			texts[i] = parseText(strings.TrimSpace(cells[i]))
		} else {
			texts[i] = parseText("")
		}
	}
	return texts
}

func (a TableAlignment) htmlAttribute() string {
	switch a {
	case AlignLeft:
		return ` align="left"`
	case AlignCenter:
		return ` align="center"`
	case AlignRight:
		return ` align="right"`
	default:
		return ""
	}
}

// RenderToHTML renders the table with thead/tbody sections
// and align attributes on the cells.
func (t *Table) RenderToHTML(cfg RenderExtensionConfig, tight bool) string {
	var sb strings.Builder
	sb.WriteString("<table>\n<thead>\n<tr>\n")
	for i, cell := range t.header {
		sb.WriteString("<th")
		sb.WriteString(t.alignments[i].htmlAttribute())
		sb.WriteString(">")
		sb.WriteString(cell.RenderToHTML(cfg))
		sb.WriteString("</th>\n")
	}
	sb.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range t.rows {
		sb.WriteString("<tr>\n")
		for i, cell := range row {
			sb.WriteString("<td")
			sb.WriteString(t.alignments[i].htmlAttribute())
			sb.WriteString(">")
			sb.WriteString(cell.RenderToHTML(cfg))
			sb.WriteString("</td>\n")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
	return sb.String()
}

// RenderLinesForTerminal lays the table out in fixed-width columns
// sized to the widest cell, measured in terminal cells.
func (t *Table) RenderLinesForTerminal(viewWidth int) []string {
	widths := make([]int, len(t.header))
	measure := func(row []*Text) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell.PlainString()); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.header)
	for _, row := range t.rows {
		measure(row)
	}

	renderRow := func(row []*Text) string {
		var sb strings.Builder
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(padCell(cell.PlainString(), widths[i], t.alignments[i]))
		}
		return strings.TrimRight(sb.String(), " ")
	}

	lines := []string{renderRow(t.header)}
	var sep strings.Builder
	for i, w := range widths {
		if i > 0 {
			sep.WriteString("  ")
		}
		sep.WriteString(strings.Repeat("-", w))
	}
	lines = append(lines, sep.String())
	for _, row := range t.rows {
		lines = append(lines, renderRow(row))
	}
	return append(lines, "")
}

func padCell(s string, width int, alignment TableAlignment) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch alignment {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// Walk visits the table, then every cell's text in row order,
// header first.
func (t *Table) Walk(v *Visitor) RecursionDecision {
	rd := v.visitBlock(t)
	if rd != Recurse {
		return rd.normalize()
	}
	for _, cell := range t.header {
		if cell.Walk(v) == Break {
			return Break
		}
	}
	for _, row := range t.rows {
		for _, cell := range row {
			if cell.Walk(v) == Break {
				return Break
			}
		}
	}
	return Continue
}
