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

package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/inkmark/markdown"
	"github.com/inkmark/markdown/internal/normhtml"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "Paragraph",
			markdown: "hello world\n",
			want:     "hello world\n",
		},
		{
			name:     "Heading",
			markdown: "## Usage\n",
			want:     "## Usage\n",
		},
		{
			name:     "SetextBecomesATX",
			markdown: "Title\n===\n",
			want:     "# Title\n",
		},
		{
			name:     "ThematicBreak",
			markdown: "***\n",
			want:     "---\n",
		},
		{
			name:     "TightList",
			markdown: "- a\n- b\n",
			want:     "- a\n- b\n",
		},
		{
			name:     "LooseList",
			markdown: "- a\n\n- b\n",
			want:     "- a\n\n- b\n",
		},
		{
			name:     "OrderedListRenumbersFromStart",
			markdown: "3. a\n7. b\n",
			want:     "3. a\n4. b\n",
		},
		{
			name:     "NestedList",
			markdown: "- outer\n  - inner\n",
			want:     "- outer\n  - inner\n",
		},
		{
			name:     "BlockQuote",
			markdown: "> quoted\n> lines\n",
			want:     "> quoted\n> lines\n",
		},
		{
			name:     "FencedCode",
			markdown: "```sh\nls\n```\n",
			want:     "```sh\nls\n```\n",
		},
		{
			name:     "IndentedCodeBecomesFenced",
			markdown: "    code\n",
			want:     "```\ncode\n```\n",
		},
		{
			name:     "CodeWithBacktickRunGetsLongerFence",
			markdown: "````\na ``` b\n````\n",
			want:     "````\na ``` b\n````\n",
		},
		{
			name:     "StyledFence",
			markdown: "```**sh**\nls\n```\n",
			want:     "```**sh\nls\n```\n",
		},
		{
			name:     "Comment",
			markdown: "<!-- keep me -->\n",
			want:     "<!-- keep me -->\n",
		},
		{
			name:     "Table",
			markdown: "|a|b|\n|---|---:|\n|1|2|\n",
			want:     "| a | b |\n| --- | ---: |\n| 1 | 2 |\n",
		},
		{
			name:     "MixedDocument",
			markdown: "# Title\n\nintro\n\n- a\n- b\n\n> quoted\n",
			want:     "# Title\n\nintro\n\n- a\n- b\n\n> quoted\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := new(strings.Builder)
			if err := Format(got, markdown.Parse(test.markdown)); err != nil {
				t.Fatal("Format:", err)
			}
			if diff := cmp.Diff(test.want, got.String()); diff != "" {
				t.Errorf("Format(Parse(%q)) (-want +got):\n%s", test.markdown, diff)
			}
		})
	}
}

// Formatting must not change what the document means:
// the reformatted text renders to equivalent HTML,
// and formatting the reformatted text changes nothing further.
func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"# Title\n\nintro paragraph\n\n- a\n- b\n\n1. one\n2. two\n",
		"> quote\n\n```sh\nls -l\n```\n",
		"| name | n |\n| :--- | ---: |\n| a | 10 |\n",
		"Setext\n---\n\ntext with **emphasis** and `code`\n",
		"- item\n\n  second paragraph\n",
	}
	var cfg markdown.RenderExtensionConfig
	for _, input := range inputs {
		originalHTML := markdown.Parse(input).RenderToInlineHTML(cfg)

		formatted := new(strings.Builder)
		if err := Format(formatted, markdown.Parse(input)); err != nil {
			t.Errorf("Format #1 of %q: %v", input, err)
			continue
		}
		formattedHTML := markdown.Parse(formatted.String()).RenderToInlineHTML(cfg)

		diff := cmp.Diff(
			string(normhtml.NormalizeHTML([]byte(originalHTML))),
			string(normhtml.NormalizeHTML([]byte(formattedHTML))))
		if diff != "" {
			t.Errorf("reformatting %q changed semantics (-original +reformatted):\n%s", input, diff)
		}

		reformatted := new(strings.Builder)
		if err := Format(reformatted, markdown.Parse(formatted.String())); err != nil {
			t.Errorf("Format #2 of %q: %v", input, err)
			continue
		}
		if diff := cmp.Diff(formatted.String(), reformatted.String()); diff != "" {
			t.Errorf("Format of %q not idempotent (-first +second):\n%s", input, diff)
		}
	}
}
