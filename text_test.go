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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTextRenderToHTML(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"", ""},
		{"hello", "hello"},
		{"*em*", "<em>em</em>"},
		{"_em_", "<em>em</em>"},
		{"**strong**", "<strong>strong</strong>"},
		{"__strong__", "<strong>strong</strong>"},
		{"**a *b* c**", "<strong>a <em>b</em> c</strong>"},
		{"*a *", "*a *"},
		{"* a*", "* a*"},
		{"`code`", "<code>code</code>"},
		{"`` `tick` ``", "<code>`tick`</code>"},
		{"`a\nb`", "<code>a b</code>"},
		{"`unclosed", "`unclosed"},
		{"[x](y)", `<a href="y">x</a>`},
		{`[x](y "t")`, `<a href="y" title="t">x</a>`},
		{"[a[b]](c)", `<a href="c">a[b]</a>`},
		{"[x]", "[x]"},
		{"![alt](img.png)", `<img src="img.png" alt="alt" />`},
		{`![alt](img.png "cap")`, `<img src="img.png" alt="alt" title="cap" />`},
		{"!bang", "!bang"},
		{`\*not em\*`, "*not em*"},
		{`back\slash`, `back\slash`},
		{"a & <b>", "a &amp; &lt;b&gt;"},
		{"soft\nbreak", "soft\nbreak"},
		{"hard  \nbreak", "hard<br />\nbreak"},
		{"*`code` inside*", "<em><code>code</code> inside</em>"},
	}
	for _, test := range tests {
		var cfg RenderExtensionConfig
		got := parseText(test.source).RenderToHTML(cfg)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("parseText(%q).RenderToHTML (-want +got):\n%s", test.source, diff)
		}
	}
}

func TestTextPlainString(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"plain", "plain"},
		{"**bold** and *em*", "bold and em"},
		{"`cmd --flag`", "cmd --flag"},
		{"[label](https://example.com)", "label"},
		{"multi\nline", "multi line"},
	}
	for _, test := range tests {
		if got := parseText(test.source).PlainString(); got != test.want {
			t.Errorf("parseText(%q).PlainString() = %q; want %q", test.source, got, test.want)
		}
	}
}

func TestTextSource(t *testing.T) {
	const source = "keep **this** [verbatim](x)"
	if got := parseText(source).Source(); got != source {
		t.Errorf("Source() = %q; want %q", got, source)
	}
}

func TestLinkFileProtocol(t *testing.T) {
	var cfg RenderExtensionConfig
	cfg.Enable(PrependFileProtocolIfAbsolutePath)

	tests := []struct {
		source string
		want   string
	}{
		{"[man](/usr/share/man/ls.md)", `<a href="file:///usr/share/man/ls.md">man</a>`},
		{"[web](https://example.com)", `<a href="https://example.com">web</a>`},
		{"[rel](sibling.md)", `<a href="sibling.md">rel</a>`},
	}
	for _, test := range tests {
		if got := parseText(test.source).RenderToHTML(cfg); got != test.want {
			t.Errorf("RenderToHTML(%q) = %q; want %q", test.source, got, test.want)
		}
	}
}
