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

func TestDocumentRenderToHTML(t *testing.T) {
	var cfg RenderExtensionConfig
	got := Parse("hello\n").RenderToHTML("<title>t</title>\n", cfg)
	want := "<!DOCTYPE html>\n" +
		"<html>\n" +
		"<head>\n" +
		"<meta charset=\"utf-8\">\n" +
		"<title>t</title>\n" +
		"</head>\n" +
		"<body>\n" +
		"<p>hello</p>\n" +
		"</body>\n" +
		"</html>\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("page (-want +got):\n%s", diff)
	}
}

func TestDocumentRenderForTerminal(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		viewWidth int
		want      string
	}{
		{
			name:      "Empty",
			markdown:  "",
			viewWidth: 80,
			want:      "",
		},
		{
			name:      "ParagraphWraps",
			markdown:  "alpha beta gamma\n",
			viewWidth: 10,
			want:      "alpha beta\ngamma\n\n",
		},
		{
			name:      "ZeroWidthDisablesWrapping",
			markdown:  "alpha beta gamma\n",
			viewWidth: 0,
			want:      "alpha beta gamma\n\n",
		},
		{
			name:      "HeadingUppercased",
			markdown:  "# name\n\ntext\n",
			viewWidth: 80,
			want:      "NAME\n\ntext\n\n",
		},
		{
			name:      "DeepHeadingIndented",
			markdown:  "### Options\n",
			viewWidth: 80,
			want:      "  Options\n\n",
		},
		{
			name:      "HorizontalRuleSpansWidth",
			markdown:  "---\n",
			viewWidth: 5,
			want:      "-----\n\n",
		},
		{
			name:      "BlockQuotePrefixed",
			markdown:  "> hi\n",
			viewWidth: 80,
			want:      "> hi\n>\n",
		},
		{
			name:      "OrderedListNumbering",
			markdown:  "3. a\n4. b\n",
			viewWidth: 80,
			want:      "  3. a\n\n  4. b\n\n",
		},
		{
			name:      "UnorderedListMarkers",
			markdown:  "- a\n- b\n",
			viewWidth: 80,
			want:      "  * a\n\n  * b\n\n",
		},
		{
			name:      "CommentInvisible",
			markdown:  "<!-- hidden -->\nshown\n",
			viewWidth: 80,
			want:      "shown\n\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Parse(test.markdown).RenderForTerminal(test.viewWidth)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("RenderForTerminal(%d) of %q (-want +got):\n%s",
					test.viewWidth, test.markdown, diff)
			}
		})
	}
}

func TestListContinuationLinesAlign(t *testing.T) {
	got := Parse("- first\n  second\n").RenderForTerminal(0)
	want := "  * first second\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("list continuation (-want +got):\n%s", diff)
	}

	// A nested block keeps the item's content indentation.
	got = Parse("1. para\n\n   ```\n   code\n   ```\n").RenderForTerminal(0)
	want = "  1. para\n\n         code\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nested block indentation (-want +got):\n%s", diff)
	}
}

func TestRenderExtensionConfig(t *testing.T) {
	var cfg RenderExtensionConfig
	if cfg.IsEnabled(FragmentLinksInHeading) {
		t.Error("zero config has FragmentLinksInHeading enabled")
	}

	cfg = DefaultRenderExtensionConfig()
	for _, e := range []RenderExtension{
		FragmentLinksInHeading,
		PrependFileProtocolIfAbsolutePath,
		SyntaxHighlightCodeBlocks,
	} {
		if !cfg.IsEnabled(e) {
			t.Errorf("default config has extension %d disabled", e)
		}
	}

	cfg.Disable(SyntaxHighlightCodeBlocks)
	if cfg.IsEnabled(SyntaxHighlightCodeBlocks) {
		t.Error("Disable left SyntaxHighlightCodeBlocks enabled")
	}
	if !cfg.IsEnabled(FragmentLinksInHeading) {
		t.Error("Disable turned off an unrelated extension")
	}

	cfg.DisableAll()
	if cfg.IsEnabled(FragmentLinksInHeading) || cfg.IsEnabled(PrependFileProtocolIfAbsolutePath) {
		t.Error("DisableAll left an extension enabled")
	}

	cfg.Enable(FragmentLinksInHeading)
	if !cfg.IsEnabled(FragmentLinksInHeading) {
		t.Error("Enable did not turn the extension on")
	}
}
