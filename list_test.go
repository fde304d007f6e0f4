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

import "testing"

// firstList extracts the first block and requires it to be a list.
func firstList(t *testing.T, markdown string) *List {
	t.Helper()
	blocks := Parse(markdown).Container().Blocks()
	if len(blocks) == 0 {
		t.Fatalf("Parse(%q) produced no blocks", markdown)
	}
	l, ok := blocks[0].(*List)
	if !ok {
		t.Fatalf("Parse(%q) first block is %T; want *List", markdown, blocks[0])
	}
	return l
}

func TestParseListTightness(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		wantTight bool
	}{
		{"Tight", "- a\n- b\n", true},
		{"BlankBetweenItems", "- a\n\n- b\n", false},
		{"BlankInsideItem", "- a\n\n  still a\n- b\n", false},
		{"TrailingBlankOnly", "- a\n- b\n\n", true},
		{"SingleItem", "- a\n", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := firstList(t, test.markdown)
			if got := l.IsTight(); got != test.wantTight {
				t.Errorf("Parse(%q) list IsTight() = %t; want %t", test.markdown, got, test.wantTight)
			}
		})
	}
}

func TestParseListMarkers(t *testing.T) {
	tests := []struct {
		name        string
		markdown    string
		wantOrdered bool
		wantStart   int
		wantItems   int
	}{
		{"Dash", "- a\n- b\n", false, 1, 2},
		{"Star", "* a\n", false, 1, 1},
		{"Plus", "+ a\n", false, 1, 1},
		{"Dot", "1. a\n2. b\n3. c\n", true, 1, 3},
		{"Paren", "1) a\n", true, 1, 1},
		{"StartAtSeven", "7. a\n8. b\n", true, 7, 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := firstList(t, test.markdown)
			if got := l.IsOrdered(); got != test.wantOrdered {
				t.Errorf("IsOrdered() = %t; want %t", got, test.wantOrdered)
			}
			if got := l.StartNumber(); got != test.wantStart {
				t.Errorf("StartNumber() = %d; want %d", got, test.wantStart)
			}
			if got := len(l.Items()); got != test.wantItems {
				t.Errorf("len(Items()) = %d; want %d", got, test.wantItems)
			}
		})
	}
}

// Switching marker type starts a new list instead of a new item.
func TestParseListMarkerTypeSwitch(t *testing.T) {
	blocks := Parse("- a\n1. b\n").Container().Blocks()
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks; want 2", len(blocks))
	}
	first, ok := blocks[0].(*List)
	if !ok || first.IsOrdered() {
		t.Errorf("blocks[0] = %T (ordered=%v); want unordered *List", blocks[0], ok && first.IsOrdered())
	}
	second, ok := blocks[1].(*List)
	if !ok || !second.IsOrdered() {
		t.Errorf("blocks[1] = %T; want ordered *List", blocks[1])
	}
}

func TestParseListItemContents(t *testing.T) {
	// A continuation line indented to the content column
	// belongs to the same paragraph.
	l := firstList(t, "- first line\n  second line\n")
	items := l.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items; want 1", len(items))
	}
	blocks := items[0].Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks in item; want 1", len(blocks))
	}
	p, ok := blocks[0].(*Paragraph)
	if !ok {
		t.Fatalf("item block is %T; want *Paragraph", blocks[0])
	}
	if got, want := p.Text().Source(), "first line\nsecond line"; got != want {
		t.Errorf("item paragraph source = %q; want %q", got, want)
	}
}

func TestParseListNested(t *testing.T) {
	l := firstList(t, "- outer\n  - inner one\n  - inner two\n")
	items := l.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items; want 1", len(items))
	}
	blocks := items[0].Blocks()
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks in item; want 2", len(blocks))
	}
	inner, ok := blocks[1].(*List)
	if !ok {
		t.Fatalf("second item block is %T; want *List", blocks[1])
	}
	if got := len(inner.Items()); got != 2 {
		t.Errorf("nested list has %d items; want 2", got)
	}
}

// Four or more spaces before the marker is indented code, not a list.
func TestParseListIndentLimit(t *testing.T) {
	blocks := Parse("    - not a list\n").Container().Blocks()
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks; want 1", len(blocks))
	}
	if _, ok := blocks[0].(*CodeBlock); !ok {
		t.Errorf("block is %T; want *CodeBlock", blocks[0])
	}
}
