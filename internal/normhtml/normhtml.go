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

// Package normhtml normalizes HTML fragments
// so tests can compare renderer output
// without tripping over insignificant whitespace,
// attribute order, or quoting differences.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// NormalizeHTML strips insignificant differences from an HTML fragment:
// whitespace outside <pre> is collapsed,
// whitespace around block tags is dropped,
// and attributes are sorted and consistently quoted.
func NormalizeHTML(b []byte) []byte {
	tok := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var out []byte
	last := html.StartTagToken
	lastTag := ""
	inPre := false

	for {
		switch tt := tok.Next(); tt {
		case html.ErrorToken:
			return out

		case html.TextToken:
			data := tok.Text()
			if last == html.EndTagToken || last == html.StartTagToken {
				if lastTag == "br" {
					data = bytes.TrimLeft(data, "\n")
				}
				if isBlockTag(lastTag) && !inPre {
					if last == html.StartTagToken {
						data = bytes.TrimLeftFunc(data, unicode.IsSpace)
					} else {
						data = bytes.TrimSpace(data)
					}
				}
			}
			if !inPre {
				data = whitespaceRE.ReplaceAll(data, []byte(" "))
			}
			out = append(out, textEscaper.Replace(bytes.Clone(data))...)
			last = html.TextToken

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tok.TagName()
			tag := string(name)
			if tag == "pre" {
				inPre = true
			}
			if isBlockTag(tag) {
				out = bytes.TrimRightFunc(out, unicode.IsSpace)
			}
			out = append(out, '<')
			out = append(out, tag...)
			out = appendAttributes(out, tok, hasAttr)
			out = append(out, '>')
			lastTag = tag
			last = tt
			if tt == html.SelfClosingTagToken {
				last = html.EndTagToken
			}

		case html.EndTagToken:
			name, _ := tok.TagName()
			tag := string(name)
			if tag == "pre" {
				inPre = false
			} else if isBlockTag(tag) {
				out = bytes.TrimRightFunc(out, unicode.IsSpace)
			}
			out = append(out, "</"...)
			out = append(out, tag...)
			out = append(out, '>')
			lastTag = tag
			last = html.EndTagToken

		case html.CommentToken:
			out = append(out, tok.Raw()...)
			last = html.CommentToken
		}
	}
}

func appendAttributes(out []byte, tok *html.Tokenizer, hasAttr bool) []byte {
	if !hasAttr {
		return out
	}
	type attribute struct {
		key   string
		value string
	}
	var attrs []attribute
	for {
		k, v, more := tok.TagAttr()
		attrs = append(attrs, attribute{string(k), string(v)})
		if !more {
			break
		}
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].key < attrs[j].key })
	for _, attr := range attrs {
		out = append(out, ' ')
		out = append(out, attr.key...)
		if attr.value != "" {
			out = append(out, `="`...)
			out = append(out, html.EscapeString(attr.value)...)
			out = append(out, '"')
		}
	}
	return out
}

var blockTags = func() map[string]bool {
	tags := []atom.Atom{
		atom.Article, atom.Aside, atom.Blockquote, atom.Body, atom.Button,
		atom.Canvas, atom.Caption, atom.Col, atom.Colgroup, atom.Dd,
		atom.Div, atom.Dl, atom.Dt, atom.Embed, atom.Fieldset,
		atom.Figcaption, atom.Figure, atom.Footer, atom.Form, atom.H1,
		atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header,
		atom.Hgroup, atom.Hr, atom.Iframe, atom.Li, atom.Map, atom.Object,
		atom.Ol, atom.Output, atom.P, atom.Pre, atom.Progress,
		atom.Script, atom.Section, atom.Style, atom.Table, atom.Tbody,
		atom.Td, atom.Textarea, atom.Tfoot, atom.Th, atom.Thead, atom.Tr,
		atom.Ul, atom.Video,
	}
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t.String()] = true
	}
	return m
}()

func isBlockTag(tag string) bool {
	return blockTags[tag]
}
