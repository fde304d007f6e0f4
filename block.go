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

// A Block is a structural element of a document:
// a paragraph, heading, list, code block, and so on.
// Every block exclusively owns its children;
// the tree contains no cycles and no node outlives its document.
// Blocks are immutable once their parsing recognizer has returned.
type Block interface {
	// RenderToHTML produces an HTML fragment for the block.
	// tight is inherited from the enclosing container
	// and selects the compact list rendering mode.
	RenderToHTML(cfg RenderExtensionConfig, tight bool) string

	// RenderLinesForTerminal produces plain text lines
	// for fixed-width terminal display.
	// viewWidth is the target line width in terminal cells;
	// zero or negative disables wrapping.
	RenderLinesForTerminal(viewWidth int) []string

	// Walk traverses the block and its children in pre-order,
	// reporting only [Continue] or [Break].
	Walk(v *Visitor) RecursionDecision
}

// RenderExtension is a bitmask of optional rendering behaviors.
type RenderExtension uint8

const (
	// FragmentLinksInHeading gives each heading an id
	// and wraps its content in a link to its own fragment.
	FragmentLinksInHeading RenderExtension = 1 << iota
	// PrependFileProtocolIfAbsolutePath rewrites link destinations
	// that are absolute local paths to file:// URLs.
	PrependFileProtocolIfAbsolutePath
	// SyntaxHighlightCodeBlocks runs fenced code with a recognized
	// language tag through the syntax highlighter during HTML rendering.
	SyntaxHighlightCodeBlocks
)

// RenderExtensionConfig selects which render extensions are active.
// The zero value has every extension disabled;
// most callers want [DefaultRenderExtensionConfig].
type RenderExtensionConfig struct {
	extensions RenderExtension
}

// DefaultRenderExtensionConfig returns a configuration
// with every extension enabled.
func DefaultRenderExtensionConfig() RenderExtensionConfig {
	return RenderExtensionConfig{
		extensions: FragmentLinksInHeading |
			PrependFileProtocolIfAbsolutePath |
			SyntaxHighlightCodeBlocks,
	}
}

// IsEnabled reports whether all extensions in e are active.
func (c RenderExtensionConfig) IsEnabled(e RenderExtension) bool {
	return c.extensions&e == e
}

// Enable turns on the given extensions.
func (c *RenderExtensionConfig) Enable(e RenderExtension) {
	c.extensions |= e
}

// Disable turns off the given extensions.
func (c *RenderExtensionConfig) Disable(e RenderExtension) {
	c.extensions &^= e
}

// DisableAll turns off every extension.
func (c *RenderExtensionConfig) DisableAll() {
	c.extensions = 0
}
