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

// RecursionDecision is returned by visitor callbacks to steer a walk.
type RecursionDecision int8

const (
	// Recurse descends into the children of the visited node.
	Recurse RecursionDecision = iota
	// Continue skips the visited node's subtree
	// and proceeds with the next sibling.
	Continue
	// Break aborts the entire traversal
	// with no further callback invocations.
	Break
)

// String returns the name of the decision.
func (rd RecursionDecision) String() string {
	switch rd {
	case Recurse:
		return "Recurse"
	case Continue:
		return "Continue"
	case Break:
		return "Break"
	default:
		return "RecursionDecision(invalid)"
	}
}

// A Visitor receives the nodes of a pre-order document walk.
// A nil callback is treated as returning [Recurse].
//
// Walk entry points never report [Recurse] to their caller:
// the final result is normalized to [Continue] or [Break].
type Visitor struct {
	// Block is called for every block node.
	Block func(Block) RecursionDecision
	// Text is called for every inline text value owned by a block.
	Text func(*Text) RecursionDecision
	// String is called for every leaf string value,
	// such as code block contents and the literal runs inside a [Text].
	String func(string) RecursionDecision
}

func (v *Visitor) visitBlock(b Block) RecursionDecision {
	if v == nil || v.Block == nil {
		return Recurse
	}
	return v.Block(b)
}

func (v *Visitor) visitText(t *Text) RecursionDecision {
	if v == nil || v.Text == nil {
		return Recurse
	}
	return v.Text(t)
}

func (v *Visitor) visitString(s string) RecursionDecision {
	if v == nil || v.String == nil {
		return Recurse
	}
	return v.String(s)
}

// normalize collapses Recurse into Continue for walk results,
// since Recurse is meaningless as a final outcome.
func (rd RecursionDecision) normalize() RecursionDecision {
	if rd == Break {
		return Break
	}
	return Continue
}
