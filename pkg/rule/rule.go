// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rule

import (
	"strings"

	"github.com/walteh/retrofit/pkg/anchor"
)

// 🏷️ Reason explains what a rule did with a file
type Reason int

const (
	ReasonApplied            Reason = iota // Content was rewritten
	ReasonAlreadyApplied                   // The change is already present
	ReasonAnchorNotFound                   // No landmark to insert at
	ReasonStructuralMismatch               // Every candidate rewrite failed the balance guard
)

// String returns a string representation of Reason
func (r Reason) String() string {
	switch r {
	case ReasonApplied:
		return "applied"
	case ReasonAlreadyApplied:
		return "already-applied"
	case ReasonAnchorNotFound:
		return "anchor-not-found"
	case ReasonStructuralMismatch:
		return "structural-mismatch"
	default:
		return "unknown"
	}
}

// 📄 Result is the output of one rule over one file's content
type Result struct {
	Content    string // Content after the rule
	Changed    bool   // Whether Content differs from the input
	Reason     Reason // Why the rule did or did not change anything
	Count      int    // Sites rewritten by the rule
	Mismatches int    // Sites skipped because the rewrite would unbalance delimiters
}

// 🧩 Rule is one detect/locate/transform unit of the pipeline. Rules hold no
// state; every method is a pure function of its input.
type Rule interface {
	// ID returns the unique rule identifier
	ID() string

	// Requires lists identifiers the rule's inserted code references
	Requires() []string

	// Provides lists identifiers the rule makes available
	Provides() []string

	// AlreadyApplied reports whether the rule's change is already present
	AlreadyApplied(content string) bool

	// Locate finds the rule's anchor
	Locate(content string) (anchor.Position, bool)

	// Transform rewrites content at the located anchor
	Transform(content string, at anchor.Position) Result
}

// Apply runs a rule against content: precondition, then anchor, then transform.
// Anything short of a successful transform returns content untouched.
func Apply(r Rule, content string) Result {
	if r.AlreadyApplied(content) {
		return Result{Content: content, Reason: ReasonAlreadyApplied}
	}
	at, ok := r.Locate(content)
	if !ok {
		return Result{Content: content, Reason: ReasonAnchorNotFound}
	}
	res := r.Transform(content, at)
	if !res.Changed {
		res.Content = content
	}
	return res
}

func applied(content string) Result {
	return Result{Content: content, Changed: true, Reason: ReasonApplied, Count: 1}
}

// lineBreak returns the file's line ending: CRLF when any line ends with it.
func lineBreak(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// withBreaks converts inserted text to content's line ending. Inserted text
// may carry spans copied from content, so existing CRLF pairs are kept whole.
func withBreaks(content, inserted string) string {
	if nl := lineBreak(content); nl != "\n" {
		return strings.ReplaceAll(strings.ReplaceAll(inserted, "\r\n", "\n"), "\n", nl)
	}
	return inserted
}
