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
	"strconv"
	"strings"

	"github.com/walteh/retrofit/pkg/anchor"
)

// 🔁 CallRewrite replaces awaited fetch calls with the timeout-aware wrapper.
// Each site is judged on its own, so a file may be partly migrated.
type CallRewrite struct {
	opts FrontendOptions
}

func (r *CallRewrite) ID() string { return "call-rewrite" }

func (r *CallRewrite) Requires() []string {
	return []string{r.opts.CallWrapper, TimedOutSetter, ErrorSetter}
}

func (r *CallRewrite) Provides() []string { return nil }

// eligible drops sites whose text already mentions the wrapper.
func (r *CallRewrite) eligible(content string) []anchor.FetchCall {
	var out []anchor.FetchCall
	for _, call := range anchor.FetchCalls(content) {
		if strings.Contains(call.Text, r.opts.CallWrapper) {
			continue
		}
		out = append(out, call)
	}
	return out
}

// AlreadyApplied holds when no site is left to rewrite and the wrapper is in use.
func (r *CallRewrite) AlreadyApplied(content string) bool {
	return len(r.eligible(content)) == 0 && strings.Contains(content, r.opts.CallWrapper+"(")
}

func (r *CallRewrite) Locate(content string) (anchor.Position, bool) {
	calls := r.eligible(content)
	if len(calls) == 0 {
		return anchor.Position{}, false
	}
	first := calls[0]
	return anchor.Position{
		Start: first.Start,
		End:   first.End,
		Captures: map[string]string{
			"name":    first.Name,
			"url":     first.URL,
			"options": first.Options,
		},
	}, true
}

// Transform rewrites every eligible site from at onward. A site whose
// replacement would not balance is left as it was and counted as a mismatch.
func (r *CallRewrite) Transform(content string, at anchor.Position) Result {
	var (
		b          strings.Builder
		last       int
		count      int
		mismatches int
	)
	for _, call := range r.eligible(content) {
		if call.Start < at.Start || call.Start < last {
			continue
		}
		if !call.Complete {
			mismatches++
			continue
		}
		replacement := r.replacement(call)
		if !anchor.Balanced(replacement) {
			mismatches++
			continue
		}
		b.WriteString(content[last:call.Start])
		b.WriteString(withBreaks(content, replacement))
		last = call.End
		count++
	}

	switch {
	case count > 0:
		b.WriteString(content[last:])
		return Result{Content: b.String(), Changed: true, Reason: ReasonApplied, Count: count, Mismatches: mismatches}
	case mismatches > 0:
		return Result{Content: content, Reason: ReasonStructuralMismatch, Mismatches: mismatches}
	default:
		return Result{Content: content, Reason: ReasonAnchorNotFound}
	}
}

func (r *CallRewrite) replacement(call anchor.FetchCall) string {
	ind := call.Indent
	result := call.Name + "Result"

	var b strings.Builder
	b.WriteString("const " + result + " = await " + r.opts.CallWrapper + "(" + call.URL + ", {\n")
	if call.Options != "" {
		b.WriteString(ind + "  ..." + call.Options + ",\n")
	}
	b.WriteString(ind + "  timeout: " + strconv.Itoa(r.opts.TimeoutMillis) + ",\n")
	b.WriteString(ind + "  onTimeout: () => " + TimedOutSetter + "(true),\n")
	b.WriteString(ind + "})\n")
	b.WriteString(ind + "let " + call.Name + "\n")
	b.WriteString(ind + "if (" + result + ".success) {\n")
	b.WriteString(ind + "  " + call.Name + " = " + result + ".data\n")
	b.WriteString(ind + "} else {\n")
	b.WriteString(ind + "  " + ErrorSetter + "(" + result + ".error || " + singleQuote(r.opts.ErrorFallback) + ")\n")
	b.WriteString(ind + "  return\n")
	b.WriteString(ind + "}")
	return b.String()
}

func singleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
