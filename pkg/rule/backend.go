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

// 📥 TimeoutImport ensures the query timeout helpers are imported, after the
// last import statement.
type TimeoutImport struct {
	opts BackendOptions
}

func (r *TimeoutImport) ID() string { return "timeout-import" }

func (r *TimeoutImport) Requires() []string { return nil }

func (r *TimeoutImport) Provides() []string { return r.names() }

func (r *TimeoutImport) names() []string {
	return []string{r.opts.Wrapper, r.opts.ErrorMapper, r.opts.ErrorType}
}

func (r *TimeoutImport) AlreadyApplied(content string) bool {
	return len(missingBindings(anchor.Imports(content), r.names())) == 0
}

func (r *TimeoutImport) Locate(content string) (anchor.Position, bool) {
	imps := anchor.Imports(content)
	return locateImport(imps, r.opts.TimeoutImportPath, func() (anchor.Position, bool) {
		if len(imps) == 0 {
			return anchor.Position{}, false
		}
		last := imps[len(imps)-1]
		return anchor.Position{
			Start:    last.Start,
			End:      last.End,
			Captures: map[string]string{"mode": placeAfter},
		}, true
	})
}

func (r *TimeoutImport) Transform(content string, at anchor.Position) Result {
	return ensureImport(content, r.opts.TimeoutImportPath, r.names(), at)
}

// ⏱️ QueryWrap wraps awaited database calls in the timeout helper. Transactions
// get the longer budget. Calls nested in another call's arguments are wrapped
// too.
type QueryWrap struct {
	opts BackendOptions
}

func (r *QueryWrap) ID() string { return "query-wrap" }

func (r *QueryWrap) Requires() []string { return []string{r.opts.Wrapper} }

func (r *QueryWrap) Provides() []string { return nil }

func (r *QueryWrap) AlreadyApplied(content string) bool {
	return len(anchor.QueryCalls(content)) == 0 && strings.Contains(content, r.opts.Wrapper+"(")
}

func (r *QueryWrap) Locate(content string) (anchor.Position, bool) {
	calls := anchor.QueryCalls(content)
	if len(calls) == 0 {
		return anchor.Position{}, false
	}
	return anchor.Position{Start: calls[0].Start, End: calls[0].End}, true
}

func (r *QueryWrap) Transform(content string, at anchor.Position) Result {
	out, count, mismatches := r.wrap(content)
	switch {
	case count > 0:
		return Result{Content: out, Changed: true, Reason: ReasonApplied, Count: count, Mismatches: mismatches}
	case mismatches > 0:
		return Result{Content: content, Reason: ReasonStructuralMismatch, Mismatches: mismatches}
	default:
		return Result{Content: content, Reason: ReasonAnchorNotFound}
	}
}

// wrap rewrites every call in s, recursing into argument lists first.
func (r *QueryWrap) wrap(s string) (string, int, int) {
	var (
		b          strings.Builder
		last       int
		count      int
		mismatches int
	)
	for _, q := range anchor.QueryCalls(s) {
		args, n, m := r.wrap(s[q.ArgsStart:q.ArgsEnd])
		count += n
		mismatches += m

		timeout := r.opts.TimeoutMillis
		if q.Transaction() {
			timeout = r.opts.TransactionTimeoutMillis
		}
		call := s[q.CallStart:q.ArgsStart] + args + ")"
		replacement := "await " + r.opts.Wrapper + "(" + call + ", " + strconv.Itoa(timeout) + ")"
		if !anchor.Balanced(replacement) {
			mismatches++
			continue
		}
		b.WriteString(s[last:q.Start])
		b.WriteString(replacement)
		last = q.End
		count++
	}
	b.WriteString(s[last:])
	return b.String(), count, mismatches
}

// 🧯 CatchTimeout prepends a timeout branch to catch clauses that do not
// already deal with the timeout error.
type CatchTimeout struct {
	opts BackendOptions
}

func (r *CatchTimeout) ID() string { return "catch-timeout" }

func (r *CatchTimeout) Requires() []string {
	return []string{r.opts.ErrorType, r.opts.ErrorMapper}
}

func (r *CatchTimeout) Provides() []string { return nil }

func (r *CatchTimeout) pending(content string) []anchor.CatchBlock {
	var out []anchor.CatchBlock
	for _, c := range anchor.CatchBlocks(content) {
		body := c.Body(content)
		if strings.Contains(body, r.opts.ErrorType) || strings.Contains(body, r.opts.ErrorMapper) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (r *CatchTimeout) AlreadyApplied(content string) bool {
	return len(anchor.CatchBlocks(content)) > 0 && len(r.pending(content)) == 0
}

func (r *CatchTimeout) Locate(content string) (anchor.Position, bool) {
	pending := r.pending(content)
	if len(pending) == 0 {
		return anchor.Position{}, false
	}
	return anchor.Position{Start: pending[0].Start, End: pending[0].BodyEnd + 1}, true
}

// Transform inserts from the last clause backwards so earlier offsets hold.
func (r *CatchTimeout) Transform(content string, at anchor.Position) Result {
	pending := r.pending(content)
	count := 0
	for i := len(pending) - 1; i >= 0; i-- {
		c := pending[i]
		if c.Start < at.Start {
			break
		}
		content = content[:c.BodyStart] + withBreaks(content, r.branch(c)) + content[c.BodyStart:]
		count++
	}
	if count == 0 {
		return Result{Content: content, Reason: ReasonAnchorNotFound}
	}
	return Result{Content: content, Changed: true, Reason: ReasonApplied, Count: count}
}

func (r *CatchTimeout) branch(c anchor.CatchBlock) string {
	ind := c.Indent + "  "
	return "\n" + ind + "if (" + c.Param + " instanceof " + r.opts.ErrorType + ") {\n" +
		ind + "  const { error: errorMsg, code, status } = " + r.opts.ErrorMapper + "(" + c.Param + ")\n" +
		ind + "  console.error('Timeout:', { error: errorMsg, code })\n" +
		ind + "  return NextResponse.json({ error: errorMsg, code }, { status })\n" +
		ind + "}"
}
