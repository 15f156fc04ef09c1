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

package anchor

import (
	"regexp"
	"strings"
)

var (
	fetchSiteRe = regexp.MustCompile(`\b(const|let|var)\s+([\w$]+)\s*=\s*await\s+fetch\s*\(`)
	queryCallRe = regexp.MustCompile(`\bawait\s+(prisma\s*\.\s*(\$?[\w]+)(?:\s*\.\s*([\w$]+))?\s*\()`)
	catchRe     = regexp.MustCompile(`\bcatch\s*\(\s*([\w$]+)[^)]*\)\s*\{`)
)

// 🌐 FetchCall is an awaited fetch bound to a single name
type FetchCall struct {
	Start    int    // Offset of the binding keyword
	End      int    // Offset just past the call and any semicolon
	Keyword  string // const, let or var
	Name     string // Bound name
	URL      string // URL literal, quotes included
	Options  string // Options object literal, empty when absent
	Indent   string // Indentation of the line holding the site
	Text     string // Full matched text
	Complete bool   // False when the argument list never balances
}

// FetchCalls finds every `<kw> <name> = await fetch(<literal>[, {...}])` site.
// The argument list is walked with MatchClose so options objects may nest.
// Sites whose first argument is not a literal, or whose second argument is not
// an object literal, are not returned. Sites whose parentheses never close are
// returned with Complete unset.
func FetchCalls(content string) []FetchCall {
	var out []FetchCall
	literals := LiteralSpans(content)
	for _, m := range fetchSiteRe.FindAllStringSubmatchIndex(content, -1) {
		if literals.Contains(m[0]) {
			continue
		}
		call := FetchCall{
			Start:   m[0],
			Keyword: content[m[2]:m[3]],
			Name:    content[m[4]:m[5]],
			Indent:  LineIndent(content, m[0]),
		}
		open := m[1] - 1
		closeParen := MatchClose(content, open)
		if closeParen < 0 {
			call.End = len(content)
			call.Text = content[m[0]:]
			out = append(out, call)
			continue
		}
		url, options, ok := splitFetchArgs(content[open+1 : closeParen])
		if !ok {
			continue
		}
		call.URL, call.Options = url, options
		call.End = closeParen + 1
		if call.End < len(content) && content[call.End] == ';' {
			call.End++
		}
		call.Text = content[call.Start:call.End]
		call.Complete = true
		out = append(out, call)
	}
	return out
}

// splitFetchArgs accepts `<literal>` or `<literal>, {...}` with optional
// trailing commas.
func splitFetchArgs(args string) (url, options string, ok bool) {
	i := skipSpace(args, 0)
	if i >= len(args) {
		return "", "", false
	}
	switch args[i] {
	case '\'', '"', '`':
	default:
		return "", "", false
	}
	end := SkipLiteral(args, i)
	if end <= i+1 || args[end-1] != args[i] {
		return "", "", false
	}
	url = args[i:end]

	rest := strings.TrimSpace(args[end:])
	if rest == "" {
		return url, "", true
	}
	if rest[0] != ',' {
		return "", "", false
	}
	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		return url, "", true
	}
	if rest[0] != '{' {
		return "", "", false
	}
	closeBrace := MatchClose(rest, 0)
	if closeBrace < 0 {
		return "", "", false
	}
	options = rest[:closeBrace+1]
	tail := strings.TrimSpace(rest[closeBrace+1:])
	if tail != "" && tail != "," {
		return "", "", false
	}
	return url, options, true
}

// 🗄️ QueryCall is an awaited database client call
type QueryCall struct {
	Start     int    // Offset of the await keyword
	CallStart int    // Offset of the client identifier
	ArgsStart int    // Offset just past the opening parenthesis
	ArgsEnd   int    // Offset of the closing parenthesis
	End       int    // Offset just past the closing parenthesis
	Model     string // Model, or the client method for `$transaction`
	Operation string // Model operation, empty for client methods
	Indent    string
}

// Transaction reports whether the call is a client-level transaction.
func (q QueryCall) Transaction() bool {
	return q.Model == "$transaction"
}

// QueryCalls finds `await prisma.<model>.<op>(...)` and `await prisma.$method(...)`
// calls. Calls nested in the arguments of another match are not reported
// separately; callers recurse into the argument text.
func QueryCalls(content string) []QueryCall {
	var out []QueryCall
	last := -1
	literals := LiteralSpans(content)
	for _, m := range queryCallRe.FindAllStringSubmatchIndex(content, -1) {
		if m[0] < last || literals.Contains(m[0]) {
			continue
		}
		q := QueryCall{
			Start:     m[0],
			CallStart: m[2],
			Model:     content[m[4]:m[5]],
			Indent:    LineIndent(content, m[0]),
		}
		if m[6] >= 0 {
			q.Operation = content[m[6]:m[7]]
		}
		if q.Operation == "" && !strings.HasPrefix(q.Model, "$") {
			continue
		}
		open := m[3] - 1
		closeParen := MatchClose(content, open)
		if closeParen < 0 {
			continue
		}
		q.ArgsStart, q.ArgsEnd, q.End = open+1, closeParen, closeParen+1
		last = q.End
		out = append(out, q)
	}
	return out
}

// 🧯 CatchBlock is a `catch (err) { ... }` clause
type CatchBlock struct {
	Start     int    // Offset of the catch keyword
	BodyStart int    // Offset just past the opening brace
	BodyEnd   int    // Offset of the closing brace
	Param     string // Bound error name
	Indent    string
}

// Body returns the text between the braces.
func (c CatchBlock) Body(content string) string {
	return content[c.BodyStart:c.BodyEnd]
}

// CatchBlocks finds every catch clause with a bound parameter.
func CatchBlocks(content string) []CatchBlock {
	var out []CatchBlock
	literals := LiteralSpans(content)
	for _, m := range catchRe.FindAllStringSubmatchIndex(content, -1) {
		if literals.Contains(m[0]) {
			continue
		}
		open := m[1] - 1
		closeBrace := MatchClose(content, open)
		if closeBrace < 0 {
			continue
		}
		out = append(out, CatchBlock{
			Start:     m[0],
			BodyStart: open + 1,
			BodyEnd:   closeBrace,
			Param:     content[m[2]:m[3]],
			Indent:    LineIndent(content, m[0]),
		})
	}
	return out
}
