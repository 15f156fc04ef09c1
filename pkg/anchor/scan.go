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

import "sort"

// 🔗 closers maps each opening delimiter to its closer
var closers = map[byte]byte{
	'(': ')',
	'{': '}',
	'[': ']',
	'<': '>',
}

// SkipLiteral returns the offset just past the string, template literal,
// comment or regular expression literal that starts at i. When nothing starts at
// i it returns i. A slash opens a regular expression only after one of
// ( , = : [ ! & | ? { ; and only when it closes on the same line; everything
// else is division or JSX.
func SkipLiteral(s string, i int) int {
	if i < 0 || i >= len(s) {
		return i
	}
	switch s[i] {
	case '\'', '"':
		return skipQuoted(s, i)
	case '`':
		return skipTemplate(s, i)
	case '/':
		if i+1 >= len(s) {
			return i
		}
		switch s[i+1] {
		case '/':
			for j := i + 2; j < len(s); j++ {
				if s[j] == '\n' {
					return j
				}
			}
			return len(s)
		case '*':
			for j := i + 2; j+1 < len(s); j++ {
				if s[j] == '*' && s[j+1] == '/' {
					return j + 2
				}
			}
			return len(s)
		}
		if regexCanStart(s, i) {
			return skipRegex(s, i)
		}
	}
	return i
}

func regexCanStart(s string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch s[j] {
		case ' ', '\t', '\r', '\n':
			continue
		case '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', ';':
			return true
		}
		return false
	}
	return false
}

// skipRegex returns the offset past the flags, or i when the literal does not
// close on its line.
func skipRegex(s string, i int) int {
	inClass := false
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return i
		case '/':
			if inClass {
				continue
			}
			j++
			for j < len(s) && (s[j] >= 'a' && s[j] <= 'z') {
				j++
			}
			return j
		}
	}
	return i
}

// skipQuoted stops at the closing quote or, for an unterminated literal, at the
// end of the line. Quote characters in JSX text are not strings.
func skipQuoted(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(s)
}

func skipTemplate(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '`':
			return j + 1
		case '$':
			if j+1 < len(s) && s[j+1] == '{' {
				end := MatchClose(s, j+1)
				if end < 0 {
					return len(s)
				}
				j = end
			}
		}
	}
	return len(s)
}

// MatchClose walks from the opening delimiter at open and returns the offset of
// its matching closer, or -1 when the delimiters never balance. Parentheses,
// braces and brackets are tracked together so that a stray closer of the wrong
// kind fails the match. Angle brackets only count other angle brackets.
func MatchClose(s string, open int) int {
	if open < 0 || open >= len(s) {
		return -1
	}
	if _, ok := closers[s[open]]; !ok {
		return -1
	}

	if s[open] == '<' {
		depth := 0
		for i := open; i < len(s); {
			if j := SkipLiteral(s, i); j != i {
				i = j
				continue
			}
			switch s[i] {
			case '<':
				depth++
			case '>':
				// arrow functions inside type arguments
				if i > 0 && s[i-1] == '=' {
					break
				}
				depth--
				if depth == 0 {
					return i
				}
			}
			i++
		}
		return -1
	}

	stack := make([]byte, 0, 8)
	for i := open; i < len(s); {
		if j := SkipLiteral(s, i); j != i {
			i = j
			continue
		}
		switch c := s[i]; c {
		case '(', '{', '[':
			stack = append(stack, closers[c])
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// Balanced reports whether every (, { and [ in text has a matching closer of the
// same kind, ignoring anything inside strings, templates and comments.
func Balanced(text string) bool {
	stack := make([]byte, 0, 8)
	for i := 0; i < len(text); {
		if j := SkipLiteral(text, i); j != i {
			i = j
			continue
		}
		switch c := text[i]; c {
		case '(', '{', '[':
			stack = append(stack, closers[c])
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return false
			}
			stack = stack[:len(stack)-1]
		}
		i++
	}
	return len(stack) == 0
}

// skipSpace returns the first offset at or after i that is not whitespace.
func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// LineIndent returns the leading whitespace of the line containing offset.
func LineIndent(s string, offset int) string {
	if offset > len(s) {
		offset = len(s)
	}
	start := offset
	for start > 0 && s[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(s) && (s[end] == ' ' || s[end] == '\t') {
		end++
	}
	return s[start:end]
}

// 🧱 Spans holds the literal and comment ranges of a text, in order
type Spans []Span

// Span is a half-open [Start, End) range
type Span struct {
	Start int
	End   int
}

// LiteralSpans scans content from the start and records every string,
// template, comment and regular expression literal. Comments and templates may
// cover many lines.
func LiteralSpans(content string) Spans {
	var out Spans
	for i := 0; i < len(content); {
		if j := SkipLiteral(content, i); j != i {
			out = append(out, Span{Start: i, End: j})
			i = j
			continue
		}
		i++
	}
	return out
}

// Contains reports whether offset falls inside one of the spans.
func (s Spans) Contains(offset int) bool {
	k := sort.Search(len(s), func(i int) bool { return s[i].End > offset })
	return k < len(s) && s[k].Start <= offset
}
