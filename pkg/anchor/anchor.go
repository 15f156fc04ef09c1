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
)

// 📍 Position is a located landmark in file content
type Position struct {
	Start    int               // Offset of the first byte of the landmark
	End      int               // Offset just past the landmark
	Captures map[string]string // Context needed by the transform
}

// Capture returns a named capture or the empty string
func (p Position) Capture(name string) string {
	if p.Captures == nil {
		return ""
	}
	return p.Captures[name]
}

var (
	entryDirectiveRe = regexp.MustCompile(`(?m)^[ \t]*(?:'use client'|"use client");?[ \t]*\r?$`)
	stateDeclRe      = regexp.MustCompile(`(?m)^([ \t]*)const\s*\[\s*([\w$]+)\s*,\s*(set[\w$]+)\s*\]\s*=\s*(?:React\.)?useState\b`)
	renderReturnRe   = regexp.MustCompile(`\breturn\s*\(`)
)

// EntryDirective finds the first 'use client' directive line. End stops before
// the line break.
func EntryDirective(content string) (Position, bool) {
	loc := entryDirectiveRe.FindStringIndex(content)
	if loc == nil {
		return Position{}, false
	}
	end := loc[1]
	if end > 0 && content[end-1] == '\r' {
		end--
	}
	return Position{Start: loc[0], End: end}, true
}

// StateDeclaration finds the first `const [x, setX] = useState(...)` statement.
// The position spans the whole statement, including type arguments, the
// balanced argument list and an optional semicolon.
func StateDeclaration(content string) (Position, bool) {
	for _, m := range stateDeclRe.FindAllStringSubmatchIndex(content, -1) {
		i := skipSpace(content, m[1])
		if i < len(content) && content[i] == '<' {
			closeAngle := MatchClose(content, i)
			if closeAngle < 0 {
				continue
			}
			i = skipSpace(content, closeAngle+1)
		}
		if i >= len(content) || content[i] != '(' {
			continue
		}
		closeParen := MatchClose(content, i)
		if closeParen < 0 {
			continue
		}
		end := closeParen + 1
		if end < len(content) && content[end] == ';' {
			end++
		}
		return Position{
			Start: m[0],
			End:   end,
			Captures: map[string]string{
				"indent": content[m[2]:m[3]],
				"name":   content[m[4]:m[5]],
				"setter": content[m[6]:m[7]],
			},
		}, true
	}
	return Position{}, false
}

// HasStateDeclaration reports whether a `[name, setter]` state pair is declared.
func HasStateDeclaration(content, name, setter string) bool {
	re := regexp.MustCompile(`const\s*\[\s*` + regexp.QuoteMeta(name) + `\s*,\s*` + regexp.QuoteMeta(setter) + `\s*\]`)
	return re.MatchString(content)
}

// RenderEntry finds the start of the first returned JSX tree that can take
// children: `return (` followed by an element or fragment. End is the offset just
// past the root's opening tag. Roots that close themselves are passed over.
func RenderEntry(content string) (Position, bool) {
	for _, m := range renderReturnRe.FindAllStringIndex(content, -1) {
		tag := skipSpace(content, m[1])
		if tag >= len(content) || content[tag] != '<' {
			continue
		}
		end, ok := openingTagEnd(content, tag)
		if !ok {
			continue
		}
		return Position{
			Start: m[0],
			End:   end,
			Captures: map[string]string{
				"indent": LineIndent(content, tag),
				"root":   content[tag:end],
			},
		}, true
	}
	return Position{}, false
}

// openingTagEnd scans a JSX opening tag starting at tag and returns the offset
// just past its '>'. It reports false for self-closing tags.
func openingTagEnd(content string, tag int) (int, bool) {
	if tag+1 < len(content) && content[tag+1] == '>' {
		return tag + 2, true
	}
	for i := tag + 1; i < len(content); {
		if j := SkipLiteral(content, i); j != i {
			i = j
			continue
		}
		switch content[i] {
		case '{':
			end := MatchClose(content, i)
			if end < 0 {
				return 0, false
			}
			i = end + 1
			continue
		case '/':
			if i+1 < len(content) && content[i+1] == '>' {
				return 0, false
			}
		case '>':
			return i + 1, true
		case '<', '(', ')', ';':
			return 0, false
		}
		i++
	}
	return 0, false
}
