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

var importStartRe = regexp.MustCompile(`(?m)^[ \t]*import\b`)

// 📦 Binding is one name pulled in by a named import list
type Binding struct {
	Imported string
	Local    string
}

// 📦 Import is a parsed top-level import statement
type Import struct {
	Start     int    // Offset of the import keyword
	End       int    // Offset just past the statement, including any semicolon
	Module    string // Module specifier without quotes
	Quote     byte   // Quote character used for the specifier
	Default   string // Default binding, if any
	Namespace string // Namespace binding from `* as x`, if any
	Named     []Binding
	ListStart int // Offset of '{' of the named list, -1 when absent
	ListEnd   int // Offset of the matching '}', -1 when absent
	TypeOnly  bool
}

// HasList reports whether the import carries a named list that can be extended.
func (imp Import) HasList() bool {
	return imp.ListStart >= 0 && !imp.TypeOnly
}

// Binds reports whether the statement introduces a local binding called name.
func (imp Import) Binds(name string) bool {
	if imp.TypeOnly {
		return false
	}
	if imp.Default == name || imp.Namespace == name {
		return true
	}
	for _, b := range imp.Named {
		if b.Local == name {
			return true
		}
	}
	return false
}

// Imports parses every import statement that starts a line. Dynamic `import()`
// calls and anything that does not parse as a static import are ignored.
func Imports(content string) []Import {
	var out []Import
	for _, loc := range importStartRe.FindAllStringIndex(content, -1) {
		kw := loc[1] - len("import")
		imp, ok := parseImport(content, kw)
		if !ok {
			continue
		}
		out = append(out, imp)
	}
	return out
}

// FirstImport returns the first import statement.
func FirstImport(content string) (Import, bool) {
	imps := Imports(content)
	if len(imps) == 0 {
		return Import{}, false
	}
	return imps[0], true
}

// LastImport returns the last import statement.
func LastImport(content string) (Import, bool) {
	imps := Imports(content)
	if len(imps) == 0 {
		return Import{}, false
	}
	return imps[len(imps)-1], true
}

// FindImport returns the first value import from module.
func FindImport(imps []Import, module string) (Import, bool) {
	for _, imp := range imps {
		if imp.Module == module && !imp.TypeOnly {
			return imp, true
		}
	}
	return Import{}, false
}

// Bound reports whether any import binds name.
func Bound(imps []Import, name string) bool {
	for _, imp := range imps {
		if imp.Binds(name) {
			return true
		}
	}
	return false
}

func parseImport(s string, kw int) (Import, bool) {
	imp := Import{Start: kw, ListStart: -1, ListEnd: -1}
	i := kw + len("import")
	if i < len(s) && isIdentByte(s[i]) {
		return imp, false
	}
	i = skipSpace(s, i)
	if i >= len(s) {
		return imp, false
	}

	// side-effect import
	if s[i] == '\'' || s[i] == '"' {
		return finishImport(s, i, imp)
	}

	if word, next := readIdent(s, i); word == "type" && next < len(s) && (s[next] == ' ' || s[next] == '\t') {
		after := skipSpace(s, next)
		if after < len(s) && (s[after] == '{' || s[after] == '*' || isIdentStart(s[after])) {
			if w, _ := readIdent(s, after); w != "from" {
				imp.TypeOnly = true
				i = after
			}
		}
	}

	if isIdentStart(s[i]) {
		word, next := readIdent(s, i)
		imp.Default = word
		i = skipSpace(s, next)
		if i < len(s) && s[i] == ',' {
			i = skipSpace(s, i+1)
		}
	}

	switch {
	case i < len(s) && s[i] == '{':
		end := MatchClose(s, i)
		if end < 0 {
			return imp, false
		}
		imp.ListStart, imp.ListEnd = i, end
		imp.Named = parseNamed(s[i+1 : end])
		i = skipSpace(s, end+1)
	case i < len(s) && s[i] == '*':
		i = skipSpace(s, i+1)
		word, next := readIdent(s, i)
		if word != "as" {
			return imp, false
		}
		i = skipSpace(s, next)
		imp.Namespace, next = readIdent(s, i)
		if imp.Namespace == "" {
			return imp, false
		}
		i = skipSpace(s, next)
	}

	if imp.Default == "" && imp.Namespace == "" && imp.ListStart < 0 {
		return imp, false
	}

	word, next := readIdent(s, i)
	if word != "from" {
		return imp, false
	}
	return finishImport(s, skipSpace(s, next), imp)
}

func finishImport(s string, i int, imp Import) (Import, bool) {
	if i >= len(s) || (s[i] != '\'' && s[i] != '"') {
		return imp, false
	}
	end := skipQuoted(s, i)
	if end <= i+1 || s[end-1] != s[i] {
		return imp, false
	}
	imp.Quote = s[i]
	imp.Module = s[i+1 : end-1]
	if end < len(s) && s[end] == ';' {
		end++
	}
	imp.End = end
	return imp, true
}

func parseNamed(list string) []Binding {
	var out []Binding
	for _, part := range strings.Split(list, ",") {
		fields := strings.Fields(part)
		if len(fields) > 0 && fields[0] == "type" {
			continue
		}
		switch len(fields) {
		case 1:
			out = append(out, Binding{Imported: fields[0], Local: fields[0]})
		case 3:
			if fields[1] == "as" {
				out = append(out, Binding{Imported: fields[0], Local: fields[2]})
			}
		}
	}
	return out
}

func readIdent(s string, i int) (string, int) {
	start := i
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[start:i], i
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
