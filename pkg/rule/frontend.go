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

// 📥 ImportInjection ensures the call wrapper and error helper are imported.
// Names are merged into an existing import from the client module when there is
// one; otherwise a statement goes after the entry directive, and files without a
// directive get both prepended.
type ImportInjection struct {
	opts FrontendOptions
}

func (r *ImportInjection) ID() string { return "import-injection" }

func (r *ImportInjection) Requires() []string { return nil }

func (r *ImportInjection) Provides() []string { return r.names() }

func (r *ImportInjection) names() []string {
	return []string{r.opts.CallWrapper, r.opts.ErrorHelper}
}

func (r *ImportInjection) AlreadyApplied(content string) bool {
	return len(missingBindings(anchor.Imports(content), r.names())) == 0
}

func (r *ImportInjection) Locate(content string) (anchor.Position, bool) {
	return locateImport(anchor.Imports(content), r.opts.ClientImportPath, func() (anchor.Position, bool) {
		if d, ok := anchor.EntryDirective(content); ok {
			d.Captures = map[string]string{"mode": placeDirective}
			return d, true
		}
		return anchor.Position{Captures: map[string]string{"mode": placePrepend}}, true
	})
}

func (r *ImportInjection) Transform(content string, at anchor.Position) Result {
	return ensureImport(content, r.opts.ClientImportPath, r.names(), at)
}

// 🎨 IconImport ensures the timeout and error icons are imported. Without any
// import statement there is no safe place to put one and the rule does nothing.
type IconImport struct {
	opts FrontendOptions
}

func (r *IconImport) ID() string { return "icon-import" }

func (r *IconImport) Requires() []string { return nil }

func (r *IconImport) Provides() []string { return r.names() }

func (r *IconImport) names() []string {
	return []string{r.opts.TimeoutIcon, r.opts.ErrorIcon}
}

func (r *IconImport) AlreadyApplied(content string) bool {
	return len(missingBindings(anchor.Imports(content), r.names())) == 0
}

func (r *IconImport) Locate(content string) (anchor.Position, bool) {
	imps := anchor.Imports(content)
	return locateImport(imps, r.opts.IconPackage, func() (anchor.Position, bool) {
		if len(imps) == 0 {
			return anchor.Position{}, false
		}
		return anchor.Position{
			Start:    imps[0].Start,
			End:      imps[0].End,
			Captures: map[string]string{"mode": placeBefore},
		}, true
	})
}

func (r *IconImport) Transform(content string, at anchor.Position) Result {
	return ensureImport(content, r.opts.IconPackage, r.names(), at)
}

// 🧠 StateInjection declares the timeout flag and error message state right
// after the component's first state declaration.
type StateInjection struct {
	opts FrontendOptions
}

func (r *StateInjection) ID() string { return "state-injection" }

func (r *StateInjection) Requires() []string { return nil }

func (r *StateInjection) Provides() []string {
	return []string{TimedOutState, TimedOutSetter, ErrorState, ErrorSetter}
}

func (r *StateInjection) AlreadyApplied(content string) bool {
	return anchor.HasStateDeclaration(content, TimedOutState, TimedOutSetter)
}

func (r *StateInjection) Locate(content string) (anchor.Position, bool) {
	return anchor.StateDeclaration(content)
}

func (r *StateInjection) Transform(content string, at anchor.Position) Result {
	indent := at.Capture("indent")
	var b strings.Builder
	b.WriteString("\n" + indent + "const [" + TimedOutState + ", " + TimedOutSetter + "] = useState(false)")
	if !anchor.HasStateDeclaration(content, ErrorState, ErrorSetter) {
		b.WriteString("\n" + indent + "const [" + ErrorState + ", " + ErrorSetter + "] = useState<string | null>(null)")
	}
	pos, codeFollows := statementLineEnd(content, at.End)
	rest := content[pos:]
	if codeFollows {
		// the rest of the line moves below the new declarations
		b.WriteString("\n" + indent)
		rest = strings.TrimLeft(rest, " \t")
	}
	return applied(content[:pos] + withBreaks(content, b.String()) + rest)
}

// statementLineEnd moves an insertion point past a trailing line comment so the
// comment stays with its statement. When code follows on the same line the
// point stays at end and codeFollows is set.
func statementLineEnd(content string, end int) (pos int, codeFollows bool) {
	lineEnd := strings.IndexByte(content[end:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content)
	} else {
		lineEnd += end
	}
	if lineEnd > end && content[lineEnd-1] == '\r' {
		lineEnd--
	}
	rest := strings.TrimSpace(content[end:lineEnd])
	if rest == "" || strings.HasPrefix(rest, "//") {
		return lineEnd, false
	}
	return end, true
}
