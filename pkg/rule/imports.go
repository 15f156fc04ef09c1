package rule

import (
	"strings"

	"github.com/walteh/retrofit/pkg/anchor"
)

// Placement modes carried in Position captures by the import rules.
const (
	placeMerge     = "merge"     // extend an existing named list
	placeDirective = "directive" // new statement after the entry directive
	placePrepend   = "prepend"   // directive and statement at file start
	placeBefore    = "before"    // new statement before the anchor import
	placeAfter     = "after"     // new statement after the anchor import
)

const entryDirective = "'use client'"

// missingBindings returns the names no import statement binds, in order.
func missingBindings(imps []anchor.Import, names []string) []string {
	var out []string
	for _, n := range names {
		if !anchor.Bound(imps, n) {
			out = append(out, n)
		}
	}
	return out
}

// quoteOf follows the quote style of the file's first import.
func quoteOf(imps []anchor.Import) string {
	if len(imps) > 0 && imps[0].Quote != 0 {
		return string(imps[0].Quote)
	}
	return "'"
}

func importStatement(names []string, module, quote string) string {
	return "import { " + strings.Join(names, ", ") + " } from " + quote + module + quote
}

func importAt(imps []anchor.Import, start int) (anchor.Import, bool) {
	for _, imp := range imps {
		if imp.Start == start {
			return imp, true
		}
	}
	return anchor.Import{}, false
}

// mergeNames appends names to the named list of imp, after its last entry.
func mergeNames(content string, imp anchor.Import, names []string) string {
	addition := strings.Join(names, ", ")
	inner := content[imp.ListStart+1 : imp.ListEnd]
	if strings.TrimSpace(inner) == "" {
		return content[:imp.ListStart+1] + " " + addition + " " + content[imp.ListEnd:]
	}
	cut := imp.ListStart + 1 + len(strings.TrimRight(inner, " \t\r\n,"))
	return content[:cut] + ", " + addition + content[cut:]
}

// locateImport picks where names from module should go: an existing named list
// when there is one, otherwise the fallback anchor.
func locateImport(imps []anchor.Import, module string, fallback func() (anchor.Position, bool)) (anchor.Position, bool) {
	if imp, ok := anchor.FindImport(imps, module); ok && imp.HasList() {
		return anchor.Position{Start: imp.Start, End: imp.End, Captures: map[string]string{"mode": placeMerge}}, true
	}
	return fallback()
}

// ensureImport makes every name in names bound by an import from module.
func ensureImport(content, module string, names []string, at anchor.Position) Result {
	imps := anchor.Imports(content)
	missing := missingBindings(imps, names)
	if len(missing) == 0 {
		return Result{Content: content, Reason: ReasonAlreadyApplied}
	}
	stmt := importStatement(missing, module, quoteOf(imps))

	switch at.Capture("mode") {
	case placeMerge:
		imp, ok := importAt(imps, at.Start)
		if !ok || !imp.HasList() {
			return Result{Content: content, Reason: ReasonAnchorNotFound}
		}
		return applied(mergeNames(content, imp, missing))
	case placeDirective:
		return applied(content[:at.End] + withBreaks(content, "\n\n"+stmt) + content[at.End:])
	case placePrepend:
		return applied(withBreaks(content, entryDirective+"\n\n"+stmt+"\n\n") + content)
	case placeBefore:
		return applied(content[:at.Start] + withBreaks(content, stmt+"\n") + content[at.Start:])
	case placeAfter:
		return applied(content[:at.End] + withBreaks(content, "\n"+stmt) + content[at.End:])
	default:
		return Result{Content: content, Reason: ReasonAnchorNotFound}
	}
}
