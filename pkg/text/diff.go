package text

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders a line diff between before and after. Changed lines carry a
// "-" or "+" prefix, runs of unchanged lines collapse to a single marker, and
// identical inputs produce an empty string.
func Diff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for i, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			if i > 0 && i < len(diffs)-1 {
				out.WriteString("  ...\n")
			}
		case diffmatchpatch.DiffDelete:
			writePrefixed(&out, "- ", d.Text)
		case diffmatchpatch.DiffInsert:
			writePrefixed(&out, "+ ", d.Text)
		}
	}
	return out.String()
}

func writePrefixed(out *strings.Builder, prefix, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		out.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
	}
}
