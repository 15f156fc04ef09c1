package rule

import (
	"regexp"
	"strings"

	"github.com/walteh/retrofit/pkg/anchor"
)

var conditionalGuardRe = regexp.MustCompile(`\{\s*(?:` + TimedOutState + `|` + ErrorState + `)\s*&&`)

// 🖼️ ConditionalUI renders the timeout notice and error message as the first
// children of the component's returned tree.
type ConditionalUI struct {
	opts FrontendOptions
}

func (r *ConditionalUI) ID() string { return "conditional-ui" }

func (r *ConditionalUI) Requires() []string {
	return []string{TimedOutState, ErrorState, r.opts.TimeoutIcon, r.opts.ErrorIcon}
}

func (r *ConditionalUI) Provides() []string { return nil }

// AlreadyApplied holds when either guard expression is rendered anywhere.
func (r *ConditionalUI) AlreadyApplied(content string) bool {
	return conditionalGuardRe.MatchString(content)
}

func (r *ConditionalUI) Locate(content string) (anchor.Position, bool) {
	return anchor.RenderEntry(content)
}

func (r *ConditionalUI) Transform(content string, at anchor.Position) Result {
	block := r.block(at.Capture("indent") + "  ")
	if !anchor.Balanced(block) {
		return Result{Content: content, Reason: ReasonStructuralMismatch, Mismatches: 1}
	}
	return applied(content[:at.End] + withBreaks(content, block) + content[at.End:])
}

func (r *ConditionalUI) block(ind string) string {
	lines := []string{
		"{" + TimedOutState + " && (",
		`  <div className="bg-yellow-50 border border-yellow-200 p-4 rounded-lg mb-4">`,
		`    <div className="flex items-center gap-2">`,
		`      <` + r.opts.TimeoutIcon + ` className="h-5 w-5 text-yellow-600" />`,
		`      <p className="text-yellow-800">`,
		`        This is taking longer than expected. Please try again.`,
		`      </p>`,
		`    </div>`,
		`  </div>`,
		`)}`,
		"{" + ErrorState + " && (",
		`  <div className="bg-red-50 border border-red-200 p-4 rounded-lg mb-4">`,
		`    <div className="flex items-center gap-2">`,
		`      <` + r.opts.ErrorIcon + ` className="h-5 w-5 text-red-600" />`,
		`      <p className="text-red-800">{` + ErrorState + `}</p>`,
		`    </div>`,
		`  </div>`,
		`)}`,
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString("\n" + ind + l)
	}
	return b.String()
}
