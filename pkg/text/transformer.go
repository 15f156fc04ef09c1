package text

import (
	"context"
	"io"

	"github.com/walteh/retrofit/pkg/rule"
)

// ChangeRecord describes what one rule did to one file
type ChangeRecord struct {
	// Path is the file the rule ran against
	Path string

	// RuleID identifies the rule
	RuleID string

	// Applied is true when the rule changed the content
	Applied bool

	// Reason says why the rule did or did not apply
	Reason rule.Reason

	// Count is the number of sites the rule rewrote
	Count int

	// Mismatches is the number of sites skipped by the balance guard
	Mismatches int
}

// TransformResult contains the results of running a rule set over content
type TransformResult struct {
	// WasModified indicates if any rule changed the content
	WasModified bool

	// RewriteCount is the total number of sites rewritten by all rules
	RewriteCount int

	// Mismatches is the total number of sites skipped by the balance guard
	Mismatches int

	// OriginalContent is the content before any rule ran
	OriginalContent []byte

	// ModifiedContent is the content after the last rule
	ModifiedContent []byte

	// Changes holds one record per rule, in pipeline order
	Changes []ChangeRecord
}

// AppliedRules returns the IDs of the rules that changed the content
func (r *TransformResult) AppliedRules() []string {
	var ids []string
	for _, c := range r.Changes {
		if c.Applied {
			ids = append(ids, c.RuleID)
		}
	}
	return ids
}

// ContentTransformer defines the interface for rule pipeline runs
type ContentTransformer interface {
	// Transform reads all of content and threads it through the rule set
	Transform(ctx context.Context, path string, content io.Reader) (*TransformResult, error)
}
