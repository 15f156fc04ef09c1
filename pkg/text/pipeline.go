package text

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/rule"
	"gitlab.com/tozd/go/errors"
)

// Pipeline implements ContentTransformer by running a rule set in order
type Pipeline struct {
	set *rule.Set
}

// NewPipeline creates a new Pipeline over a validated rule set
func NewPipeline(set *rule.Set) *Pipeline {
	return &Pipeline{set: set}
}

// RuleSet returns the set the pipeline runs
func (p *Pipeline) RuleSet() *rule.Set {
	return p.set
}

// Transform implements ContentTransformer.Transform
func (p *Pipeline) Transform(ctx context.Context, path string, content io.Reader) (*TransformResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}
	return p.TransformBytes(ctx, path, originalContent), nil
}

// TransformBytes runs every rule over content, each one seeing the previous
// rule's output. Rule outcomes are logged, never returned as errors.
func (p *Pipeline) TransformBytes(ctx context.Context, path string, originalContent []byte) *TransformResult {
	logger := zerolog.Ctx(ctx)

	result := &TransformResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for _, r := range p.set.Rules() {
		res := rule.Apply(r, currentContent)

		result.Changes = append(result.Changes, ChangeRecord{
			Path:       path,
			RuleID:     r.ID(),
			Applied:    res.Changed,
			Reason:     res.Reason,
			Count:      res.Count,
			Mismatches: res.Mismatches,
		})

		event := logger.Debug()
		if res.Reason == rule.ReasonStructuralMismatch || res.Mismatches > 0 {
			event = logger.Warn()
		}
		event.
			Str("file", path).
			Str("rule", r.ID()).
			Str("reason", res.Reason.String()).
			Int("count", res.Count).
			Int("mismatches", res.Mismatches).
			Msg("rule evaluated")

		if res.Changed {
			result.WasModified = true
			result.RewriteCount += res.Count
		}
		result.Mismatches += res.Mismatches
		currentContent = res.Content
	}

	if result.WasModified {
		result.ModifiedContent = []byte(currentContent)
	}
	return result
}
