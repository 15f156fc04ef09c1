// Package operation runs the retrofit pipeline over a batch of files
package operation

import (
	"context"

	"github.com/walteh/retrofit/pkg/status"
	"github.com/walteh/retrofit/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📄 FileResult is the outcome of processing one path
type FileResult struct {
	Path       string
	Outcome    status.Outcome
	Err        error
	Changes    []text.ChangeRecord // One per rule, empty unless the file was transformed
	Rewrites   int                 // Sites rewritten across all rules
	Mismatches int                 // Sites skipped by the balance guard
	BackupPath string              // Set when a backup was written
	Diff       string              // Set on dry runs that would change the file
}

// AppliedRules returns the IDs of the rules that changed the file
func (r FileResult) AppliedRules() []string {
	var ids []string
	for _, c := range r.Changes {
		if c.Applied {
			ids = append(ids, c.RuleID)
		}
	}
	return ids
}

// 📋 Report collects per-file results and their summary
type Report struct {
	Files   []FileResult
	Summary status.Summary
}

func (r *Report) add(res FileResult) {
	r.Files = append(r.Files, res)
	r.Summary.Add(res.Outcome)
}

// 📢 Reporter receives each file's result as soon as it is known
type Reporter interface {
	FileProcessed(ctx context.Context, res FileResult)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(ctx context.Context, res FileResult)

func (f ReporterFunc) FileProcessed(ctx context.Context, res FileResult) { f(ctx, res) }

type nopReporter struct{}

func (nopReporter) FileProcessed(context.Context, FileResult) {}

// 🔧 Options contains configuration for a retrofit run
type Options struct {
	// Paths is the ordered list of target files, relative to the manager's base
	Paths []string
	// Transformer runs the rule pipeline
	Transformer text.ContentTransformer
	// Files reads, backs up and writes targets
	Files status.FileManager
	// Progress is optional
	Progress status.ProgressReporter
	// Reporter is optional
	Reporter Reporter
	// DryRun transforms and diffs without writing
	DryRun bool
}

func (o Options) validate(needTransformer bool) error {
	if needTransformer && o.Transformer == nil {
		return errors.Errorf("transformer is required")
	}
	if o.Files == nil {
		return errors.Errorf("file manager is required")
	}
	return nil
}

func (o Options) reporter() Reporter {
	if o.Reporter == nil {
		return nopReporter{}
	}
	return o.Reporter
}
