package commands

import (
	"context"

	"github.com/walteh/retrofit/cmd/retrofit/opts"
	"github.com/walteh/retrofit/pkg/log"
	"github.com/walteh/retrofit/pkg/operation"
	"github.com/walteh/retrofit/pkg/status"
	"github.com/walteh/retrofit/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// consoleReporter prints one line per file, plus the diff on dry runs
type consoleReporter struct {
	logger *log.Logger
}

func (r consoleReporter) FileProcessed(ctx context.Context, res operation.FileResult) {
	r.logger.LogFileOperation(ctx, log.FileOperation{
		Path:       res.Path,
		Outcome:    res.Outcome,
		Rules:      res.AppliedRules(),
		Rewrites:   res.Rewrites,
		BackupPath: res.BackupPath,
		Err:        res.Err,
	})
	r.logger.LogDiff(res.Path, res.Diff)
}

// runPipeline expands the file list and runs the configured rule set over it
func runPipeline(ctx context.Context, root *opts.RootOpts, dryRun bool) (*operation.Report, error) {
	cfg := root.Config

	paths, err := cfg.ExpandFiles(ctx)
	if err != nil {
		return nil, errors.Errorf("expanding files: %w", err)
	}

	set, err := cfg.RuleSet()
	if err != nil {
		return nil, errors.Errorf("building rule set: %w", err)
	}

	mgr := status.New(cfg.BaseDir, cfg.BackupSuffix)
	run, err := operation.NewRetrofit(operation.Options{
		Paths:       paths,
		Transformer: text.NewPipeline(set),
		Files:       mgr,
		Progress:    mgr,
		Reporter:    consoleReporter{logger: root.Logger},
		DryRun:      dryRun,
	})
	if err != nil {
		return nil, errors.Errorf("creating retrofit: %w", err)
	}

	return run.Run(ctx), nil
}
