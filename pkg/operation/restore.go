package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ⏪ Restore puts every path's backup back in place. A restored path counts as
// modified, a path without a backup as not found.
func Restore(ctx context.Context, opts Options) (*Report, error) {
	if err := opts.validate(false); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	report := &Report{}
	reporter := opts.reporter()

	for _, path := range opts.Paths {
		res := FileResult{Path: path}

		switch has, err := opts.Files.HasBackup(ctx, path); {
		case ctx.Err() != nil:
			res.Outcome = status.OutcomeError
			res.Err = errors.Errorf("skipped: %w", ctx.Err())
		case err != nil:
			res.Outcome = status.OutcomeError
			res.Err = err
		case !has:
			res.Outcome = status.OutcomeNotFound
			res.Err = errors.Errorf("%s: %w", path, status.ErrNoBackup)
		case opts.DryRun:
			res.Outcome = status.OutcomeModified
		default:
			if err := opts.Files.RestoreFile(ctx, path); err != nil {
				res.Outcome = status.OutcomeError
				res.Err = err
				break
			}
			res.Outcome = status.OutcomeModified
		}

		logger.Debug().Str("file", path).Str("outcome", res.Outcome.String()).Msg("restore evaluated")
		report.add(res)
		reporter.FileProcessed(ctx, res)
	}

	return report, nil
}
