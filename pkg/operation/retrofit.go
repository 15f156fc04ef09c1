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

package operation

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/status"
	"github.com/walteh/retrofit/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🛠️ Retrofit applies the rule pipeline to every configured path
type Retrofit struct {
	opts Options
}

// 🏭 NewRetrofit creates a new retrofit run
func NewRetrofit(opts Options) (*Retrofit, error) {
	if err := opts.validate(true); err != nil {
		return nil, err
	}
	return &Retrofit{opts: opts}, nil
}

// 🏃 Run processes paths one at a time, in order. A failing file never stops
// the batch; the report always covers every path.
func (r *Retrofit) Run(ctx context.Context) *Report {
	logger := zerolog.Ctx(ctx)
	report := &Report{}
	reporter := r.opts.reporter()

	if r.opts.Progress != nil {
		r.opts.Progress.StartOperation(ctx, len(r.opts.Paths))
		defer r.opts.Progress.FinishOperation(ctx)
	}

	for i, path := range r.opts.Paths {
		var res FileResult
		if err := ctx.Err(); err != nil {
			res = FileResult{Path: path, Outcome: status.OutcomeError, Err: errors.Errorf("skipped: %w", err)}
		} else {
			res = r.processFile(ctx, path)
		}

		report.add(res)
		reporter.FileProcessed(ctx, res)
		if r.opts.Progress != nil {
			r.opts.Progress.UpdateProgress(ctx, i+1)
		}
	}

	logger.Info().
		Int("modified", report.Summary.Modified).
		Int("unchanged", report.Summary.Unchanged).
		Int("not_found", report.Summary.NotFound).
		Int("errors", report.Summary.Errors).
		Int("total", report.Summary.Total).
		Bool("dry_run", r.opts.DryRun).
		Msg("retrofit complete")

	return report
}

// 📄 processFile runs one file: load, transform, then backup and write
func (r *Retrofit) processFile(ctx context.Context, path string) (res FileResult) {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()
	res.Path = path

	defer func() {
		if p := recover(); p != nil {
			res.Outcome = status.OutcomeError
			res.Err = errors.Errorf("panic while processing: %v", p)
			logger.Error().Err(res.Err).Msg("file failed")
		}
	}()

	exists, err := r.opts.Files.FileExists(ctx, path)
	if err != nil {
		return r.fail(logger, res, err)
	}
	if !exists {
		res.Outcome = status.OutcomeNotFound
		res.Err = errors.Errorf("%w: %s", status.ErrNotFound, path)
		logger.Info().Msg("file not found")
		return res
	}

	original, err := r.opts.Files.ReadFile(ctx, path)
	if errors.Is(err, status.ErrNotFound) {
		res.Outcome = status.OutcomeNotFound
		res.Err = err
		return res
	}
	if err != nil {
		return r.fail(logger, res, err)
	}

	result, err := r.opts.Transformer.Transform(ctx, path, bytes.NewReader(original))
	if err != nil {
		return r.fail(logger, res, errors.Errorf("transforming: %w", err))
	}
	res.Changes = result.Changes
	res.Rewrites = result.RewriteCount
	res.Mismatches = result.Mismatches

	if !result.WasModified {
		res.Outcome = status.OutcomeUnchanged
		logger.Debug().Msg("no changes needed")
		return res
	}

	if r.opts.DryRun {
		res.Outcome = status.OutcomeModified
		res.Diff = text.Diff(string(original), string(result.ModifiedContent))
		logger.Info().Strs("rules", result.AppliedRules()).Msg("would modify")
		return res
	}

	backupPath, err := r.opts.Files.Commit(ctx, path, original, result.ModifiedContent)
	res.BackupPath = backupPath
	if err != nil {
		return r.fail(logger, res, err)
	}

	res.Outcome = status.OutcomeModified
	logger.Info().
		Strs("rules", result.AppliedRules()).
		Int("rewrites", result.RewriteCount).
		Str("backup", backupPath).
		Msg("file modified")
	return res
}

func (r *Retrofit) fail(logger zerolog.Logger, res FileResult, err error) FileResult {
	res.Outcome = status.OutcomeError
	res.Err = err
	logger.Error().Err(err).Msg("file failed")
	return res
}

// Describe summarizes what a result did in a few words
func Describe(res FileResult) string {
	switch res.Outcome {
	case status.OutcomeModified:
		if res.BackupPath != "" {
			return fmt.Sprintf("%v, backup %s", res.AppliedRules(), res.BackupPath)
		}
		return fmt.Sprintf("%v", res.AppliedRules())
	case status.OutcomeError, status.OutcomeNotFound:
		if res.Err != nil {
			return res.Err.Error()
		}
	}
	return ""
}
