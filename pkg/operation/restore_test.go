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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a/page.tsx": productsPage, "b/page.tsx": productsPage})
	mgr := status.New(dir, "")
	ctx := testContext(t)

	run, err := NewRetrofit(Options{Paths: []string{"a/page.tsx"}, Transformer: frontendPipeline(t), Files: mgr})
	require.NoError(t, err)
	require.Equal(t, 1, run.Run(ctx).Summary.Modified)
	require.NotEqual(t, productsPage, readFile(t, filepath.Join(dir, "a/page.tsx")))

	t.Run("dry_run_leaves_files", func(t *testing.T) {
		report, err := Restore(ctx, Options{Paths: []string{"a/page.tsx"}, Files: mgr, DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, status.OutcomeModified, report.Files[0].Outcome)
		assert.FileExists(t, filepath.Join(dir, "a/page.tsx.backup"))
	})

	t.Run("restores_and_removes_backup", func(t *testing.T) {
		var seen []string
		report, err := Restore(ctx, Options{
			Paths: []string{"a/page.tsx", "b/page.tsx"},
			Files: mgr,
			Reporter: ReporterFunc(func(_ context.Context, res FileResult) {
				seen = append(seen, res.Path)
			}),
		})
		require.NoError(t, err)

		assert.Equal(t, []status.Outcome{status.OutcomeModified, status.OutcomeNotFound}, outcomes(report))
		assert.True(t, errors.Is(report.Files[1].Err, status.ErrNoBackup))
		assert.Equal(t, status.Summary{Modified: 1, NotFound: 1, Total: 2}, report.Summary)
		assert.Equal(t, []string{"a/page.tsx", "b/page.tsx"}, seen)

		assert.Equal(t, productsPage, readFile(t, filepath.Join(dir, "a/page.tsx")))
		_, err = os.Stat(filepath.Join(dir, "a/page.tsx.backup"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("requires_file_manager", func(t *testing.T) {
		_, err := Restore(ctx, Options{Paths: []string{"a/page.tsx"}})
		require.Error(t, err)
	})
}
