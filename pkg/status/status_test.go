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

package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStatusManager(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, dir string)
		check       func(t *testing.T, ctx context.Context, mgr *Manager, dir string)
		wantErr     bool
		errContains string
	}{
		{
			name: "read_existing_file",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "app/orders/page.tsx", "export default function Page() {}\n")
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				content, err := mgr.ReadFile(ctx, "app/orders/page.tsx")
				require.NoError(t, err)
				assert.Equal(t, "export default function Page() {}\n", string(content))

				exists, err := mgr.FileExists(ctx, "app/orders/page.tsx")
				require.NoError(t, err)
				assert.True(t, exists)
			},
		},
		{
			name: "read_missing_file",
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				_, err := mgr.ReadFile(ctx, "app/missing/page.tsx")
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNotFound), "should wrap ErrNotFound")

				exists, err := mgr.FileExists(ctx, "app/missing/page.tsx")
				require.NoError(t, err)
				assert.False(t, exists)
			},
		},
		{
			name: "directory_is_not_a_file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "app", "orders"), 0o755))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				exists, err := mgr.FileExists(ctx, "app/orders")
				require.NoError(t, err)
				assert.False(t, exists)
			},
		},
		{
			name: "commit_writes_backup_then_target",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "page.tsx", "original\r\ncontent")
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				backup, err := mgr.Commit(ctx, "page.tsx", []byte("original\r\ncontent"), []byte("modified"))
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(dir, "page.tsx.backup"), backup)

				backupContent, err := os.ReadFile(backup)
				require.NoError(t, err)
				assert.Equal(t, "original\r\ncontent", string(backupContent), "backup should be byte exact")

				target, err := os.ReadFile(filepath.Join(dir, "page.tsx"))
				require.NoError(t, err)
				assert.Equal(t, "modified", string(target))

				has, err := mgr.HasBackup(ctx, "page.tsx")
				require.NoError(t, err)
				assert.True(t, has)
			},
		},
		{
			name: "failed_backup_leaves_target",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "page.tsx", "original")
				// a directory in the backup's place makes the rename fail
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "page.tsx.backup", "x"), 0o755))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				_, err := mgr.Commit(ctx, "page.tsx", []byte("original"), []byte("modified"))
				require.Error(t, err)
				assert.Contains(t, err.Error(), "creating backup")

				target, err := os.ReadFile(filepath.Join(dir, "page.tsx"))
				require.NoError(t, err)
				assert.Equal(t, "original", string(target), "target should be untouched")
			},
		},
		{
			name: "atomic_write_keeps_mode",
			setup: func(t *testing.T, dir string) {
				path := writeFile(t, dir, "script.tsx", "a")
				require.NoError(t, os.Chmod(path, 0o600))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				require.NoError(t, mgr.WriteFileAtomic(ctx, "script.tsx", []byte("b")))
				info, err := os.Stat(filepath.Join(dir, "script.tsx"))
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

				entries, err := os.ReadDir(dir)
				require.NoError(t, err)
				assert.Len(t, entries, 1, "no temp files should be left behind")
			},
		},
		{
			name: "restore_from_backup",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "page.tsx", "modified")
				writeFile(t, dir, "page.tsx.backup", "original")
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				require.NoError(t, mgr.RestoreFile(ctx, "page.tsx"))

				target, err := os.ReadFile(filepath.Join(dir, "page.tsx"))
				require.NoError(t, err)
				assert.Equal(t, "original", string(target))

				has, err := mgr.HasBackup(ctx, "page.tsx")
				require.NoError(t, err)
				assert.False(t, has, "backup should be removed after restore")
			},
		},
		{
			name: "restore_without_backup",
			setup: func(t *testing.T, dir string) {
				writeFile(t, dir, "page.tsx", "modified")
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				err := mgr.RestoreFile(ctx, "page.tsx")
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoBackup))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			mgr := New(dir, "")
			tt.check(t, testContext(t), mgr, dir)
		})
	}
}

func TestCustomBackupSuffix(t *testing.T) {
	dir := t.TempDir()
	mgr := New(dir, ".orig")

	assert.Equal(t, filepath.Join(dir, "a", "b.tsx.orig"), mgr.BackupPath("a/b.tsx"))
	assert.Equal(t, filepath.Join(dir, "x.tsx"), mgr.AbsPath("x.tsx"))
	assert.Equal(t, "/abs/x.tsx", mgr.AbsPath("/abs/x.tsx"))
}

func TestProgressReporting(t *testing.T) {
	ctx := testContext(t)
	mgr := New(t.TempDir(), "")

	mgr.StartOperation(ctx, 3)
	mgr.UpdateProgress(ctx, 2)
	mgr.FinishOperation(ctx)

	assert.Equal(t, 3, mgr.total)
	assert.Equal(t, 2, mgr.processed)
}
