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
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultBackupSuffix is appended to a file's path to name its backup
const DefaultBackupSuffix = ".backup"

var (
	// ErrNotFound is returned when a target file does not exist
	ErrNotFound = errors.Base("file not found")
	// ErrNoBackup is returned when restoring a file that has no backup
	ErrNoBackup = errors.Base("backup file does not exist")
)

// 💾 FileManager handles all file system operations
type FileManager interface {
	// Core operations
	ReadFile(ctx context.Context, path string) ([]byte, error)
	FileExists(ctx context.Context, path string) (bool, error)

	// Atomic operations
	WriteFileAtomic(ctx context.Context, path string, content []byte) error

	// Backup operations
	BackupFile(ctx context.Context, path string, original []byte) (string, error)
	RestoreFile(ctx context.Context, path string) error
	HasBackup(ctx context.Context, path string) (bool, error)

	// Commit writes the backup, then the new content
	Commit(ctx context.Context, path string, original, modified []byte) (string, error)
}

// 📈 ProgressReporter reports batch progress
type ProgressReporter interface {
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 🔧 Manager implements both FileManager and ProgressReporter
type Manager struct {
	baseDir      string        // Base directory for relative paths
	backupSuffix string        // Suffix naming backup files
	formatter    FileFormatter // Formatter for progress messages

	// Progress tracking
	mu        sync.Mutex
	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(baseDir, backupSuffix string) *Manager {
	if backupSuffix == "" {
		backupSuffix = DefaultBackupSuffix
	}
	return &Manager{
		baseDir:      filepath.Clean(baseDir),
		backupSuffix: backupSuffix,
		formatter:    NewDefaultFileFormatter(),
	}
}

// 🔒 AbsPath resolves path against the base directory
func (m *Manager) AbsPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// BackupPath returns the absolute backup location for path
func (m *Manager) BackupPath(path string) string {
	return m.AbsPath(path) + m.backupSuffix
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.AbsPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Errorf("reading %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(m.AbsPath(path))
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// WriteFileAtomic writes through a temp file in the target directory and
// renames it into place, keeping the target's permissions when it exists.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	return writeAtomic(m.AbsPath(path), content)
}

func writeAtomic(absPath string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// BackupFile writes original, byte for byte, to the backup path and returns it.
// An existing backup is replaced.
func (m *Manager) BackupFile(ctx context.Context, path string, original []byte) (string, error) {
	backupPath := m.BackupPath(path)
	if err := writeAtomic(backupPath, original); err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}
	return backupPath, nil
}

// Commit writes the backup and only then the modified content. When the backup
// fails the target is not touched.
func (m *Manager) Commit(ctx context.Context, path string, original, modified []byte) (string, error) {
	backupPath, err := m.BackupFile(ctx, path, original)
	if err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Debug().Str("file", path).Str("backup", backupPath).Msg("backup written")

	if err := m.WriteFileAtomic(ctx, path, modified); err != nil {
		return backupPath, errors.Errorf("writing file: %w", err)
	}
	return backupPath, nil
}

func (m *Manager) HasBackup(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.BackupPath(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking backup existence: %w", err)
}

// RestoreFile puts the backup back in place and removes it.
func (m *Manager) RestoreFile(ctx context.Context, path string) error {
	backupPath := m.BackupPath(path)

	content, err := os.ReadFile(backupPath)
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("restoring %s: %w", path, ErrNoBackup)
	}
	if err != nil {
		return errors.Errorf("reading backup: %w", err)
	}

	if err := writeAtomic(m.AbsPath(path), content); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	return nil
}

// ProgressReporter interface implementation

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	zerolog.Ctx(ctx).Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.processed, m.total))
}
