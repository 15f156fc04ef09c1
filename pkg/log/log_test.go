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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/retrofit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

func plainOutput(t *testing.T) {
	t.Helper()
	color.NoColor = true
	pterm.DisableStyling()
	t.Cleanup(func() {
		color.NoColor = false
		pterm.EnableStyling()
	})
}

func newTestLogger(t *testing.T, buf io.Writer) *Logger {
	return NewWithZerolog(buf, zerolog.New(zerolog.NewTestWriter(t)))
}

func TestLogger(t *testing.T) {
	plainOutput(t)

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %d", 3)
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success 3",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("applying frontend rules")
			},
			wantLogs: []string{
				"retrofit • applying frontend rules",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := newTestLogger(t, buf)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestFileOperationFormatting(t *testing.T) {
	plainOutput(t)

	tests := []struct {
		name     string
		op       FileOperation
		contains []string
	}{
		{
			name: "modified_file",
			op: FileOperation{
				Path:     "app/orders/page.tsx",
				Outcome:  status.OutcomeModified,
				Rules:    []string{"import-injection", "call-rewrite"},
				Rewrites: 2,
			},
			contains: []string{"⟳ app/orders/page.tsx", "modified", "2 sites", "import-injection, call-rewrite"},
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:    "app/dashboard/page.tsx",
				Outcome: status.OutcomeUnchanged,
			},
			contains: []string{"- app/dashboard/page.tsx", "unchanged"},
		},
		{
			name: "missing_file",
			op: FileOperation{
				Path:    "app/clients/page.tsx",
				Outcome: status.OutcomeNotFound,
				Err:     status.ErrNotFound,
			},
			contains: []string{"? app/clients/page.tsx", "not-found"},
		},
		{
			name: "failed_file",
			op: FileOperation{
				Path:    "app/products/page.tsx",
				Outcome: status.OutcomeError,
				Err:     errors.New("permission denied"),
			},
			contains: []string{"✗ app/products/page.tsx", "error", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := newTestLogger(t, buf)

			logger.LogFileOperation(context.Background(), tt.op)

			output := strings.TrimSpace(buf.String())
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			assert.Len(t, logger.Operations(), 1)
		})
	}
}

func TestSummary(t *testing.T) {
	plainOutput(t)

	t.Run("applied_run_mentions_backups", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newTestLogger(t, buf)

		logger.Summary(status.Summary{Modified: 2, Unchanged: 1, NotFound: 1, Total: 4}, ".backup", false)

		out := buf.String()
		assert.Contains(t, out, "Modified")
		assert.Contains(t, out, "Not found")
		assert.Contains(t, out, "4")
		assert.Contains(t, out, ".backup")
	})

	t.Run("dry_run_has_no_backup_hint", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := newTestLogger(t, buf)

		logger.Summary(status.Summary{Modified: 1, Total: 1}, ".backup", true)

		out := buf.String()
		assert.Contains(t, out, "Would modify")
		assert.NotContains(t, out, ".backup")
	})
}

func TestLogDiff(t *testing.T) {
	plainOutput(t)

	buf := &bytes.Buffer{}
	logger := newTestLogger(t, buf)

	logger.LogDiff("page.tsx", "- old\n  ...\n+ new\n")
	logger.LogDiff("page.tsx", "")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "        - old", lines[0])
	assert.Equal(t, "        + new", lines[2])
}
