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
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/retrofit/pkg/status"
)

// 🎯 FileOperation represents one processed file for logging
type FileOperation struct {
	Path       string         // File path
	Outcome    status.Outcome // What happened to the file
	Rules      []string       // Rules that changed the file
	Rewrites   int            // Number of call sites rewritten
	BackupPath string         // Backup written before the change
	Err        error          // Failure, for error and not-found outcomes
}

func (op FileOperation) detail() string {
	switch op.Outcome {
	case status.OutcomeModified:
		return strings.Join(op.Rules, ", ")
	case status.OutcomeError:
		if op.Err != nil {
			return op.Err.Error()
		}
	}
	return ""
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return NewWithZerolog(console, zlog)
}

// 🏭 NewWithZerolog creates a logger around an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 LogFileOperation prints one file line and records the operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, status.FormatFileLine(op.Path, op.Outcome, op.Rewrites, op.detail()))

	event := l.zlog.Info()
	if op.Outcome == status.OutcomeError {
		event = l.zlog.Error().Err(op.Err)
	}
	event.
		Str("file", op.Path).
		Str("outcome", op.Outcome.String()).
		Strs("rules", op.Rules).
		Int("rewrites", op.Rewrites).
		Str("backup", op.BackupPath).
		Msg("file operation")
}

// Operations returns the file operations logged so far
func (l *Logger) Operations() []FileOperation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]FileOperation(nil), l.operations...)
}

// 📝 LogDiff prints a dry-run diff under its file line
func (l *Logger) LogDiff(path, diff string) {
	if diff == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			line = color.GreenString("%s", line)
		case strings.HasPrefix(line, "- "):
			line = color.RedString("%s", line)
		default:
			line = color.New(color.Faint).Sprint(line)
		}
		fmt.Fprintf(l.console, "        %s\n", line)
	}
	l.zlog.Debug().Str("file", path).Msg("diff printed")
}

// 📊 Summary prints the closing table of outcome counts
func (l *Logger) Summary(sum status.Summary, backupSuffix string, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	modifiedLabel := "📝 Modified"
	if dryRun {
		modifiedLabel = "📝 Would modify"
	}

	table, err := pterm.DefaultTable.
		WithHasHeader().
		WithData(pterm.TableData{
			{"Outcome", "Files"},
			{modifiedLabel, strconv.Itoa(sum.Modified)},
			{"👍 Unchanged", strconv.Itoa(sum.Unchanged)},
			{"🔍 Not found", strconv.Itoa(sum.NotFound)},
			{"❌ Errors", strconv.Itoa(sum.Errors)},
			{"Σ Total", strconv.Itoa(sum.Total)},
		}).
		Srender()
	if err != nil {
		l.zlog.Warn().Err(err).Msg("rendering summary table")
	} else {
		fmt.Fprintf(l.console, "\n%s\n", table)
	}

	if sum.Modified > 0 && !dryRun {
		fmt.Fprintln(l.console, pterm.Info.Sprintf("Originals were saved with the %s suffix; run 'retrofit restore' to roll back", backupSuffix))
	}

	l.zlog.Info().
		Int("modified", sum.Modified).
		Int("unchanged", sum.Unchanged).
		Int("not_found", sum.NotFound).
		Int("errors", sum.Errors).
		Int("total", sum.Total).
		Msg("summary")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("retrofit")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
