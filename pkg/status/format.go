package status

import (
	"fmt"
)

// FileFormatter defines how file outcomes and progress should be formatted
type FileFormatter interface {
	// FormatOutcome formats a per-file outcome message
	FormatOutcome(path string, outcome Outcome, detail string) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatOutcome formats a per-file outcome with emojis
func (f *DefaultFileFormatter) FormatOutcome(path string, outcome Outcome, detail string) string {
	var msg string
	switch outcome {
	case OutcomeModified:
		msg = fmt.Sprintf("📝 Modified %s", path)
	case OutcomeNotFound:
		msg = fmt.Sprintf("🔍 Not found %s", path)
	case OutcomeError:
		msg = fmt.Sprintf("❌ Failed %s", path)
	default:
		msg = fmt.Sprintf("👍 Unchanged %s", path)
	}
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return msg
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
