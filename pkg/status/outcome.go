package status

// 📊 Outcome is the result of processing one file
type Outcome int

const (
	OutcomeUnchanged Outcome = iota // No rule changed the file; nothing written
	OutcomeModified                 // Backup written, then new content
	OutcomeNotFound                 // File does not exist
	OutcomeError                    // Read, transform or write failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeModified:
		return "modified"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// 🧮 Summary counts outcomes across a batch. Modified, Unchanged, NotFound
// and Errors always add up to Total.
type Summary struct {
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
	NotFound  int `json:"not_found"`
	Errors    int `json:"errors"`
	Total     int `json:"total"`
}

// Add counts one outcome
func (s *Summary) Add(o Outcome) {
	switch o {
	case OutcomeModified:
		s.Modified++
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeError:
		s.Errors++
	default:
		s.Unchanged++
	}
	s.Total++
}

// Conserved reports whether the per-outcome counts add up to Total
func (s Summary) Conserved() bool {
	return s.Modified+s.Unchanged+s.NotFound+s.Errors == s.Total
}

// Failed reports whether any file errored
func (s Summary) Failed() bool {
	return s.Errors > 0
}
