package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHint is for advisory diagnostics an editor may render subtly.
	SevHint Severity = iota
	// SevWarning is for likely mistakes that do not block the host.
	SevWarning
	// SevError is for failures such as unreadable input.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
