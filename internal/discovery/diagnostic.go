// SPDX-License-Identifier: MPL-2.0

package discovery

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"

	// CodeEntryUnreadable is reported when an entry could not be inspected.
	CodeEntryUnreadable = "entry_unreadable"
	// CodeMarkerUnreadable is reported when a directory's pom.xml could not be inspected.
	CodeMarkerUnreadable = "marker_unreadable"
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code is a machine-readable identifier (e.g., "entry_unreadable").
		Code string
		// Message is the human-readable description.
		Message string
		// Path is the path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

func newWarning(code, path, message string, cause error) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Path:     path,
		Cause:    cause,
	}
}
