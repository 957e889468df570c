package report

import "fmt"

// Status is the outcome classification of a single check.
type Status string

const (
	// StatusPass means the checked condition is compliant.
	StatusPass Status = "PASS"
	// StatusFail means the checked condition is out of compliance and actionable.
	StatusFail Status = "FAIL"
	// StatusWarn means borderline compliance; reviewable but non-blocking.
	StatusWarn Status = "WARN"
	// StatusInfo is supplementary context with no pass/fail judgment.
	StatusInfo Status = "INFO"
	// StatusSkipped means the check could not run (missing dependency, no targets).
	StatusSkipped Status = "SKIPPED"
	// StatusFixed means a non-compliant condition was detected and auto-remediated.
	StatusFixed Status = "FIXED"
)

// ParseStatus parses a string into a Status, returning an error for any value
// outside the closed enum.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPass, StatusFail, StatusWarn, StatusInfo, StatusSkipped, StatusFixed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown check status %q", s)
	}
}

// Icon returns the display marker for a status. Unrecognized values map to a
// visible unknown marker rather than failing the render.
func (s Status) Icon() string {
	switch s {
	case StatusPass:
		return "✅"
	case StatusFail:
		return "❌"
	case StatusWarn:
		return "⚠️"
	case StatusInfo:
		return "ℹ️"
	case StatusSkipped:
		return "⏭️"
	case StatusFixed:
		return "🔧"
	default:
		return "❓"
	}
}

// Class returns the CSS class used for the status badge in the HTML report.
func (s Status) Class() string {
	switch s {
	case StatusPass:
		return "status-pass"
	case StatusFail:
		return "status-fail"
	case StatusWarn:
		return "status-warn"
	case StatusInfo:
		return "status-info"
	case StatusSkipped:
		return "status-skipped"
	case StatusFixed:
		return "status-fixed"
	default:
		return "status-unknown"
	}
}
