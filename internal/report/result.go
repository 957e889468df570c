package report

import "fmt"

// CheckResult is the outcome of one atomic validation. Producers build a
// result once and return it; nothing mutates it downstream except insertion
// into a report category.
type CheckResult struct {
	Name    string         `json:"name"`
	Status  Status         `json:"status"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// IsPass reports whether the result counts as a pass (PASS or FIXED).
func (r CheckResult) IsPass() bool {
	return r.Status == StatusPass || r.Status == StatusFixed
}

// IsFail reports whether the result is a failure.
func (r CheckResult) IsFail() bool {
	return r.Status == StatusFail
}

// IsWarn reports whether the result is a warning.
func (r CheckResult) IsWarn() bool {
	return r.Status == StatusWarn
}

// LogLine formats the result as a single text log line.
func (r CheckResult) LogLine() string {
	return fmt.Sprintf("%s: %s - %s", r.Status, r.Name, r.Message)
}
