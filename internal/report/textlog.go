package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteTextLog renders the report as a plain text log. Empty categories are
// omitted, matching the HTML rendition.
func (r *Report) WriteTextLog(w io.Writer) error {
	s := r.GetSummary()

	var b strings.Builder
	rule := strings.Repeat("=", 70)
	subRule := strings.Repeat("-", 70)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Lab Validation Report: %s\n", r.LabSKU)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Expiration Window: %s to %s\n", r.MinExpDate, r.MaxExpDate)
	fmt.Fprintf(&b, "Overall Status: %s\n", r.OverallStatus)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Summary: %d passed, %d failed, %d warnings, %d info, %d skipped\n",
		s.Pass, s.Fail, s.Warn, s.Info, s.Skipped)
	b.WriteString("\n")

	for _, cat := range Categories {
		checks := r.checks[cat]
		if len(checks) == 0 {
			continue
		}

		b.WriteString(subRule + "\n")
		b.WriteString(cat.Title() + "\n")
		b.WriteString(subRule + "\n")
		for _, c := range checks {
			b.WriteString(c.LogLine() + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
