package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"
)

// pdf banner fill colors per overall status
func pdfBannerColor(s Status) (r, g, b int) {
	switch s {
	case StatusFail:
		return 254, 226, 226
	case StatusWarn:
		return 254, 243, 199
	default:
		return 220, 252, 231
	}
}

// WritePDF renders the report as a PDF document with a summary header and one
// table per non-empty category.
func (r *Report) WritePDF(w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Lab Validation Report: %s", r.LabSKU), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated: %s", r.Timestamp.Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Expiration Window: %s to %s", r.MinExpDate, r.MaxExpDate), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	cr, cg, cb := pdfBannerColor(r.OverallStatus)
	pdf.SetFillColor(cr, cg, cb)
	pdf.SetTextColor(30, 41, 59)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Overall Status: %s", r.OverallStatus), "", 1, "C", true, 0, "")
	pdf.Ln(3)

	s := r.GetSummary()
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d passed, %d failed, %d warnings, %d info, %d skipped (%d total)",
		s.Pass, s.Fail, s.Warn, s.Info, s.Skipped, s.Total), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, cat := range Categories {
		checks := r.checks[cat]
		if len(checks) == 0 {
			continue
		}

		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(248, 250, 252)
		pdf.CellFormat(0, 8, cat.Title(), "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		for _, c := range checks {
			pdf.CellFormat(18, 6, string(c.Status), "1", 0, "C", false, 0, "")
			pdf.CellFormat(62, 6, pdfTruncate(c.Name, 45), "1", 0, "L", false, 0, "")
			pdf.CellFormat(110, 6, pdfTruncate(c.Message, 85), "1", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	return pdf.Output(w)
}

func pdfTruncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
