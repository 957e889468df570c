package commands

import (
	"fmt"

	"github.com/hol-platform/labcheck/internal/report"
)

// renderReportText prints the report to stdout, one section per non-empty
// category, followed by the summary and overall verdict.
func renderReportText(rep *report.Report) {
	for _, cat := range report.Categories {
		checks := rep.Checks(cat)
		if len(checks) == 0 {
			continue
		}

		fmt.Println(sectionHeader(cat.Title()))
		for _, check := range checks {
			fmt.Printf("%s: %s - %s\n", statusPrefix(check.Status), check.Name, check.Message)
		}
		fmt.Println()
	}

	summary := rep.GetSummary()
	fmt.Println(headerStyle.Render("Summary"))
	fmt.Printf("%d passed, %d failed, %d warnings, %d info, %d skipped (%d total)\n",
		summary.Pass, summary.Fail, summary.Warn, summary.Info, summary.Skipped, summary.Total)
	fmt.Printf("Overall status: %s\n", statusPrefix(rep.OverallStatus))
}
