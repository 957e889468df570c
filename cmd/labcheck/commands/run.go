package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// validCheckNames lists all check names recognized by the run command.
var validCheckNames = []string{"ssl", "license", "ntp", "url", "linux", "windows", "vsphere", "inventory"}

var targetsFile string
var labSKU string
var reportOnly bool
var withPDF bool
var htmlFile string
var outDir string
var skipChecks string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all lab validation checks",
	Long: `Run all lab validation checks against the environment described by the targets file.

Checks: ssl, license, ntp, url, linux, windows, vsphere, inventory.
Use --skip to skip specific checks; skipped checks appear as SKIPPED in the report.
Use --report-only to disable automatic fixing of VM configuration issues.

The report is written to the output directory as JSON, HTML, and a text log;
--pdf adds a PDF rendition.`,
	Example: `  labcheck run --targets targets.yaml
  labcheck run --targets targets.yaml --sku HOL-2701
  labcheck run --targets targets.yaml --report-only
  labcheck run --targets targets.yaml --skip windows,linux
  labcheck run --targets targets.yaml --out-dir /tmp/reports --pdf
  cat targets.yaml | labcheck run --targets -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runValidation(); err != nil {
			return fmt.Errorf("run operation failed: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&targetsFile, "targets", "t", "", "Path to targets file (JSON or YAML), or - for stdin (required)")
	runCmd.Flags().StringVar(&labSKU, "sku", "", "Lab SKU, overrides the value from the targets file (optional)")
	runCmd.Flags().BoolVar(&reportOnly, "report-only", false, "Report issues without fixing VM configuration (optional)")
	runCmd.Flags().BoolVar(&withPDF, "pdf", false, "Also write a PDF rendition of the report (optional)")
	runCmd.Flags().StringVar(&htmlFile, "html", "", "Write an additional copy of the HTML report to this path (optional)")
	runCmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "Directory for report files (optional)")
	runCmd.Flags().StringVar(&skipChecks, "skip", "", "Comma-separated list of checks to skip (ssl, license, ntp, url, linux, windows, vsphere, inventory) (optional)")

	_ = runCmd.MarkFlagRequired("targets")
}

// parseCheckNameList parses a comma-separated list of check names and validates
// each name against validCheckNames. Returns a map of valid check names.
func parseCheckNameList(list string) (map[string]bool, error) {
	if list == "" {
		return nil, nil
	}

	validNames := make(map[string]bool)
	for _, name := range validCheckNames {
		validNames[name] = true
	}

	nameMap := make(map[string]bool)
	for part := range strings.SplitSeq(list, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if !validNames[name] {
			return nil, fmt.Errorf("unknown check name %q, valid names are: %s", name, strings.Join(validCheckNames, ", "))
		}
		nameMap[name] = true
	}

	return nameMap, nil
}
