package commands

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hol-platform/labcheck/internal/report"
)

// captureStdout runs f while redirecting os.Stdout and returns what was
// printed.
func captureStdout(t *testing.T, f func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = old })

	f()

	require.NoError(t, w.Close())
	os.Stdout = old

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestRenderReportText(t *testing.T) {
	rep := report.New("HOL-2701")
	rep.Append(report.CategorySSL, report.CheckResult{
		Name:    "SSL: vcsa-01a.site-a.vcf.lab:443",
		Status:  report.StatusFail,
		Message: "Certificate expired",
	})
	rep.Append(report.CategoryNTP, report.CheckResult{
		Name:    "NTP: esx-01a",
		Status:  report.StatusPass,
		Message: "NTP configured correctly (server: 10.0.0.1)",
	})
	rep.CalculateOverallStatus()

	out := captureStdout(t, func() { renderReportText(rep) })

	assert.Contains(t, out, "SSL Certificate Checks")
	assert.Contains(t, out, "FAIL: SSL: vcsa-01a.site-a.vcf.lab:443 - Certificate expired")
	assert.Contains(t, out, "NTP Configuration")
	assert.Contains(t, out, "PASS: NTP: esx-01a - NTP configured correctly (server: 10.0.0.1)")
	assert.Contains(t, out, "1 passed, 1 failed, 0 warnings, 0 info, 0 skipped (2 total)")
	assert.Contains(t, out, "Overall status: FAIL")
}

func TestRenderReportText_OmitsEmptyCategories(t *testing.T) {
	rep := report.New("HOL-2701")
	rep.Append(report.CategoryURL, report.CheckResult{
		Name:    "URL: Lab Portal",
		Status:  report.StatusPass,
		Message: "Accessible (0.12s)",
	})
	rep.CalculateOverallStatus()

	out := captureStdout(t, func() { renderReportText(rep) })

	assert.Contains(t, out, "URL Accessibility")
	assert.NotContains(t, out, "Windows Machine Checks")
	assert.NotContains(t, out, "vSphere License Checks")
}
