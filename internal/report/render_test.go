package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTML_OmitsEmptyCategories(t *testing.T) {
	r := New("HOL-2701")
	r.Append(CategorySSL, CheckResult{Name: "SSL: vc.lab:443", Status: StatusPass, Message: "ok"})
	r.CalculateOverallStatus()

	var buf bytes.Buffer
	require.NoError(t, r.WriteHTML(&buf))
	html := buf.String()

	assert.Contains(t, html, "SSL Certificate Checks")
	assert.Contains(t, html, "SSL: vc.lab:443")
	assert.NotContains(t, html, "Windows Machine Checks")
	assert.NotContains(t, html, "NTP Configuration")
}

func TestWriteHTML_Banner(t *testing.T) {
	tests := []struct {
		name       string
		status     Status
		wantClass  string
	}{
		{name: "pass banner", status: StatusPass, wantClass: "banner-pass"},
		{name: "warn banner", status: StatusWarn, wantClass: "banner-warn"},
		{name: "fail banner", status: StatusFail, wantClass: "banner-fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("HOL-2701")
			if tt.status != StatusPass {
				r.Append(CategoryURL, CheckResult{Name: "u", Status: tt.status, Message: "m"})
			}
			r.CalculateOverallStatus()

			var buf bytes.Buffer
			require.NoError(t, r.WriteHTML(&buf))
			assert.Contains(t, buf.String(), tt.wantClass)
			assert.Contains(t, buf.String(), "Overall Status: "+string(tt.status))
		})
	}
}

func TestWriteHTML_EscapesMessages(t *testing.T) {
	r := New("HOL-2701")
	r.Append(CategoryURL, CheckResult{
		Name:    "URL: console",
		Status:  StatusFail,
		Message: `Expected text not found: '<script>alert(1)</script>'`,
	})
	r.CalculateOverallStatus()

	var buf bytes.Buffer
	require.NoError(t, r.WriteHTML(&buf))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestWriteHTML_UnknownStatusMarker(t *testing.T) {
	r := New("HOL-2701")
	r.Append(CategorySSL, CheckResult{Name: "odd", Status: Status("BOGUS"), Message: "m"})
	r.CalculateOverallStatus()

	var buf bytes.Buffer
	require.NoError(t, r.WriteHTML(&buf))
	assert.Contains(t, buf.String(), "status-unknown")
	assert.Contains(t, buf.String(), "❓")
}

func TestWriteTextLog(t *testing.T) {
	r := New("HOL-2701")
	r.MinExpDate = "2027-12-30"
	r.MaxExpDate = "2028-12-31"
	r.Append(CategoryNTP, CheckResult{Name: "NTP: esx-01a", Status: StatusWarn, Message: "NTPD not running"})
	r.Append(CategoryLinux, CheckResult{Name: "SSH: vcsa", Status: StatusPass, Message: "accessible"})
	r.CalculateOverallStatus()

	var buf bytes.Buffer
	require.NoError(t, r.WriteTextLog(&buf))
	out := buf.String()

	assert.Contains(t, out, "Lab Validation Report: HOL-2701")
	assert.Contains(t, out, "Overall Status: WARN")
	assert.Contains(t, out, "Summary: 1 passed, 0 failed, 1 warnings, 0 info, 0 skipped")
	assert.Contains(t, out, "WARN: NTP: esx-01a - NTPD not running")
	// NTP section precedes Linux section in display order.
	assert.Less(t, strings.Index(out, "NTP Configuration"), strings.Index(out, "Linux Machine Checks"))
	// Empty categories do not appear.
	assert.NotContains(t, out, "Windows Machine Checks")
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	r := New("HOL-2701")
	r.Append(CategorySSL, CheckResult{Name: "SSL: vc.lab:443", Status: StatusPass, Message: "ok"})
	r.CalculateOverallStatus()

	var buf bytes.Buffer
	require.NoError(t, r.WritePDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteFiles(t *testing.T) {
	r := New("HOL-2701")
	r.Append(CategoryURL, CheckResult{Name: "URL: console", Status: StatusPass, Message: "ok"})
	r.CalculateOverallStatus()

	dir := t.TempDir()
	require.NoError(t, r.WriteFiles(dir, true))

	for _, ext := range []string{"json", "html", "log", "pdf"} {
		assert.FileExists(t, OutputPath(dir, "HOL-2701", ext))
	}
}
