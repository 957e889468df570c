// Package urlcheck probes lab URLs for availability and expected content.
package urlcheck

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hol-platform/labcheck/internal/labenv"
	"github.com/hol-platform/labcheck/internal/report"
)

// NewClient returns an HTTP client suitable for lab probing: certificate
// verification is disabled because lab appliances use self-signed
// certificates, and certificate validity is covered by the SSL checks.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
		},
	}
}

// CheckURLs fetches every entry and validates the response status and, when an
// expected text is given, the body content. Duplicate URLs are checked once.
func CheckURLs(entries []labenv.URLEntry, client *http.Client) []report.CheckResult {
	var results []report.CheckResult
	seen := make(map[string]bool)

	for _, entry := range entries {
		if !strings.HasPrefix(entry.URL, "http://") && !strings.HasPrefix(entry.URL, "https://") {
			continue
		}
		if seen[entry.URL] {
			continue
		}
		seen[entry.URL] = true

		results = append(results, checkSingle(entry, client))
	}

	return results
}

func checkSingle(entry labenv.URLEntry, client *http.Client) report.CheckResult {
	name := fmt.Sprintf("URL: %s", entry.DisplayName())
	details := map[string]any{
		"url": entry.URL,
	}
	if entry.ExpectedText != "" {
		details["expected_text"] = entry.ExpectedText
	}

	start := time.Now()
	resp, err := client.Get(entry.URL)
	if err != nil {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: errorMessage(err, client.Timeout),
			Details: details,
		}
	}
	defer resp.Body.Close()
	elapsed := time.Since(start)

	details["status_code"] = resp.StatusCode
	details["response_time"] = fmt.Sprintf("%.2fs", elapsed.Seconds())

	if resp.StatusCode != http.StatusOK {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
			Details: details,
		}
	}

	if entry.ExpectedText != "" {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return report.CheckResult{
				Name:    name,
				Status:  report.StatusFail,
				Message: fmt.Sprintf("Failed to read response body: %v", readErr),
				Details: details,
			}
		}
		if !strings.Contains(string(body), entry.ExpectedText) {
			return report.CheckResult{
				Name:    name,
				Status:  report.StatusFail,
				Message: fmt.Sprintf("Expected text '%s' not found in response", entry.ExpectedText),
				Details: details,
			}
		}
	}

	return report.CheckResult{
		Name:    name,
		Status:  report.StatusPass,
		Message: fmt.Sprintf("Accessible (%.2fs)", elapsed.Seconds()),
		Details: details,
	}
}

func errorMessage(err error, timeout time.Duration) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("Timeout after %ds", int(timeout.Seconds()))
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "Connection refused or host unreachable"
	}

	return fmt.Sprintf("Request failed: %v", err)
}
