// Package labenv holds the lab validation standards: expiration thresholds,
// timeouts, and the helpers that derive the acceptable expiration window from
// a lab SKU.
package labenv

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Per-check timeouts.
const (
	TimeoutSSH     = 30 * time.Second
	TimeoutURL     = 15 * time.Second
	TimeoutPing    = 5 * time.Second
	TimeoutSSL     = 10 * time.Second
	TimeoutVCenter = 120 * time.Second
)

// License/certificate expiration thresholds in months from today.
// >= ExpirationPassMonths is PASS, >= ExpirationWarnMonths is WARN, below is FAIL.
const (
	ExpirationPassMonths = 9
	ExpirationWarnMonths = 3
)

// Password expiration thresholds in days.
const (
	PasswordExpirePassDays = 1095 // 3 years
	PasswordExpireWarnDays = 730  // 2 years
)

// daysPerMonth is the average month length used for threshold math.
const daysPerMonth = 30.44

// skipVMPatterns lists substrings of system VM names excluded from
// configuration checks.
var skipVMPatterns = []string{
	"vcf-services-platform-template-",
	"SupervisorControlPlaneVM",
}

// ShouldSkipVM reports whether a VM is a system VM that configuration checks
// must skip entirely.
func ShouldSkipVM(vmName string) bool {
	for _, pattern := range skipVMPatterns {
		if strings.Contains(vmName, pattern) {
			return true
		}
	}
	return false
}

const defaultLabYear = "27"

var (
	standardSKUPattern = regexp.MustCompile(`-(\d{4})(?:\D|$)`)
)

// LabYear extracts the 2-digit lab year from a lab SKU. Standard SKUs like
// HOL-2701 yield "27"; beta SKUs (PREFIX-9xx) and named SKUs fall back to the
// current program year.
func LabYear(labSKU string) string {
	if len(labSKU) < 4 {
		return defaultLabYear
	}

	if m := standardSKUPattern.FindStringSubmatch(labSKU); m != nil {
		yearPart := m[1][:2]
		if year, err := strconv.Atoi(yearPart); err == nil && year >= 20 && year <= 35 {
			return yearPart
		}
	}

	return defaultLabYear
}

// ExpirationWindow returns the acceptable license/certificate expiration range
// for a lab: Dec 30 of the lab year through Dec 31 of the following year.
func ExpirationWindow(labSKU string) (minExp, maxExp time.Time) {
	year, _ := strconv.Atoi(LabYear(labSKU))
	year += 2000

	minExp = time.Date(year, time.December, 30, 0, 0, 0, 0, time.UTC)
	maxExp = time.Date(year+1, time.December, 31, 0, 0, 0, 0, time.UTC)
	return minExp, maxExp
}

// MonthsUntil returns the approximate number of months between now and the
// expiration date. Negative when already expired.
func MonthsUntil(expDate, now time.Time) float64 {
	days := expDate.Sub(now).Hours() / 24
	return days / daysPerMonth
}
