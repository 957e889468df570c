// Package licensecheck validates vSphere license keys and expiration dates
// against the lab standards.
package licensecheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/hol-platform/labcheck/internal/labenv"
	"github.com/hol-platform/labcheck/internal/report"
)

// EvaluationKey is the well-known vSphere evaluation license key.
const EvaluationKey = "00000-00000-00000-00000-00000"

// License is one license record collected from a vCenter license manager.
type License struct {
	Key        string
	Name       string
	EntityName string
	Expiration *time.Time // nil when the license never expires
	Assigned   bool
}

// MaskKey masks a license key for display, keeping the first and last five
// characters.
func MaskKey(key string) string {
	if len(key) > 10 {
		return key[:5] + "-****-****-****-" + key[len(key)-5:]
	}
	return key
}

// expirationStatus classifies an expiration date against the lab thresholds.
func expirationStatus(expDate time.Time, now time.Time) (report.Status, string) {
	months := labenv.MonthsUntil(expDate, now)
	day := expDate.Format("2006-01-02")

	switch {
	case months >= labenv.ExpirationPassMonths:
		return report.StatusPass, fmt.Sprintf("License valid - expires %s (>= %d months)", day, labenv.ExpirationPassMonths)
	case months >= labenv.ExpirationWarnMonths:
		return report.StatusWarn, fmt.Sprintf("License expiring soon - expires %s (< %d months)", day, labenv.ExpirationPassMonths)
	default:
		return report.StatusFail, fmt.Sprintf("License expiring critically soon - expires %s (< %d months)", day, labenv.ExpirationWarnMonths)
	}
}

// checkSingle classifies one assigned license.
func checkSingle(lic License, now time.Time) report.CheckResult {
	checkName := fmt.Sprintf("License: %s", lic.Name)

	if lic.Key == EvaluationKey {
		return report.CheckResult{
			Name:    checkName,
			Status:  report.StatusFail,
			Message: "Evaluation license detected - requires production license",
			Details: map[string]any{"license_key": lic.Key, "entity": lic.EntityName},
		}
	}

	if lic.Expiration != nil {
		status, message := expirationStatus(*lic.Expiration, now)
		return report.CheckResult{
			Name:    checkName,
			Status:  status,
			Message: message,
			Details: map[string]any{
				"license_key": MaskKey(lic.Key),
				"entity":      lic.EntityName,
				"expiration":  lic.Expiration.Format("2006-01-02"),
			},
		}
	}

	// Non-expiring licenses are only acceptable for vShield Endpoint.
	status := report.StatusFail
	message := "Non-expiring license detected - requires dated license"
	if containsVShieldEndpoint(lic.Name) {
		status = report.StatusWarn
		message = "Non-expiring license (expected for vShield Endpoint)"
	}

	return report.CheckResult{
		Name:    checkName,
		Status:  status,
		Message: message,
		Details: map[string]any{
			"license_key": MaskKey(lic.Key),
			"entity":      lic.EntityName,
			"expiration":  "Never",
		},
	}
}

func containsVShieldEndpoint(name string) bool {
	return strings.Contains(name, "NSX for vShield Endpoint")
}

// CheckLicenses validates every collected license. Assigned licenses are
// classified against the expiration thresholds; unassigned non-evaluation
// licenses warn. Duplicate keys are checked once.
func CheckLicenses(licenses []License, now time.Time) []report.CheckResult {
	var results []report.CheckResult
	checked := make(map[string]bool)

	for _, lic := range licenses {
		if !lic.Assigned || checked[lic.Key] {
			continue
		}
		checked[lic.Key] = true
		results = append(results, checkSingle(lic, now))
	}

	for _, lic := range licenses {
		if lic.Assigned || checked[lic.Key] || lic.Key == EvaluationKey {
			continue
		}
		checked[lic.Key] = true

		expMsg := " - no expiration date"
		if lic.Expiration != nil {
			expMsg = fmt.Sprintf(" - expires %s", lic.Expiration.Format("2006-01-02"))
		}
		results = append(results, report.CheckResult{
			Name:    fmt.Sprintf("License: %s", lic.Name),
			Status:  report.StatusWarn,
			Message: "Unassigned license - should be removed" + expMsg,
			Details: map[string]any{"license_key": MaskKey(lic.Key), "used": false},
		})
	}

	return results
}
