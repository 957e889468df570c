package report

import (
	"fmt"
	"time"
)

// Category identifies one of the named check groups of a validation run.
type Category string

const (
	CategorySSL                Category = "ssl_checks"
	CategoryLicense            Category = "license_checks"
	CategoryNTP                Category = "ntp_checks"
	CategoryVMConfig           Category = "vm_config_checks"
	CategoryVMResource         Category = "vm_resource_checks"
	CategoryPasswordExpiration Category = "password_expiration_checks"
	CategoryLinux              Category = "linux_checks"
	CategoryWindows            Category = "windows_checks"
	CategoryURL                Category = "url_checks"
	CategoryVSphere            Category = "vsphere_checks"
	CategoryInventory          Category = "inventory_checks"
)

// Categories lists all check categories in display order. The rendered report
// follows this order regardless of insertion order.
var Categories = []Category{
	CategorySSL,
	CategoryLicense,
	CategoryNTP,
	CategoryVMConfig,
	CategoryVMResource,
	CategoryPasswordExpiration,
	CategoryLinux,
	CategoryWindows,
	CategoryURL,
	CategoryVSphere,
	CategoryInventory,
}

var categoryTitles = map[Category]string{
	CategorySSL:                "SSL Certificate Checks",
	CategoryLicense:            "vSphere License Checks",
	CategoryNTP:                "NTP Configuration",
	CategoryVMConfig:           "VM Configuration",
	CategoryVMResource:         "VM Resources",
	CategoryPasswordExpiration: "Password Expiration",
	CategoryLinux:              "Linux Machine Checks",
	CategoryWindows:            "Windows Machine Checks",
	CategoryURL:                "URL Accessibility",
	CategoryVSphere:            "vSphere Configuration",
	CategoryInventory:          "Inventory & Utilization",
}

// Title returns the human-readable section title for the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// Summary holds per-status counts across all categories of a report.
// Pass counts both PASS and FIXED results; Total counts every result
// regardless of status.
type Summary struct {
	Pass    int `json:"pass"`
	Fail    int `json:"fail"`
	Warn    int `json:"warn"`
	Info    int `json:"info"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// Report aggregates all check results for one validation run.
//
// OverallStatus is not kept in sync automatically: it defaults to PASS and is
// only valid after CalculateOverallStatus has been invoked. The render step is
// responsible for finalizing before reading it.
type Report struct {
	LabSKU        string
	Timestamp     time.Time
	MinExpDate    string
	MaxExpDate    string
	OverallStatus Status

	checks map[Category][]CheckResult
}

// New creates an empty report for the given lab SKU with the timestamp set to
// the current time.
func New(labSKU string) *Report {
	return &Report{
		LabSKU:        labSKU,
		Timestamp:     time.Now(),
		OverallStatus: StatusPass,
		checks:        make(map[Category][]CheckResult),
	}
}

// Append adds results to the given category, preserving insertion order.
func (r *Report) Append(cat Category, results ...CheckResult) {
	if r.checks == nil {
		r.checks = make(map[Category][]CheckResult)
	}
	r.checks[cat] = append(r.checks[cat], results...)
}

// Checks returns the ordered results for one category.
func (r *Report) Checks(cat Category) []CheckResult {
	return r.checks[cat]
}

// AllChecks returns every result across all categories, in category display
// order.
func (r *Report) AllChecks() []CheckResult {
	var all []CheckResult
	for _, cat := range Categories {
		all = append(all, r.checks[cat]...)
	}
	return all
}

// CalculateOverallStatus reduces all results to a single verdict with strict
// precedence FAIL > WARN > PASS and stores it on the report. INFO, SKIPPED and
// FIXED never influence the outcome; an empty report reduces to PASS.
func (r *Report) CalculateOverallStatus() Status {
	status := StatusPass
	for _, c := range r.AllChecks() {
		if c.Status == StatusFail {
			status = StatusFail
			break
		}
		if c.Status == StatusWarn {
			status = StatusWarn
		}
	}
	r.OverallStatus = status
	return status
}

// GetSummary counts results by status across all categories.
func (r *Report) GetSummary() Summary {
	var s Summary
	for _, c := range r.AllChecks() {
		switch c.Status {
		case StatusPass, StatusFixed:
			s.Pass++
		case StatusFail:
			s.Fail++
		case StatusWarn:
			s.Warn++
		case StatusInfo:
			s.Info++
		case StatusSkipped:
			s.Skipped++
		}
		s.Total++
	}
	return s
}

// SyntheticFailure returns the single FAIL result the orchestrator inserts
// into a category when a producer errors past its own boundary.
func SyntheticFailure(name string, err error) CheckResult {
	return CheckResult{
		Name:    name,
		Status:  StatusFail,
		Message: fmt.Sprintf("Check failed with error: %v", err),
	}
}
