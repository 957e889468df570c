// Package ntpcheck validates the NTP configuration of ESXi hosts.
package ntpcheck

import (
	"fmt"
	"strings"

	"github.com/hol-platform/labcheck/internal/report"
)

// HostNTP is the NTP service state collected from an ESXi host.
type HostNTP struct {
	Hostname string
	Running  bool
	Policy   string
	Server   string
}

// CheckHosts validates NTP configuration on every host: the ntpd service must
// be running, its startup policy "on", and at least one server configured.
// Any deviation is a warning, not a failure.
func CheckHosts(hosts []HostNTP) []report.CheckResult {
	if len(hosts) == 0 {
		return []report.CheckResult{{
			Name:    "NTP Checks",
			Status:  report.StatusSkipped,
			Message: "No ESXi hosts to check",
		}}
	}

	results := make([]report.CheckResult, 0, len(hosts))
	for _, h := range hosts {
		results = append(results, checkSingle(h))
	}
	return results
}

func checkSingle(h HostNTP) report.CheckResult {
	var issues []string

	if !h.Running {
		issues = append(issues, "NTPD not running")
	}
	if h.Policy != "on" {
		issues = append(issues, fmt.Sprintf("NTPD policy is '%s' (should be 'on')", h.Policy))
	}
	if h.Server == "" {
		issues = append(issues, "No NTP server configured")
	}

	result := report.CheckResult{
		Name: fmt.Sprintf("NTP: %s", h.Hostname),
		Details: map[string]any{
			"hostname": h.Hostname,
			"running":  h.Running,
			"policy":   h.Policy,
			"server":   h.Server,
		},
	}

	if len(issues) > 0 {
		result.Status = report.StatusWarn
		result.Message = strings.Join(issues, "; ")
	} else {
		result.Status = report.StatusPass
		result.Message = fmt.Sprintf("NTP configured correctly (server: %s)", h.Server)
	}

	return result
}
