// Package wincheck validates Windows machine accessibility, activation, and
// firewall state over remote command execution.
package wincheck

import (
	"fmt"
	"strings"

	"github.com/hol-platform/labcheck/internal/labenv"
	"github.com/hol-platform/labcheck/internal/probe"
	"github.com/hol-platform/labcheck/internal/report"
)

// Host identifies a Windows VM discovered in the inventory.
type Host struct {
	Name    string
	IP      string
	GuestID string
}

// Runner executes a command on a remote Windows host.
type Runner interface {
	Run(host, command string) (string, error)
}

// CheckMachines runs accessibility, activation, and firewall checks on every
// Windows host. Activation and firewall checks only run when the host is
// reachable.
func CheckMachines(hosts []Host, prober probe.Prober, runner Runner) []report.CheckResult {
	if len(hosts) == 0 {
		return []report.CheckResult{{
			Name:    "Windows Checks",
			Status:  report.StatusSkipped,
			Message: "No Windows machines to check",
		}}
	}

	var results []report.CheckResult
	for _, host := range hosts {
		access := checkAccessibility(host, prober)
		results = append(results, access)

		if access.Status != report.StatusPass {
			continue
		}

		results = append(results, checkActivation(host, runner))
		results = append(results, checkFirewall(host, runner))
	}
	return results
}

func checkAccessibility(host Host, prober probe.Prober) report.CheckResult {
	name := fmt.Sprintf("Windows: %s", host.Name)

	if host.IP == "" {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusSkipped,
			Message: "No IP address available",
			Details: map[string]any{"vm_name": host.Name},
		}
	}

	if !prober.Ping(host.IP, labenv.TimeoutPing) {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: "Host not responding to ping",
			Details: map[string]any{"vm_name": host.Name, "ip": host.IP},
		}
	}

	if !prober.PortOpen(host.IP, 445, labenv.TimeoutSSH) {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: "SMB port 445 not responding",
			Details: map[string]any{"vm_name": host.Name, "ip": host.IP, "port": 445},
		}
	}

	return report.CheckResult{
		Name:    name,
		Status:  report.StatusPass,
		Message: "Host accessible (ping and SMB port 445)",
		Details: map[string]any{"vm_name": host.Name, "ip": host.IP},
	}
}

func checkActivation(host Host, runner Runner) report.CheckResult {
	name := fmt.Sprintf("Activation: %s", host.Name)
	details := map[string]any{"vm_name": host.Name, "ip": host.IP}

	output, err := runner.Run(host.IP, `cscript //nologo C:\Windows\System32\slmgr.vbs /xpr`)
	if err != nil {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: fmt.Sprintf("Could not check activation: %v", err),
			Details: details,
		}
	}

	details["output"] = truncate(output, 100)
	lower := strings.ToLower(output)

	switch {
	case strings.Contains(lower, "permanently activated") || strings.Contains(lower, "will expire"):
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusPass,
			Message: "Windows is activated",
			Details: details,
		}
	case strings.Contains(lower, "notification mode") || strings.Contains(lower, "not activated"):
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: "Windows is NOT activated",
			Details: details,
		}
	default:
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: "Could not determine activation status",
			Details: details,
		}
	}
}

// Firewall must be off on every profile; lab networks rely on open
// east-west traffic.
func checkFirewall(host Host, runner Runner) report.CheckResult {
	name := fmt.Sprintf("Firewall: %s", host.Name)
	details := map[string]any{"vm_name": host.Name, "ip": host.IP}

	output, err := runner.Run(host.IP, "netsh advfirewall show allprofiles state")
	if err != nil {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: fmt.Sprintf("Could not check firewall: %v", err),
			Details: details,
		}
	}

	if firewallEnabled(output) {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: "Firewall is enabled on one or more profiles",
			Details: details,
		}
	}

	return report.CheckResult{
		Name:    name,
		Status:  report.StatusPass,
		Message: "Firewall is disabled on all profiles",
		Details: details,
	}
}

// firewallEnabled scans netsh output for any profile whose State column
// reads ON.
func firewallEnabled(output string) bool {
	for _, line := range strings.Split(strings.ToLower(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "state" && fields[1] == "on" {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
