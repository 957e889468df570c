// Package linuxcheck validates Linux machine accessibility, password
// expiration, and time synchronization over SSH.
package linuxcheck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hol-platform/labcheck/internal/labenv"
	"github.com/hol-platform/labcheck/internal/probe"
	"github.com/hol-platform/labcheck/internal/report"
)

// Runner executes a command on a remote Linux host as the given user.
type Runner interface {
	Run(host, user, command string) (string, error)
}

// CheckMachines validates SSH accessibility for each account. Unreachable
// hosts are warnings; a host that answers on port 22 but rejects the
// credentials is a failure.
func CheckMachines(accounts []labenv.Account, prober probe.Prober, runner Runner) []report.CheckResult {
	if len(accounts) == 0 {
		return []report.CheckResult{{
			Name:    "Linux Checks",
			Status:  report.StatusSkipped,
			Message: "No Linux hosts to check",
		}}
	}

	results := make([]report.CheckResult, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, checkSSHAccess(account, prober, runner))
	}
	return results
}

func checkSSHAccess(account labenv.Account, prober probe.Prober, runner Runner) report.CheckResult {
	name := fmt.Sprintf("SSH: %s", account.Host)

	if !prober.Ping(account.Host, labenv.TimeoutPing) {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: "Host not responding to ping",
			Details: map[string]any{"hostname": account.Host},
		}
	}

	if !prober.PortOpen(account.Host, 22, labenv.TimeoutSSH) {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: "SSH port 22 not responding",
			Details: map[string]any{"hostname": account.Host, "port": 22},
		}
	}

	if _, err := runner.Run(account.Host, account.User, "hostname"); err != nil {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: "SSH authentication failed",
			Details: map[string]any{"hostname": account.Host, "user": account.User, "error": err.Error()},
		}
	}

	return report.CheckResult{
		Name:    name,
		Status:  report.StatusPass,
		Message: fmt.Sprintf("SSH accessible with %s credentials", account.User),
		Details: map[string]any{"hostname": account.Host, "user": account.User},
	}
}

var expiresLinePattern = regexp.MustCompile(`:\s*(.+)$`)

// chage prints dates like "Dec 31, 2029"; some appliances use ISO or
// day-first forms.
var chageDateFormats = []string{"Jan 2, 2006", "2006-01-02", "02/01/2006"}

// CheckPasswordExpirations runs chage on every account and validates how far
// out the password expires. Commands run over SSH as loginUser, which needs
// permission to read other users' aging data. Never-expiring passwords pass;
// anything under two years fails.
func CheckPasswordExpirations(accounts []labenv.Account, loginUser string, runner Runner, now time.Time) []report.CheckResult {
	if len(accounts) == 0 {
		return []report.CheckResult{{
			Name:    "Password Expiration Checks",
			Status:  report.StatusSkipped,
			Message: "No accounts to check",
		}}
	}

	results := make([]report.CheckResult, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, checkSinglePassword(account, loginUser, runner, now))
	}
	return results
}

func checkSinglePassword(account labenv.Account, loginUser string, runner Runner, now time.Time) report.CheckResult {
	name := fmt.Sprintf("Password: %s (%s)", account.Host, account.User)
	details := map[string]any{"hostname": account.Host, "username": account.User}

	cmd := fmt.Sprintf(`chage -l %s 2>/dev/null | grep "Password expires"`, account.User)
	output, err := runner.Run(account.Host, loginUser, cmd)
	if err != nil {
		details["error"] = err.Error()
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: fmt.Sprintf("Could not check: %v", err),
			Details: details,
		}
	}

	output = strings.TrimSpace(output)
	if output == "" || strings.Contains(strings.ToLower(output), "never") {
		details["expires"] = "never"
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusPass,
			Message: "Password never expires",
			Details: details,
		}
	}

	expDate, ok := parseExpiresLine(output)
	if !ok {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: fmt.Sprintf("Could not parse expiration date from: %s", output),
			Details: details,
		}
	}

	days := int(expDate.Sub(now).Hours() / 24)
	details["days"] = days

	switch {
	case days < 0:
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: fmt.Sprintf("Password EXPIRED %d days ago", -days),
			Details: details,
		}
	case days >= labenv.PasswordExpireWarnDays:
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusPass,
			Message: fmt.Sprintf("Expires in %d days (%d years)", days, days/365),
			Details: details,
		}
	default:
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: fmt.Sprintf("Expires in %d days - TOO SOON", days),
			Details: details,
		}
	}
}

func parseExpiresLine(line string) (time.Time, bool) {
	m := expiresLinePattern.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	dateStr := strings.TrimSpace(m[1])

	for _, format := range chageDateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CheckTimeSync compares each host's clock against the local clock. A drift
// within one minute passes, within five minutes warns, beyond that fails.
func CheckTimeSync(accounts []labenv.Account, runner Runner, now time.Time) []report.CheckResult {
	if len(accounts) == 0 {
		return []report.CheckResult{{
			Name:    "Time Sync Checks",
			Status:  report.StatusSkipped,
			Message: "No Linux hosts to check",
		}}
	}

	results := make([]report.CheckResult, 0, len(accounts))
	for _, account := range accounts {
		results = append(results, checkTimeSync(account, runner, now))
	}
	return results
}

func checkTimeSync(account labenv.Account, runner Runner, now time.Time) report.CheckResult {
	name := fmt.Sprintf("Time: %s", account.Host)
	details := map[string]any{"hostname": account.Host}

	output, err := runner.Run(account.Host, account.User, "date +%s")
	if err != nil {
		details["error"] = err.Error()
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: "Could not get remote time",
			Details: details,
		}
	}

	remote, err := strconv.ParseInt(strings.TrimSpace(output), 10, 64)
	if err != nil {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: fmt.Sprintf("Could not parse remote time: %s", strings.TrimSpace(output)),
			Details: details,
		}
	}

	delta := remote - now.Unix()
	if delta < 0 {
		delta = -delta
	}
	details["delta_seconds"] = delta

	switch {
	case delta <= 60:
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusPass,
			Message: fmt.Sprintf("Time synchronized (delta: %ds)", delta),
			Details: details,
		}
	case delta <= 300:
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: fmt.Sprintf("Time slightly off (delta: %ds)", delta),
			Details: details,
		}
	default:
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: fmt.Sprintf("Time significantly off (delta: %ds)", delta),
			Details: details,
		}
	}
}
