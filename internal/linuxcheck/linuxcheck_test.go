package linuxcheck

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hol-platform/labcheck/internal/labenv"
	"github.com/hol-platform/labcheck/internal/report"
)

type fakeProber struct {
	pingable map[string]bool
	open     map[string]bool
}

func (p *fakeProber) Ping(host string, _ time.Duration) bool {
	return p.pingable[host]
}

func (p *fakeProber) PortOpen(host string, port int, _ time.Duration) bool {
	return p.open[fmt.Sprintf("%s:%d", host, port)]
}

type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
}

func (r *fakeRunner) Run(host, user, command string) (string, error) {
	key := host + "|" + user + "|" + command
	if err, ok := r.errs[key]; ok {
		return "", err
	}
	return r.outputs[key], nil
}

func TestCheckMachines_NoHosts(t *testing.T) {
	results := CheckMachines(nil, &fakeProber{}, &fakeRunner{})

	require.Len(t, results, 1)
	assert.Equal(t, report.StatusSkipped, results[0].Status)
	assert.Equal(t, "No Linux hosts to check", results[0].Message)
}

func TestCheckMachines_ConfiguredUser(t *testing.T) {
	prober := &fakeProber{
		pingable: map[string]bool{"vcsa-01a.site-a.vcf.lab": true},
		open:     map[string]bool{"vcsa-01a.site-a.vcf.lab:22": true},
	}
	runner := &fakeRunner{
		outputs: map[string]string{"vcsa-01a.site-a.vcf.lab|holuser|hostname": "vcsa-01a"},
	}

	accounts := []labenv.Account{{Host: "vcsa-01a.site-a.vcf.lab", User: "holuser"}}
	results := CheckMachines(accounts, prober, runner)

	require.Len(t, results, 1)
	assert.Equal(t, report.StatusPass, results[0].Status)
	assert.Equal(t, "SSH accessible with holuser credentials", results[0].Message)
	assert.Equal(t, "holuser", results[0].Details["user"])
}

func TestCheckMachines(t *testing.T) {
	tests := []struct {
		name            string
		pingable        bool
		portOpen        bool
		sshErr          error
		expectedStatus  report.Status
		expectedMessage string
	}{
		{
			name:            "accessible",
			pingable:        true,
			portOpen:        true,
			expectedStatus:  report.StatusPass,
			expectedMessage: "SSH accessible with root credentials",
		},
		{
			name:            "no ping",
			pingable:        false,
			expectedStatus:  report.StatusWarn,
			expectedMessage: "Host not responding to ping",
		},
		{
			name:            "port closed",
			pingable:        true,
			portOpen:        false,
			expectedStatus:  report.StatusWarn,
			expectedMessage: "SSH port 22 not responding",
		},
		{
			name:            "auth failure",
			pingable:        true,
			portOpen:        true,
			sshErr:          errors.New("permission denied"),
			expectedStatus:  report.StatusFail,
			expectedMessage: "SSH authentication failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := &fakeProber{
				pingable: map[string]bool{"vcsa-01a.site-a.vcf.lab": tt.pingable},
				open:     map[string]bool{"vcsa-01a.site-a.vcf.lab:22": tt.portOpen},
			}
			runner := &fakeRunner{
				outputs: map[string]string{"vcsa-01a.site-a.vcf.lab|root|hostname": "vcsa-01a"},
				errs:    map[string]error{},
			}
			if tt.sshErr != nil {
				runner.errs["vcsa-01a.site-a.vcf.lab|root|hostname"] = tt.sshErr
			}

			accounts := []labenv.Account{{Host: "vcsa-01a.site-a.vcf.lab", User: "root"}}
			results := CheckMachines(accounts, prober, runner)

			require.Len(t, results, 1)
			assert.Equal(t, "SSH: vcsa-01a.site-a.vcf.lab", results[0].Name)
			assert.Equal(t, tt.expectedStatus, results[0].Status)
			assert.Equal(t, tt.expectedMessage, results[0].Message)
		})
	}
}

func TestCheckPasswordExpirations_NoAccounts(t *testing.T) {
	results := CheckPasswordExpirations(nil, "root", &fakeRunner{}, time.Now())

	require.Len(t, results, 1)
	assert.Equal(t, report.StatusSkipped, results[0].Status)
}

func TestCheckPasswordExpirations(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	chageCmd := `chage -l root 2>/dev/null | grep "Password expires"`

	tests := []struct {
		name            string
		output          string
		err             error
		expectedStatus  report.Status
		expectedMessage string
	}{
		{
			name:            "never expires",
			output:          "Password expires : never",
			expectedStatus:  report.StatusPass,
			expectedMessage: "Password never expires",
		},
		{
			name:            "empty output treated as never",
			output:          "",
			expectedStatus:  report.StatusPass,
			expectedMessage: "Password never expires",
		},
		{
			name:            "far future passes",
			output:          "Password expires : Dec 31, 2029",
			expectedStatus:  report.StatusPass,
			expectedMessage: "Expires in 1401 days (3 years)",
		},
		{
			name:            "iso date far future passes",
			output:          "Password expires : 2029-12-31",
			expectedStatus:  report.StatusPass,
			expectedMessage: "Expires in 1401 days (3 years)",
		},
		{
			name:            "too soon fails",
			output:          "Password expires : Sep 01, 2026",
			expectedStatus:  report.StatusFail,
			expectedMessage: "Expires in 184 days - TOO SOON",
		},
		{
			name:            "already expired fails",
			output:          "Password expires : Feb 01, 2026",
			expectedStatus:  report.StatusFail,
			expectedMessage: "Password EXPIRED 28 days ago",
		},
		{
			name:            "unparseable date warns",
			output:          "Password expires : sometime",
			expectedStatus:  report.StatusWarn,
			expectedMessage: "Could not parse expiration date from: Password expires : sometime",
		},
		{
			name:            "ssh failure warns",
			err:             errors.New("connection reset"),
			expectedStatus:  report.StatusWarn,
			expectedMessage: "Could not check: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{
				outputs: map[string]string{"esx-01a|root|" + chageCmd: tt.output},
				errs:    map[string]error{},
			}
			if tt.err != nil {
				runner.errs["esx-01a|root|"+chageCmd] = tt.err
			}

			accounts := []labenv.Account{{Host: "esx-01a", User: "root"}}
			results := CheckPasswordExpirations(accounts, "root", runner, now)

			require.Len(t, results, 1)
			assert.Equal(t, "Password: esx-01a (root)", results[0].Name)
			assert.Equal(t, tt.expectedStatus, results[0].Status)
			assert.Equal(t, tt.expectedMessage, results[0].Message)
		})
	}
}

func TestCheckPasswordExpirations_LoginUser(t *testing.T) {
	// chage for the admin account runs over the holuser SSH session.
	cmd := `chage -l admin 2>/dev/null | grep "Password expires"`
	runner := &fakeRunner{
		outputs: map[string]string{"nsx-mgr-01a|holuser|" + cmd: "Password expires : never"},
	}

	accounts := []labenv.Account{{Host: "nsx-mgr-01a", User: "admin"}}
	results := CheckPasswordExpirations(accounts, "holuser", runner, time.Now())

	require.Len(t, results, 1)
	assert.Equal(t, "Password: nsx-mgr-01a (admin)", results[0].Name)
	assert.Equal(t, report.StatusPass, results[0].Status)
	assert.Equal(t, "Password never expires", results[0].Message)
}

func TestCheckTimeSync(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		remoteOffset    int64
		err             error
		rawOutput       string
		expectedStatus  report.Status
		expectedMessage string
	}{
		{
			name:            "in sync",
			remoteOffset:    30,
			expectedStatus:  report.StatusPass,
			expectedMessage: "Time synchronized (delta: 30s)",
		},
		{
			name:            "slightly off",
			remoteOffset:    -120,
			expectedStatus:  report.StatusWarn,
			expectedMessage: "Time slightly off (delta: 120s)",
		},
		{
			name:            "significantly off",
			remoteOffset:    3600,
			expectedStatus:  report.StatusFail,
			expectedMessage: "Time significantly off (delta: 3600s)",
		},
		{
			name:            "ssh failure",
			err:             errors.New("timeout"),
			expectedStatus:  report.StatusWarn,
			expectedMessage: "Could not get remote time",
		},
		{
			name:            "garbage output",
			rawOutput:       "not-a-number",
			expectedStatus:  report.StatusWarn,
			expectedMessage: "Could not parse remote time: not-a-number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.rawOutput
			if output == "" && tt.err == nil {
				output = fmt.Sprintf("%d\n", now.Unix()+tt.remoteOffset)
			}
			runner := &fakeRunner{
				outputs: map[string]string{"esx-01a|root|date +%s": output},
				errs:    map[string]error{},
			}
			if tt.err != nil {
				runner.errs["esx-01a|root|date +%s"] = tt.err
			}

			accounts := []labenv.Account{{Host: "esx-01a", User: "root"}}
			results := CheckTimeSync(accounts, runner, now)

			require.Len(t, results, 1)
			assert.Equal(t, "Time: esx-01a", results[0].Name)
			assert.Equal(t, tt.expectedStatus, results[0].Status)
			assert.Equal(t, tt.expectedMessage, results[0].Message)
		})
	}
}
