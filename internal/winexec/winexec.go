// Package winexec runs commands on Windows hosts over WinRM.
package winexec

import (
	"bytes"
	"fmt"

	"github.com/masterzen/winrm"
	"github.com/sirupsen/logrus"

	"github.com/hol-platform/labcheck/internal/labenv"
)

// Executor runs commands as the lab administrator account over WinRM.
type Executor struct {
	User     string
	Password string
}

// Run executes a command on the host and returns its stdout. A non-zero exit
// code or any stderr output is an error.
func (e *Executor) Run(host, command string) (string, error) {
	endpoint := winrm.NewEndpoint(host, 5985, false, false, nil, nil, nil, labenv.TimeoutSSH)

	logrus.Debugf("winrm %s@%s: %s", e.User, host, command)

	client, err := winrm.NewClient(endpoint, e.User, e.Password)
	if err != nil {
		return "", fmt.Errorf("creating WinRM client for %s: %w", host, err)
	}

	var stdout, stderr bytes.Buffer
	exitCode, err := client.Run(command, &stdout, &stderr)
	if err != nil {
		return "", fmt.Errorf("running %q on %s: %w", command, host, err)
	}
	if exitCode != 0 {
		return stdout.String(), fmt.Errorf("command %q on %s exited %d: %s", command, host, exitCode, stderr.String())
	}
	return stdout.String(), nil
}
