// Package sshexec runs commands on Linux hosts over SSH with password
// authentication.
package sshexec

import (
	"bytes"
	"fmt"
	"net"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/hol-platform/labcheck/internal/labenv"
)

// Executor dials a fresh SSH connection per command. Lab appliances often cap
// concurrent sessions, so connections are not pooled.
type Executor struct {
	Password string
}

// Run executes a command on the host as the given user and returns the
// combined stdout.
func (e *Executor) Run(host, user, command string) (string, error) {
	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(e.Password),
			ssh.KeyboardInteractive(e.keyboardInteractive),
		},
		// Lab appliances regenerate host keys on deploy.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // #nosec G106
		Timeout:         labenv.TimeoutSSH,
	}

	addr := net.JoinHostPort(host, "22")
	logrus.Debugf("ssh %s@%s: %s", user, host, command)

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return "", fmt.Errorf("dialing %s: %w", addr, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("opening session on %s: %w", host, err)
	}
	defer session.Close()

	var stdout bytes.Buffer
	session.Stdout = &stdout

	if err := session.Run(command); err != nil {
		return stdout.String(), fmt.Errorf("running %q on %s: %w", command, host, err)
	}
	return stdout.String(), nil
}

// keyboardInteractive answers every prompt with the password; VCSA defaults
// to keyboard-interactive authentication.
func (e *Executor) keyboardInteractive(_, _ string, questions []string, _ []bool) ([]string, error) {
	answers := make([]string, len(questions))
	for i := range questions {
		answers[i] = e.Password
	}
	return answers, nil
}
