// Package probe provides the network reachability primitives shared by the
// machine checks.
package probe

import (
	"net"
	"strconv"
	"time"
)

// Prober tests basic network reachability of a host. Checks accept this
// interface so tests can substitute a fake.
type Prober interface {
	// Ping reports whether the host answers at all within the timeout.
	Ping(host string, timeout time.Duration) bool
	// PortOpen reports whether a TCP connection to host:port succeeds.
	PortOpen(host string, port int, timeout time.Duration) bool
}

// TCPProber probes with plain TCP connections. Ping is implemented as an echo
// port connection attempt plus a DNS check, since raw ICMP needs privileges
// the validator does not have.
type TCPProber struct{}

func (TCPProber) Ping(host string, timeout time.Duration) bool {
	if _, err := net.LookupHost(host); err == nil {
		return true
	}
	// Fall back to a direct connection attempt for IP literals without DNS.
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, "7"), timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (TCPProber) PortOpen(host string, port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
