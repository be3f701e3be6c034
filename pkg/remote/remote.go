// Package remote runs a single command on a host and returns its exit
// status together with the complete stdout and stderr.
package remote

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DefaultPort is the SSH port used when Config.Port is zero.
const DefaultPort = 22

// DefaultTimeout bounds the SSH handshake when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Result is the outcome of one command. Stdout and Stderr are complete:
// a Runner only returns after both streams are drained and the command
// has exited.
type Result struct {
	ExitStatus int
	Stdout     string
	Stderr     string
}

// Success reports whether the command exited with status 0.
func (r *Result) Success() bool { return r.ExitStatus == 0 }

// Runner executes a command and waits for it to finish. A non-zero exit
// status is reported in Result, not as an error; errors are reserved for
// failures to run the command at all.
type Runner interface {
	Run(ctx context.Context, command string) (*Result, error)
}

// Config holds SSH connection parameters.
type Config struct {
	Host       string
	Port       int
	User       string
	Password   string
	KeyFile    string        // path to a PEM/OpenSSH private key
	KnownHosts string        // path to a known_hosts file; empty disables verification
	Timeout    time.Duration // handshake timeout
}

// Addr returns "host:port", defaulting the port to 22. IPv6 hosts are
// bracketed.
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}
