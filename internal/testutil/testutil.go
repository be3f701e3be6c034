// Package testutil provides test helpers shared by unit and e2e tests:
// an in-process SSH server and access to a real SSH target configured
// through the environment.
package testutil

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/newtron-network/ipshow/pkg/remote"
)

// Environment for e2e tests against a real host.
const (
	EnvSSHAddr     = "IPSHOW_TEST_SSH_ADDR" // host[:port]
	EnvSSHUser     = "IPSHOW_TEST_SSH_USER"
	EnvSSHPassword = "IPSHOW_TEST_SSH_PASSWORD"
	EnvSSHKey      = "IPSHOW_TEST_SSH_KEY"
)

// SSHTarget returns the connection parameters of the e2e SSH host, or
// ok=false when IPSHOW_TEST_SSH_ADDR is unset.
func SSHTarget() (cfg remote.Config, ok bool) {
	addr := os.Getenv(EnvSSHAddr)
	if addr == "" {
		return remote.Config{}, false
	}

	cfg = remote.Config{
		Host:     addr,
		User:     os.Getenv(EnvSSHUser),
		Password: os.Getenv(EnvSSHPassword),
		KeyFile:  os.Getenv(EnvSSHKey),
		Timeout:  10 * time.Second,
	}
	if host, port, err := net.SplitHostPort(addr); err == nil {
		cfg.Host = host
		cfg.Port, _ = strconv.Atoi(port)
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("USER")
	}
	return cfg, true
}

// SkipIfNoSSH skips the test unless the e2e SSH host is configured and
// accepts TCP connections.
func SkipIfNoSSH(t *testing.T) remote.Config {
	t.Helper()

	cfg, ok := SSHTarget()
	if !ok {
		t.Skipf("e2e SSH host not configured: set %s", EnvSSHAddr)
	}

	conn, err := net.DialTimeout("tcp", cfg.Addr(), 2*time.Second)
	if err != nil {
		t.Skipf("e2e SSH host not reachable at %s: %v", cfg.Addr(), err)
	}
	conn.Close()
	return cfg
}

// Context returns a context with a reasonable timeout for tests.
// The cancel function is registered via t.Cleanup.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
