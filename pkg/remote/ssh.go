package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/newtron-network/ipshow/pkg/util"
)

// Client is an SSH connection that runs one session per command.
type Client struct {
	cfg    Config
	client *ssh.Client
}

// ClientConfig builds the ssh.ClientConfig for cfg. Password and key-file
// auth are both offered when set. Without a known_hosts file host keys are
// not verified.
func ClientConfig(cfg Config) (*ssh.ClientConfig, error) {
	var auth []ssh.AuthMethod
	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file %s: %w", cfg.KeyFile, err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parsing key file %s: %w", cfg.KeyFile, err)
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auth = append(auth, ssh.Password(cfg.Password))
	}
	if len(auth) == 0 {
		return nil, fmt.Errorf("no SSH auth method for %s@%s: set a password or key file", cfg.User, cfg.Addr())
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if cfg.KnownHosts != "" {
		cb, err := knownhosts.New(cfg.KnownHosts)
		if err != nil {
			return nil, fmt.Errorf("loading known_hosts %s: %w", cfg.KnownHosts, err)
		}
		hostKeyCallback = cb
	} else {
		util.WithHost(cfg.Addr()).Warn("SSH host key verification disabled (no known_hosts configured)")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}, nil
}

// Dial connects and authenticates to cfg.Addr(). The context bounds the
// TCP connect and the SSH handshake.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	config, err := ClientConfig(cfg)
	if err != nil {
		return nil, err
	}

	addr := cfg.Addr()
	util.WithHost(addr).Debugf("SSH dial as %s", cfg.User)

	dialer := net.Dialer{Timeout: config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s@%s: %w", cfg.User, addr, err)
	}

	// NewClientConn has no context parameter; closing the socket aborts
	// the handshake on cancellation.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if !stop() {
		if err == nil {
			c.Close()
		}
		return nil, fmt.Errorf("SSH handshake %s@%s: %w", cfg.User, addr, ctx.Err())
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SSH handshake %s@%s: %w", cfg.User, addr, err)
	}

	return &Client{cfg: cfg, client: ssh.NewClient(c, chans, reqs)}, nil
}

// Addr returns the address the client is connected to.
func (c *Client) Addr() string { return c.cfg.Addr() }

// Close closes the SSH connection.
func (c *Client) Close() error { return c.client.Close() }

// Run executes command in a new session. Stdout and stderr are collected
// into separate buffers; the ssh package drains both channels
// concurrently, so a command blocked writing one stream cannot stall the
// other. If ctx is cancelled the remote process is sent SIGKILL.
func (c *Client) Run(ctx context.Context, command string) (*Result, error) {
	session, err := c.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	log := util.WithHost(c.Addr()).WithField("command", command)
	log.Debug("SSH exec")

	if err := session.Start(command); err != nil {
		return nil, fmt.Errorf("SSH start '%s': %w", command, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	select {
	case <-ctx.Done():
		session.Signal(ssh.SIGKILL)
		session.Close()
		<-done
		return nil, fmt.Errorf("SSH exec '%s': %w", command, ctx.Err())
	case err := <-done:
		result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
		var exitErr *ssh.ExitError
		switch {
		case err == nil:
		case errors.As(err, &exitErr):
			result.ExitStatus = exitErr.ExitStatus()
		default:
			return nil, fmt.Errorf("SSH exec '%s': %w", command, err)
		}
		log.WithField("exit_status", result.ExitStatus).Debugf("SSH exec finished (%d bytes stdout)", stdout.Len())
		return result, nil
	}
}
