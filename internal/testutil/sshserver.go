package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"net"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/newtron-network/ipshow/pkg/remote"
)

// SSHUser and SSHPassword are the credentials SSHServer accepts.
const (
	SSHUser     = "admin"
	SSHPassword = "secret"
)

// ExecHandler answers one exec request with stdout, stderr and an exit status.
type ExecHandler func(command string) (stdout, stderr string, status uint32)

// SSHServer is a minimal in-process SSH server for exec requests. It
// accepts password auth for SSHUser/SSHPassword only.
type SSHServer struct {
	HostKey ssh.Signer

	listener net.Listener
	config   *ssh.ServerConfig
	handler  ExecHandler
}

// NewSSHServer starts a server on 127.0.0.1. It is closed on test cleanup.
func NewSSHServer(t *testing.T, handler ExecHandler) *SSHServer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatal(err)
	}

	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == SSHUser && string(pass) == SSHPassword {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %s", c.User())
		},
	}
	config.AddHostKey(signer)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	s := &SSHServer{HostKey: signer, listener: l, config: config, handler: handler}
	go s.serve()
	t.Cleanup(func() { l.Close() })
	return s
}

// Config returns connection parameters for the server without a password.
func (s *SSHServer) Config() remote.Config {
	host, port, _ := net.SplitHostPort(s.listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return remote.Config{Host: host, Port: p, User: SSHUser, Timeout: 5 * time.Second}
}

func (s *SSHServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *SSHServer) handleConn(conn net.Conn) {
	_, chans, reqs, err := ssh.NewServerConn(conn, s.config)
	if err != nil {
		conn.Close()
		return
	}
	go ssh.DiscardRequests(reqs)

	for newCh := range chans {
		if newCh.ChannelType() != "session" {
			newCh.Reject(ssh.UnknownChannelType, "unsupported")
			continue
		}
		ch, requests, err := newCh.Accept()
		if err != nil {
			continue
		}
		go s.handleSession(ch, requests)
	}
}

func (s *SSHServer) handleSession(ch ssh.Channel, requests <-chan *ssh.Request) {
	defer ch.Close()
	for req := range requests {
		if req.Type != "exec" {
			req.Reply(false, nil)
			continue
		}
		var payload struct{ Command string }
		if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
			req.Reply(false, nil)
			return
		}
		req.Reply(true, nil)

		stdout, stderr, status := s.handler(payload.Command)
		ch.Write([]byte(stdout))
		ch.Stderr().Write([]byte(stderr))
		ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
		return
	}
}
