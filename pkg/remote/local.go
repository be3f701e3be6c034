package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/newtron-network/ipshow/pkg/util"
)

// Local runs commands on this machine through /bin/sh, so command strings
// behave the same as over SSH.
type Local struct {
	Shell string // defaults to "sh"
}

// Run executes command and waits for it to exit.
func (l Local) Run(ctx context.Context, command string) (*Result, error) {
	shell := l.Shell
	if shell == "" {
		shell = "sh"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of the shell may hold the pipes open after it is killed
	cmd.WaitDelay = time.Second

	util.WithCommand(command).Debug("local exec")
	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("exec '%s': %w", command, ctx.Err())
	}

	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitStatus = exitErr.ExitCode()
	default:
		return nil, fmt.Errorf("exec '%s': %w", command, err)
	}
	return result, nil
}
