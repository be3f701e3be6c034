package ipaddr

import (
	"context"
	"fmt"

	"github.com/newtron-network/ipshow/pkg/remote"
	"github.com/newtron-network/ipshow/pkg/util"
)

// Command is the command Show runs on the target.
const Command = "ip a"

// Show runs `ip a` through runner and parses its output. A non-zero exit
// status is returned as a *util.CommandError carrying the remote stderr;
// stdout is only parsed after the command has exited successfully.
func Show(ctx context.Context, runner remote.Runner) ([]*Interface, error) {
	res, err := runner.Run(ctx, Command)
	if err != nil {
		return nil, fmt.Errorf("running '%s': %w", Command, err)
	}
	if !res.Success() {
		return nil, util.NewCommandError(Command, res.ExitStatus, res.Stderr)
	}

	interfaces, err := Parse(res.Stdout)
	if err != nil {
		return nil, fmt.Errorf("parsing '%s' output: %w", Command, err)
	}
	return interfaces, nil
}
