package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ipshow/pkg/cli"
	"github.com/newtron-network/ipshow/pkg/hosts"
	"github.com/newtron-network/ipshow/pkg/ipaddr"
	"github.com/newtron-network/ipshow/pkg/remote"
	"github.com/newtron-network/ipshow/pkg/util"
)

func newShowCmd() *cobra.Command {
	var (
		out        outputOptions
		local      bool
		askPass    bool
		timeout    time.Duration
		keyFile    string
		knownHosts string
	)

	cmd := &cobra.Command{
		Use:   "show [host]",
		Short: "Run 'ip a' on a host and print its interfaces",
		Long: `Connect to a host over SSH, run 'ip a' and print the parsed interfaces.

<host> is a name from the hosts file, or an ad-hoc [user@]host[:port]
target. Without <host> the default from 'ipshow settings set host' is
used.

  ipshow show spine1
  ipshow show admin@10.0.0.1:2222 --ask-pass
  ipshow show spine1 -o json --jq '.[] | select(.base.state == "UP") | .base.name'
  ipshow show --local -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings()
			if err := out.resolve(s); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			var runner remote.Runner
			if local {
				if len(args) > 0 {
					return fmt.Errorf("--local takes no host argument")
				}
				runner = remote.Local{}
			} else {
				name := s.DefaultHost
				if len(args) > 0 {
					name = args[0]
				}
				if name == "" {
					return fmt.Errorf("host required: pass <host> or run 'ipshow settings set host <name>'")
				}

				host, err := resolveHost(resolveHostsFile(s), name)
				if err != nil {
					return err
				}
				if keyFile != "" {
					host.KeyFile = keyFile
				}
				if knownHosts != "" {
					host.KnownHosts = knownHosts
				}
				if timeout > 0 {
					host.Timeout = timeout
				}
				if askPass || host.AskPass || (host.Password == "" && host.KeyFile == "") {
					pass, err := cli.ReadPassword(fmt.Sprintf("%s@%s's password: ", host.Username, host.Host))
					if err != nil {
						return err
					}
					host.Password = pass
				}

				client, err := remote.Dial(ctx, host.RemoteConfig())
				if err != nil {
					return err
				}
				defer client.Close()
				runner = client
			}

			ifaces, err := ipaddr.Show(ctx, runner)
			if err != nil {
				return err
			}
			return writeInterfaces(cmd.OutOrStdout(), cmd.ErrOrStderr(), ifaces, out)
		},
	}

	out.addFlags(cmd)
	cmd.Flags().BoolVar(&local, "local", false, "run 'ip a' on this machine instead of over SSH")
	cmd.Flags().BoolVar(&askPass, "ask-pass", false, "prompt for the SSH password")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall timeout, e.g. 10s (default: none; SSH handshake 30s)")
	cmd.Flags().StringVarP(&keyFile, "identity", "i", "", "SSH private key file")
	cmd.Flags().StringVar(&knownHosts, "known-hosts", "", "known_hosts file for host key verification")
	return cmd
}

// resolveHost looks name up in the hosts file. Names that are not in the
// file (or no file at all) are treated as ad-hoc [user@]host[:port]
// targets, with the user defaulting to $USER.
func resolveHost(path, name string) (*hosts.Host, error) {
	f, err := hosts.Load(path)
	switch {
	case err == nil:
		h, lookupErr := f.Lookup(name)
		if lookupErr == nil {
			return h, nil
		}
		if !errors.Is(lookupErr, util.ErrNotFound) {
			return nil, lookupErr
		}
	case errors.Is(err, os.ErrNotExist):
		util.WithField("path", path).Debug("no hosts file")
	default:
		return nil, err
	}

	h, err := hosts.ParseTarget(name)
	if err != nil {
		return nil, err
	}
	if h.Username == "" {
		h.Username = os.Getenv("USER")
	}
	if h.Username == "" {
		return nil, fmt.Errorf("host %q: no user given and $USER is unset (use user@host)", name)
	}
	util.WithHost(h.Host).Debugf("using ad-hoc target %s@%s:%d", h.Username, h.Host, h.Port)
	return h, nil
}
