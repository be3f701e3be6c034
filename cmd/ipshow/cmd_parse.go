package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ipshow/pkg/ipaddr"
)

func newParseCmd() *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse saved 'ip a' output",
		Long: `Parse 'ip a' output from a file, or from stdin when the file is
omitted or '-'. No connection is made.

  ip a | ipshow parse -o json
  ipshow parse captured/leaf1.txt --jq '.[].ipv4[]?.address'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.resolve(loadSettings()); err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			ifaces, err := parseReader(in)
			if err != nil {
				return err
			}
			return writeInterfaces(cmd.OutOrStdout(), cmd.ErrOrStderr(), ifaces, out)
		},
	}

	out.addFlags(cmd)
	return cmd
}

// parseReader reads r to EOF and parses it; the parser never sees partial input.
func parseReader(r io.Reader) ([]*ipaddr.Interface, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ipaddr.Parse(string(data))
}
