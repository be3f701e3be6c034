package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ipshow/pkg/cli"
	"github.com/newtron-network/ipshow/pkg/hosts"
)

func newHostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hosts",
		Short: "List hosts from the hosts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := loadSettings()
			path := resolveHostsFile(s)

			f, err := hosts.Load(path)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Hosts file: %s\n\n", path)

			t := cli.NewTable(w, "NAME", "ADDRESS", "USER", "AUTH", "HOST KEY")
			for _, name := range f.Names() {
				h := f.Hosts[name]
				label := name
				if name == s.DefaultHost {
					label = name + " *"
				}
				t.Row(label, h.Host+":"+strconv.Itoa(h.Port), h.Username, authMethod(h), hostKeyMode(h))
			}
			t.Flush()
			return nil
		},
	}
}

func authMethod(h *hosts.Host) string {
	switch {
	case h.KeyFile != "" && h.Password != "":
		return "key+password"
	case h.KeyFile != "":
		return "key"
	case h.Password != "":
		return "password"
	default:
		return "prompt"
	}
}

func hostKeyMode(h *hosts.Host) string {
	if h.KnownHosts != "" {
		return "verified"
	}
	return cli.Yellow("not verified")
}
