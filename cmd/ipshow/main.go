// ipshow - network interface inventory over SSH
//
// ipshow runs `ip a` on a host (over SSH, or locally) and turns the output
// into a typed model of interfaces, link-layer addresses and IPv4/IPv6
// configuration, printed as a table, JSON or YAML.
//
// Usage:
//
//	ipshow show <host>             Query a host from the hosts file
//	ipshow show admin@10.0.0.1     Query an ad-hoc target
//	ipshow show --local            Query this machine
//	ipshow parse saved.txt         Parse saved `ip a` output
//	ipshow hosts                   List configured hosts
//	ipshow settings set host r1    Persist defaults
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ipshow/pkg/cli"
	"github.com/newtron-network/ipshow/pkg/settings"
	"github.com/newtron-network/ipshow/pkg/util"
	"github.com/newtron-network/ipshow/pkg/version"
)

// hostsEnv overrides the hosts file when -H is not given.
const hostsEnv = "IPSHOW_HOSTS"

var (
	hostsFile string
	verbose   bool
	logFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "ipshow",
	Short:             "Network interface inventory over SSH",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `ipshow runs 'ip a' on a host and prints its interfaces, link-layer
addresses and IPv4/IPv6 configuration as a table, JSON or YAML.

Hosts are read from a YAML hosts file (-H, $IPSHOW_HOSTS, or
'ipshow settings set hosts_file <path>').

  ipshow show <host> [-o json|yaml|table] [--jq <expr>]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}
		if err := util.SetLogFormat(logFormat); err != nil {
			return err
		}
		cli.SetColor(cli.IsTerminal(os.Stdout))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&hostsFile, "hosts", "H", "", "hosts file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", util.LogFormatText, "log format on stderr: text or json")

	rootCmd.AddCommand(
		newShowCmd(),
		newParseCmd(),
		newHostsCmd(),
		newSettingsCmd(),
		newVersionCmd(),
	)
}

// resolveHostsFile picks the hosts file from: -H flag > IPSHOW_HOSTS env >
// settings > ~/.ipshow/hosts.yaml.
func resolveHostsFile(s *settings.Settings) string {
	if hostsFile != "" {
		return hostsFile
	}
	if v := os.Getenv(hostsEnv); v != "" {
		return v
	}
	return s.GetHostsFile()
}

// loadSettings returns the user settings, falling back to empty settings
// with a warning when the file is unreadable.
func loadSettings() *settings.Settings {
	s, err := settings.Load()
	if err != nil {
		util.Warnf("Could not load settings: %v", err)
		return &settings.Settings{}
	}
	return s
}

func newVersionCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" || format == cli.FormatTable {
				fmt.Fprintf(cmd.OutOrStdout(), "ipshow %s\n", version.Info())
				return nil
			}
			return cli.Encode(cmd.OutOrStdout(), format, version.Get())
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "", "output format: json or yaml")
	return cmd
}
