package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ipshow/pkg/cli"
	"github.com/newtron-network/ipshow/pkg/settings"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage persistent settings",
		Long: `Manage persistent settings stored in ~/.ipshow/settings.json.

Settings provide defaults for flags:
  - host:       Host used when 'ipshow show' gets no argument
  - hosts_file: Hosts file used when -H and $IPSHOW_HOSTS are unset
  - output:     Default -o format (table, json, yaml)

Examples:
  ipshow settings show
  ipshow settings set host spine1
  ipshow settings set hosts_file /etc/ipshow/hosts.yaml
  ipshow settings clear`,
	}

	cmd.AddCommand(
		newSettingsShowCmd(),
		newSettingsGetCmd(),
		newSettingsSetCmd(),
		newSettingsClearCmd(),
	)
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Settings file: %s\n\n", settings.DefaultSettingsPath())

			t := cli.NewTable(w, "SETTING", "VALUE")
			for _, key := range settings.Keys() {
				value, _ := s.Get(key)
				if value == "" {
					value = "(not set)"
				}
				t.Row(key, value)
			}
			t.Flush()
			return nil
		},
	}
}

func newSettingsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <setting>",
		Short: "Get a setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				return fmt.Errorf("loading settings: %w", err)
			}

			value, err := s.Get(args[0])
			if err != nil {
				return err
			}
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Set a setting value",
		Long: `Set a persistent setting value. An empty value unsets it.

Available settings:
  host       - Default host for 'ipshow show'
  hosts_file - Hosts file path (stored as an absolute path)
  output     - Default output format: table, json or yaml

Examples:
  ipshow settings set host spine1
  ipshow settings set output yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := settings.Load()
			if err != nil {
				s = &settings.Settings{}
			}

			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := s.Save(); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}

			value, _ := s.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to: %s\n", args[0], value)
			return nil
		},
	}
}

func newSettingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &settings.Settings{}
			if err := s.Save(); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings cleared.")
			return nil
		},
	}
}
