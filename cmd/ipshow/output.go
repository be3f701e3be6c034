package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newtron-network/ipshow/pkg/cli"
	"github.com/newtron-network/ipshow/pkg/ipaddr"
	"github.com/newtron-network/ipshow/pkg/settings"
)

// outputOptions are the rendering flags shared by show and parse.
type outputOptions struct {
	format string
	jq     string
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", "", "output format: table, json or yaml (default from settings, else table)")
	cmd.Flags().StringVar(&o.jq, "jq", "", "filter the JSON model with a jq expression")
}

// resolve fills the format from settings and checks it.
func (o *outputOptions) resolve(s *settings.Settings) error {
	if o.format == "" {
		o.format = s.GetOutputFormat()
	}
	if !settings.ValidOutputFormat(o.format) {
		return fmt.Errorf("invalid output format %q (want one of %v)", o.format, settings.OutputFormats)
	}
	return nil
}

// writeInterfaces renders ifaces to out. Parser diagnostics go to errOut in
// table mode only; structured output already carries them.
func writeInterfaces(out, errOut io.Writer, ifaces []*ipaddr.Interface, o outputOptions) error {
	if o.jq != "" {
		results, err := cli.Filter(o.jq, ifaces)
		if err != nil {
			return err
		}
		format := o.format
		if format == cli.FormatTable {
			format = cli.FormatJSON
		}
		for _, r := range results {
			if err := cli.Encode(out, format, r); err != nil {
				return err
			}
		}
		return nil
	}

	if o.format != cli.FormatTable {
		return cli.Encode(out, o.format, ifaces)
	}

	writeInterfaceTable(out, ifaces)
	for _, iface := range ifaces {
		for _, d := range iface.Diagnostics() {
			fmt.Fprintf(errOut, "%s %s: %s\n", cli.Yellow("warning:"), iface.Name(), d)
		}
	}
	return nil
}

// writeInterfaceTable prints one row per address; the interface columns
// are filled on its first row only.
func writeInterfaceTable(out io.Writer, ifaces []*ipaddr.Interface) {
	t := cli.NewTable(out, "#", "NAME", "LINK", "MAC", "MTU", "ADDRESS", "STATE")
	for _, iface := range ifaces {
		addrs := addressCells(iface)
		if len(addrs) == 0 {
			addrs = []string{"-"}
		}

		mtu := "-"
		if iface.Base.MTU > 0 {
			mtu = strconv.Itoa(iface.Base.MTU)
		}
		t.Row(strconv.Itoa(iface.Base.Index), iface.Name(), dash(iface.Physical.LinkType),
			dash(iface.Physical.MAC), mtu, addrs[0], stateCell(iface))
		for _, a := range addrs[1:] {
			t.Row("", "", "", "", "", a, "")
		}
	}
	t.Flush()
}

func addressCells(iface *ipaddr.Interface) []string {
	var cells []string
	for _, c := range iface.IPv4 {
		if cidr := c.CIDR(); cidr != "" {
			cells = append(cells, cidr+scopeSuffix(strings.ToLower(string(c.Scope))))
		}
	}
	for _, c := range iface.IPv6 {
		if cidr := c.CIDR(); cidr != "" {
			scopes := make([]string, len(c.Scopes))
			for i, s := range c.Scopes {
				scopes[i] = strings.ToLower(string(s))
			}
			cells = append(cells, cidr+scopeSuffix(strings.Join(scopes, ",")))
		}
	}
	return cells
}

func scopeSuffix(scope string) string {
	if scope == "" {
		return ""
	}
	return " (" + scope + ")"
}

func stateCell(iface *ipaddr.Interface) string {
	switch iface.Base.State {
	case ipaddr.StateUp:
		return cli.Green(string(iface.Base.State))
	case ipaddr.StateDown:
		return cli.Red(string(iface.Base.State))
	case "":
		return "-"
	default:
		return cli.Yellow(string(iface.Base.State))
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
