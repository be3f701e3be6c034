// Package ipaddr parses the text output of `ip a` (ip address show) into
// a typed model of interfaces and their IPv4/IPv6 address configuration.
//
// Parsing is lenient: tokens outside a known vocabulary and malformed
// addresses are kept as UnknownParams on the record they appeared in, and
// lines that fit no known shape are kept as UnknownLines. Only a line that
// cannot be attached to any record aborts the parse.
package ipaddr

import "fmt"

// UnknownParam is a token the parser saw but could not map to a field.
type UnknownParam struct {
	Token  string `json:"token" yaml:"token"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func (u UnknownParam) String() string {
	if u.Reason == "" {
		return u.Token
	}
	return u.Token + " (" + u.Reason + ")"
}

// UnknownLine is a whole line that matched no line kind. Index is the
// 0-based position among the non-blank input lines.
type UnknownLine struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
}

// BaseParams holds the fields of the interface header line, e.g.
//
//	2: eth0: <BROADCAST,MULTICAST,UP,LOWER_UP> mtu 1500 qdisc fq_codel state UP group default qlen 1000
type BaseParams struct {
	Index         int            `json:"index" yaml:"index"`
	Name          string         `json:"name" yaml:"name"`
	Flags         []Flag         `json:"flags,omitempty" yaml:"flags,omitempty"`
	MTU           int            `json:"mtu,omitempty" yaml:"mtu,omitempty"`
	Qdisc         Qdisc          `json:"qdisc,omitempty" yaml:"qdisc,omitempty"`
	State         State          `json:"state,omitempty" yaml:"state,omitempty"`
	Group         string         `json:"group,omitempty" yaml:"group,omitempty"`
	Qlen          *int           `json:"qlen,omitempty" yaml:"qlen,omitempty"`
	UnknownParams []UnknownParam `json:"unknown_params,omitempty" yaml:"unknown_params,omitempty"`
}

// HasFlag reports whether f is among the header flags.
func (b *BaseParams) HasFlag(f Flag) bool {
	for _, flag := range b.Flags {
		if flag == f {
			return true
		}
	}
	return false
}

func (b *BaseParams) addUnknown(token, reason string) {
	b.UnknownParams = append(b.UnknownParams, UnknownParam{Token: token, Reason: reason})
}

// PhysicalParams holds the link-layer line, e.g.
//
//	link/ether 52:54:00:12:34:56 brd ff:ff:ff:ff:ff:ff
type PhysicalParams struct {
	LinkType      string         `json:"link_type,omitempty" yaml:"link_type,omitempty"`
	MAC           string         `json:"mac,omitempty" yaml:"mac,omitempty"`
	BroadcastMAC  string         `json:"broadcast_mac,omitempty" yaml:"broadcast_mac,omitempty"`
	UnknownParams []UnknownParam `json:"unknown_params,omitempty" yaml:"unknown_params,omitempty"`
}

func (p *PhysicalParams) addUnknown(token, reason string) {
	p.UnknownParams = append(p.UnknownParams, UnknownParam{Token: token, Reason: reason})
}

// Lifetime holds valid_lft/preferred_lft as the literal tokens ("forever",
// "86sec"); they are not converted to durations.
type Lifetime struct {
	Valid         string         `json:"valid_lft,omitempty" yaml:"valid_lft,omitempty"`
	Preferred     string         `json:"preferred_lft,omitempty" yaml:"preferred_lft,omitempty"`
	UnknownParams []UnknownParam `json:"unknown_params,omitempty" yaml:"unknown_params,omitempty"`
}

func (l *Lifetime) addUnknown(token, reason string) {
	l.UnknownParams = append(l.UnknownParams, UnknownParam{Token: token, Reason: reason})
}

// IPv4Config is one "inet" line plus its optional lifetime line.
type IPv4Config struct {
	Address       string         `json:"address" yaml:"address"`
	Prefix        int            `json:"prefix" yaml:"prefix"`
	Peer          string         `json:"peer,omitempty" yaml:"peer,omitempty"`
	Broadcast     string         `json:"broadcast,omitempty" yaml:"broadcast,omitempty"`
	Scope         IPv4Scope      `json:"scope,omitempty" yaml:"scope,omitempty"`
	Device        string         `json:"device,omitempty" yaml:"device,omitempty"`
	Lifetime      *Lifetime      `json:"lifetime,omitempty" yaml:"lifetime,omitempty"`
	UnknownParams []UnknownParam `json:"unknown_params,omitempty" yaml:"unknown_params,omitempty"`
}

// CIDR returns "address/prefix", or "" when the address was rejected.
func (c *IPv4Config) CIDR() string {
	if c.Address == "" {
		return ""
	}
	return fmt.Sprintf("%s/%d", c.Address, c.Prefix)
}

func (c *IPv4Config) addUnknown(token, reason string) {
	c.UnknownParams = append(c.UnknownParams, UnknownParam{Token: token, Reason: reason})
}

// IPv6Config is one "inet6" line plus its optional lifetime line.
//
// GenerationFlags and RouteFlags are part of the model but the inet6 line
// grammar only ever yields NOPREFIXROUTE; nothing else populates them.
type IPv6Config struct {
	Address         string           `json:"address" yaml:"address"`
	Prefix          int              `json:"prefix" yaml:"prefix"`
	Scopes          []IPv6Scope      `json:"scopes,omitempty" yaml:"scopes,omitempty"`
	NoPrefixRoute   bool             `json:"noprefixroute,omitempty" yaml:"noprefixroute,omitempty"`
	GenerationFlags []GenerationFlag `json:"generation_flags,omitempty" yaml:"generation_flags,omitempty"`
	RouteFlags      []RouteFlag      `json:"route_flags,omitempty" yaml:"route_flags,omitempty"`
	Lifetime        *Lifetime        `json:"lifetime,omitempty" yaml:"lifetime,omitempty"`
	UnknownParams   []UnknownParam   `json:"unknown_params,omitempty" yaml:"unknown_params,omitempty"`
}

// CIDR returns "address/prefix", or "" when the address was rejected.
func (c *IPv6Config) CIDR() string {
	if c.Address == "" {
		return ""
	}
	return fmt.Sprintf("%s/%d", c.Address, c.Prefix)
}

// HasScope reports whether s is among the scope tags.
func (c *IPv6Config) HasScope(s IPv6Scope) bool {
	for _, scope := range c.Scopes {
		if scope == s {
			return true
		}
	}
	return false
}

func (c *IPv6Config) addUnknown(token, reason string) {
	c.UnknownParams = append(c.UnknownParams, UnknownParam{Token: token, Reason: reason})
}

// Interface is one network interface from `ip a` output.
type Interface struct {
	Base         BaseParams     `json:"base" yaml:"base"`
	Physical     PhysicalParams `json:"physical" yaml:"physical"`
	IPv4         []*IPv4Config  `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
	IPv6         []*IPv6Config  `json:"ipv6,omitempty" yaml:"ipv6,omitempty"`
	UnknownLines []UnknownLine  `json:"unknown_lines,omitempty" yaml:"unknown_lines,omitempty"`
}

// Name is shorthand for Base.Name.
func (i *Interface) Name() string { return i.Base.Name }

// Diagnostics lists everything the parser kept but did not understand for
// this interface, one entry per unknown param or unknown line.
func (i *Interface) Diagnostics() []string {
	var out []string
	add := func(where string, params []UnknownParam) {
		for _, p := range params {
			out = append(out, where+": "+p.String())
		}
	}

	add("header", i.Base.UnknownParams)
	add("link", i.Physical.UnknownParams)
	for _, c := range i.IPv4 {
		add("inet "+c.Address, c.UnknownParams)
		if c.Lifetime != nil {
			add("inet "+c.Address+" lifetime", c.Lifetime.UnknownParams)
		}
	}
	for _, c := range i.IPv6 {
		add("inet6 "+c.Address, c.UnknownParams)
		if c.Lifetime != nil {
			add("inet6 "+c.Address+" lifetime", c.Lifetime.UnknownParams)
		}
	}
	for _, l := range i.UnknownLines {
		out = append(out, fmt.Sprintf("line %d: %s", l.Index, l.Text))
	}
	return out
}
