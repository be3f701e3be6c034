package ipaddr

import (
	"strconv"
	"strings"

	"github.com/newtron-network/ipshow/pkg/util"
)

// Header keywords that take the following token as their value.
const (
	kwMTU   = "mtu"
	kwQdisc = "qdisc"
	kwState = "state"
	kwGroup = "group"
	kwQlen  = "qlen"
)

// extractHeader maps a header line onto BaseParams. It never fails: a
// token it cannot place becomes an UnknownParam and the field stays unset.
func extractHeader(line string) BaseParams {
	var b BaseParams
	tokens := strings.Fields(line)
	indexSet, nameSet := false, false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch kw := strings.ToLower(tok); kw {
		case kwMTU, kwQdisc, kwState, kwGroup, kwQlen:
			if i+1 >= len(tokens) {
				b.addUnknown(tok, "missing value")
				continue
			}
			i++
			extractHeaderValue(&b, kw, tokens[i])
			continue
		}

		switch {
		case !indexSet && headerPattern.MatchString(tok) && strings.HasSuffix(tok, ":"):
			idx, err := strconv.Atoi(strings.TrimSuffix(tok, ":"))
			if err != nil {
				b.addUnknown(tok, "invalid interface index")
				continue
			}
			b.Index = idx
			indexSet = true
		case !nameSet && len(tok) > 1 && strings.HasSuffix(tok, ":"):
			b.Name = strings.TrimSuffix(tok, ":")
			nameSet = true
		case len(tok) >= 2 && strings.HasPrefix(tok, "<") && strings.HasSuffix(tok, ">"):
			for _, f := range util.SplitCommaSeparated(tok[1 : len(tok)-1]) {
				flag, ok := LookupFlag(f)
				if !ok {
					b.addUnknown(f, "unknown interface flag")
					continue
				}
				b.Flags = append(b.Flags, flag)
			}
		default:
			b.addUnknown(tok, "unrecognized header token")
		}
	}
	return b
}

func extractHeaderValue(b *BaseParams, keyword, value string) {
	switch keyword {
	case kwMTU:
		mtu, err := strconv.Atoi(value)
		if err != nil || mtu <= 0 {
			b.addUnknown(value, "invalid MTU")
			return
		}
		b.MTU = mtu
	case kwQdisc:
		qdisc, ok := LookupQdisc(value)
		if !ok {
			b.addUnknown(value, "unknown qdisc")
			return
		}
		b.Qdisc = qdisc
	case kwState:
		state, ok := LookupState(value)
		if !ok {
			b.addUnknown(value, "unknown interface state")
			return
		}
		b.State = state
	case kwGroup:
		b.Group = value
	case kwQlen:
		qlen, err := strconv.Atoi(value)
		if err != nil || qlen < 0 {
			b.addUnknown(value, "invalid queue length")
			return
		}
		b.Qlen = &qlen
	}
}

// extractLink maps "link/<type> [<mac> [brd <mac>]] ..." onto
// PhysicalParams. Link types other than ether (ipip, gre, none) carry
// non-MAC addresses; those are rejected by validation and kept as
// UnknownParams.
func extractLink(line string) PhysicalParams {
	var p PhysicalParams
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return p
	}

	_, linkType, _ := strings.Cut(tokens[0], "/")
	p.LinkType = strings.ToLower(linkType)

	rest := tokens[1:]
	if len(rest) > 0 && !strings.EqualFold(rest[0], "brd") {
		p.MAC = validatedMAC(&p, rest[0])
		rest = rest[1:]
	}
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if strings.EqualFold(tok, "brd") {
			if i+1 >= len(rest) {
				p.addUnknown(tok, "missing value")
				continue
			}
			i++
			p.BroadcastMAC = validatedMAC(&p, rest[i])
			continue
		}
		p.addUnknown(tok, "unrecognized link token")
	}
	return p
}

func validatedMAC(p *PhysicalParams, value string) string {
	if err := util.ValidateMAC(value); err != nil {
		p.addUnknown(value, err.Error())
		return ""
	}
	return strings.ToLower(value)
}

// splitPrefix splits "addr/prefix". A missing prefix yields hasPrefix=false.
func splitPrefix(s string) (addr, prefix string, hasPrefix bool) {
	return strings.Cut(s, "/")
}

// extractIPv4 maps
//
//	inet <addr>/<prefix> [peer <addr>/<prefix>] [brd <addr>] scope <scope> [<token>...]
//
// onto an IPv4Config. After the scope value the last token is the device
// label; any tokens between (secondary, dynamic, noprefixroute) are kept
// as UnknownParams. An invalid address leaves Address empty but keeps the
// entry.
func extractIPv4(line string) *IPv4Config {
	c := &IPv4Config{}
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		c.addUnknown(line, "missing address")
		return c
	}

	addr, prefix, hasPrefix := splitPrefix(tokens[1])
	c.Address = validatedIPv4(c, addr)
	if hasPrefix {
		c.Prefix = parsePrefix(prefix, c.addUnknown)
	}

	for i := 2; i < len(tokens); i++ {
		tok := tokens[i]
		kw := strings.ToLower(tok)
		switch kw {
		case "brd", "peer", "scope":
		default:
			c.addUnknown(tok, "unrecognized inet token")
			continue
		}
		if i+1 >= len(tokens) {
			c.addUnknown(tok, "missing value")
			continue
		}
		i++
		value := tokens[i]

		switch kw {
		case "brd":
			c.Broadcast = validatedIPv4(c, value)
		case "peer":
			peer, peerPrefix, ok := splitPrefix(value)
			c.Peer = validatedIPv4(c, peer)
			if ok && !hasPrefix {
				c.Prefix = parsePrefix(peerPrefix, c.addUnknown)
			}
		case "scope":
			if scope, ok := LookupIPv4Scope(value); ok {
				c.Scope = scope
			} else {
				c.addUnknown(value, "unknown IPv4 scope")
			}
			trailing := tokens[i+1:]
			if len(trailing) > 0 {
				for _, t := range trailing[:len(trailing)-1] {
					c.addUnknown(t, "unrecognized inet token")
				}
				c.Device = trailing[len(trailing)-1]
			}
			return c
		}
	}
	return c
}

func validatedIPv4(c *IPv4Config, value string) string {
	if err := util.ValidateIPv4(value); err != nil {
		c.addUnknown(value, err.Error())
		return ""
	}
	return value
}

func parsePrefix(s string, addUnknown func(token, reason string)) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		addUnknown("/"+s, "invalid prefix length")
		return 0
	}
	return n
}

// extractIPv6 maps "inet6 <addr>/<prefix> scope <token>..." onto an
// IPv6Config. Every token after "scope" is tried as an IPv6 scope tag,
// then as "noprefixroute", else kept as an UnknownParam.
func extractIPv6(line string) *IPv6Config {
	c := &IPv6Config{}
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		c.addUnknown(line, "missing address")
		return c
	}

	addr, prefix, hasPrefix := splitPrefix(tokens[1])
	if err := util.ValidateIPv6(addr); err != nil {
		c.addUnknown(addr, err.Error())
	} else {
		c.Address = addr
	}
	if hasPrefix {
		c.Prefix = parsePrefix(prefix, c.addUnknown)
	}

	inScope := false
	for _, tok := range tokens[2:] {
		if !inScope {
			if strings.EqualFold(tok, "scope") {
				inScope = true
				continue
			}
			c.addUnknown(tok, "unrecognized inet6 token")
			continue
		}
		if scope, ok := LookupIPv6Scope(tok); ok {
			c.Scopes = append(c.Scopes, scope)
			continue
		}
		if strings.EqualFold(tok, "noprefixroute") {
			c.NoPrefixRoute = true
			c.RouteFlags = append(c.RouteFlags, RouteNoPrefixRoute)
			continue
		}
		c.addUnknown(tok, "unrecognized inet6 token")
	}
	return c
}

// extractLifetime maps "valid_lft <tok> preferred_lft <tok>" onto a
// Lifetime, keeping both values as literal tokens.
func extractLifetime(line string) *Lifetime {
	l := &Lifetime{}
	tokens := strings.Fields(line)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		kw := strings.ToLower(tok)
		if kw != "valid_lft" && kw != "preferred_lft" {
			l.addUnknown(tok, "unrecognized lifetime token")
			continue
		}
		if i+1 >= len(tokens) {
			l.addUnknown(tok, "missing value")
			continue
		}
		i++
		if kw == "valid_lft" {
			l.Valid = tokens[i]
		} else {
			l.Preferred = tokens[i]
		}
	}
	return l
}
