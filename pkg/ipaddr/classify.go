package ipaddr

import (
	"regexp"

	"github.com/newtron-network/ipshow/pkg/util"
)

// lineKind is the shape of one trimmed, non-blank line of `ip a` output.
type lineKind int

const (
	lineUnknown  lineKind = iota
	lineHeader            // 2: eth0: <BROADCAST,...> mtu 1500 ...
	lineLink              // link/ether 52:54:00:12:34:56 brd ff:ff:ff:ff:ff:ff
	lineInet              // inet 10.0.0.5/24 brd 10.0.0.255 scope global eth0
	lineInet6             // inet6 fe80::1/64 scope link
	lineLifetime          // valid_lft forever preferred_lft forever
)

func (k lineKind) String() string {
	switch k {
	case lineHeader:
		return "header"
	case lineLink:
		return "link"
	case lineInet:
		return "inet"
	case lineInet6:
		return "inet6"
	case lineLifetime:
		return "lifetime"
	default:
		return "unknown"
	}
}

var headerPattern = regexp.MustCompile(`^\d+:`)

// classify decides the kind of a trimmed line. Checks run in priority
// order; "inet" only matches when followed by whitespace so that inet6
// lines never classify as IPv4.
func classify(line string) lineKind {
	switch {
	case headerPattern.MatchString(line):
		return lineHeader
	case util.HasPrefixFold(line, "link/"):
		return lineLink
	case hasKeyword(line, "inet"):
		return lineInet
	case hasKeyword(line, "inet6"):
		return lineInet6
	case hasKeyword(line, "valid_lft"), hasKeyword(line, "preferred_lft"):
		return lineLifetime
	}
	return lineUnknown
}

// hasKeyword reports whether line starts with keyword (any case) followed
// by whitespace or end of line.
func hasKeyword(line, keyword string) bool {
	if !util.HasPrefixFold(line, keyword) {
		return false
	}
	if len(line) == len(keyword) {
		return true
	}
	c := line[len(keyword)]
	return c == ' ' || c == '\t'
}
