package ipaddr

import "github.com/newtron-network/ipshow/pkg/util"

// family records which address config a lifetime line belongs to.
type family int

const (
	familyNone family = iota
	familyIPv4
	familyIPv6
)

// parseState is the per-call context of the parser. It lives on Parse's
// stack, so concurrent calls share nothing.
type parseState struct {
	interfaces []*Interface
	current    *Interface
	lastIPv4   *IPv4Config
	lastIPv6   *IPv6Config
	last       family
}

// Parse converts the complete stdout of `ip a` into interface records, in
// the order the interfaces appear.
//
// Blank input yields an empty slice. Unknown vocabulary and malformed
// addresses never fail the parse; they are kept as UnknownParams or
// UnknownLines. A line that needs an enclosing interface or address but
// has none (anything before the first header, a lifetime line before any
// inet/inet6 line) returns a *util.SequenceError.
func Parse(output string) ([]*Interface, error) {
	s := &parseState{interfaces: []*Interface{}}

	for idx, line := range util.NonBlankLines(output) {
		kind := classify(line)
		if kind == lineHeader {
			s.openInterface(line)
			continue
		}
		if s.current == nil {
			return nil, util.NewSequenceError(idx, line, "line before first interface header")
		}

		switch kind {
		case lineLink:
			if s.current.Physical.LinkType != "" {
				s.unknownLine(idx, line)
				continue
			}
			s.current.Physical = extractLink(line)
		case lineInet:
			s.lastIPv4 = extractIPv4(line)
			s.current.IPv4 = append(s.current.IPv4, s.lastIPv4)
			s.last = familyIPv4
		case lineInet6:
			s.lastIPv6 = extractIPv6(line)
			s.current.IPv6 = append(s.current.IPv6, s.lastIPv6)
			s.last = familyIPv6
		case lineLifetime:
			target := s.lifetimeTarget()
			if target == nil {
				return nil, util.NewSequenceError(idx, line, "lifetime line without an address")
			}
			if *target != nil {
				s.unknownLine(idx, line)
				continue
			}
			*target = extractLifetime(line)
		default:
			s.unknownLine(idx, line)
		}
	}

	util.WithFields(map[string]interface{}{
		"interfaces": len(s.interfaces),
	}).Debug("parsed ip address output")
	return s.interfaces, nil
}

func (s *parseState) openInterface(line string) {
	s.current = &Interface{Base: extractHeader(line)}
	s.interfaces = append(s.interfaces, s.current)
	s.lastIPv4, s.lastIPv6, s.last = nil, nil, familyNone
}

// lifetimeTarget returns the Lifetime slot of the most recently opened
// address config, or nil when the interface has none yet.
func (s *parseState) lifetimeTarget() **Lifetime {
	switch s.last {
	case familyIPv4:
		return &s.lastIPv4.Lifetime
	case familyIPv6:
		return &s.lastIPv6.Lifetime
	}
	return nil
}

func (s *parseState) unknownLine(idx int, line string) {
	util.Debugf("ip a: unrecognized line %d in %s: %q", idx, s.current.Base.Name, line)
	s.current.UnknownLines = append(s.current.UnknownLines, UnknownLine{Index: idx, Text: line})
}
