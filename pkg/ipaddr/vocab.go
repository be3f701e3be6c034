package ipaddr

import (
	"strings"

	"github.com/newtron-network/ipshow/pkg/util"
)

// vocabulary is a closed, case-insensitive token set. Surface forms are
// stored upper-cased; aliases map an alternate spelling onto a variant.
type vocabulary[T ~string] struct {
	name    string
	members map[string]T
}

func newVocabulary[T ~string](name string, variants ...T) *vocabulary[T] {
	v := &vocabulary[T]{name: name, members: make(map[string]T, len(variants))}
	for _, variant := range variants {
		v.members[strings.ToUpper(string(variant))] = variant
	}
	return v
}

func (v *vocabulary[T]) alias(surface string, variant T) *vocabulary[T] {
	v.members[strings.ToUpper(surface)] = variant
	return v
}

func (v *vocabulary[T]) lookup(token string) (T, bool) {
	variant, ok := v.members[strings.ToUpper(token)]
	return variant, ok
}

func (v *vocabulary[T]) parse(token string) (T, error) {
	if variant, ok := v.lookup(token); ok {
		return variant, nil
	}
	var zero T
	return zero, util.NewVocabularyError(v.name, token)
}

// ============================================================================
// Interface flags
// ============================================================================

// Flag is a link flag from the "<...>" list of an interface header.
type Flag string

const (
	FlagUp           Flag = "UP"
	FlagBroadcast    Flag = "BROADCAST"
	FlagDebug        Flag = "DEBUG"
	FlagLoopback     Flag = "LOOPBACK"
	FlagPointToPoint Flag = "POINTOPOINT"
	FlagNoTrailers   Flag = "NOTRAILERS"
	FlagRunning      Flag = "RUNNING"
	FlagNoARP        Flag = "NOARP"
	FlagPromisc      Flag = "PROMISC"
	FlagAllMulti     Flag = "ALLMULTI"
	FlagMaster       Flag = "MASTER"
	FlagSlave        Flag = "SLAVE"
	FlagMulticast    Flag = "MULTICAST"
	FlagPortSel      Flag = "PORTSEL"
	FlagAutoMedia    Flag = "AUTOMEDIA"
	FlagDynamic      Flag = "DYNAMIC"
	FlagLowerUp      Flag = "LOWER_UP"
	FlagDormant      Flag = "DORMANT"
	FlagEcho         Flag = "ECHO"
	FlagNoCarrier    Flag = "NO_CARRIER"
	FlagMDown        Flag = "M_DOWN"
)

// iproute2 prints NO-CARRIER and M-DOWN with hyphens
var flagVocabulary = newVocabulary("interface flag",
	FlagUp, FlagBroadcast, FlagDebug, FlagLoopback, FlagPointToPoint,
	FlagNoTrailers, FlagRunning, FlagNoARP, FlagPromisc, FlagAllMulti,
	FlagMaster, FlagSlave, FlagMulticast, FlagPortSel, FlagAutoMedia,
	FlagDynamic, FlagLowerUp, FlagDormant, FlagEcho, FlagNoCarrier, FlagMDown,
).alias("NO-CARRIER", FlagNoCarrier).alias("M-DOWN", FlagMDown)

// IsFlag reports whether token names an interface flag.
func IsFlag(token string) bool { _, ok := flagVocabulary.lookup(token); return ok }

// LookupFlag returns the flag named by token.
func LookupFlag(token string) (Flag, bool) { return flagVocabulary.lookup(token) }

// ParseFlag is LookupFlag returning a *util.VocabularyError for non-members.
func ParseFlag(token string) (Flag, error) { return flagVocabulary.parse(token) }

// ============================================================================
// Operational state
// ============================================================================

// State is the operational state reported after the "state" keyword.
type State string

const (
	StateUp        State = "UP"
	StateDown      State = "DOWN"
	StateUnknown   State = "UNKNOWN"
	StateLowerUp   State = "LOWER_UP"
	StateNoCarrier State = "NO_CARRIER"
	StateDormant   State = "DORMANT"
)

var stateVocabulary = newVocabulary("interface state",
	StateUp, StateDown, StateUnknown, StateLowerUp, StateNoCarrier, StateDormant,
).alias("NO-CARRIER", StateNoCarrier)

// IsState reports whether token names an operational state.
func IsState(token string) bool { _, ok := stateVocabulary.lookup(token); return ok }

// LookupState returns the state named by token.
func LookupState(token string) (State, bool) { return stateVocabulary.lookup(token) }

// ParseState is LookupState returning a *util.VocabularyError for non-members.
func ParseState(token string) (State, error) { return stateVocabulary.parse(token) }

// ============================================================================
// Queueing disciplines
// ============================================================================

// Qdisc is a Linux queueing discipline (see tc(8)).
type Qdisc string

const (
	QdiscPfifo     Qdisc = "PFIFO"
	QdiscBfifo     Qdisc = "BFIFO"
	QdiscPfifoFast Qdisc = "PFIFO_FAST"
	QdiscTBF       Qdisc = "TBF"
	QdiscSFQ       Qdisc = "SFQ"
	QdiscRED       Qdisc = "RED"
	QdiscFQ        Qdisc = "FQ"
	QdiscFQCodel   Qdisc = "FQ_CODEL"
	QdiscCake      Qdisc = "CAKE"
	QdiscNoqueue   Qdisc = "NOQUEUE"
	QdiscNoop      Qdisc = "NOOP"
	QdiscCodel     Qdisc = "CODEL"
	QdiscPlug      Qdisc = "PLUG"
	QdiscGRED      Qdisc = "GRED"
	QdiscDSMark    Qdisc = "DSMARK"
	QdiscQFQ       Qdisc = "QFQ"
	QdiscHTB       Qdisc = "HTB"
	QdiscCBQ       Qdisc = "CBQ"
	QdiscPrio      Qdisc = "PRIO"
	QdiscMQ        Qdisc = "MQ"
	QdiscDRR       Qdisc = "DRR"
	QdiscHFSC      Qdisc = "HFSC"
	QdiscATM       Qdisc = "ATM"
	QdiscNetem     Qdisc = "NETEM"
	QdiscTEQL      Qdisc = "TEQL"
	QdiscIngress   Qdisc = "INGRESS"
	QdiscClsact    Qdisc = "CLSACT"
	QdiscMQPrio    Qdisc = "MQPRIO"
	QdiscETF       Qdisc = "ETF"
	QdiscTAPrio    Qdisc = "TAPRIO"
)

var qdiscVocabulary = newVocabulary("qdisc",
	QdiscPfifo, QdiscBfifo, QdiscPfifoFast, QdiscTBF, QdiscSFQ, QdiscRED,
	QdiscFQ, QdiscFQCodel, QdiscCake, QdiscNoqueue, QdiscNoop, QdiscCodel,
	QdiscPlug, QdiscGRED, QdiscDSMark, QdiscQFQ, QdiscHTB, QdiscCBQ,
	QdiscPrio, QdiscMQ, QdiscDRR, QdiscHFSC, QdiscATM, QdiscNetem,
	QdiscTEQL, QdiscIngress, QdiscClsact, QdiscMQPrio, QdiscETF, QdiscTAPrio,
)

// IsQdisc reports whether token names a queueing discipline.
func IsQdisc(token string) bool { _, ok := qdiscVocabulary.lookup(token); return ok }

// LookupQdisc returns the queueing discipline named by token.
func LookupQdisc(token string) (Qdisc, bool) { return qdiscVocabulary.lookup(token) }

// ParseQdisc is LookupQdisc returning a *util.VocabularyError for non-members.
func ParseQdisc(token string) (Qdisc, error) { return qdiscVocabulary.parse(token) }

// ============================================================================
// Address scopes
// ============================================================================

// IPv4Scope is the scope of an IPv4 address.
type IPv4Scope string

const (
	IPv4ScopeGlobal IPv4Scope = "GLOBAL"
	IPv4ScopeSite   IPv4Scope = "SITE"
	IPv4ScopeLink   IPv4Scope = "LINK"
	IPv4ScopeHost   IPv4Scope = "HOST"
)

var ipv4ScopeVocabulary = newVocabulary("IPv4 scope",
	IPv4ScopeGlobal, IPv4ScopeSite, IPv4ScopeLink, IPv4ScopeHost,
)

// IsIPv4Scope reports whether token names an IPv4 scope.
func IsIPv4Scope(token string) bool { _, ok := ipv4ScopeVocabulary.lookup(token); return ok }

// LookupIPv4Scope returns the IPv4 scope named by token.
func LookupIPv4Scope(token string) (IPv4Scope, bool) { return ipv4ScopeVocabulary.lookup(token) }

// ParseIPv4Scope is LookupIPv4Scope returning a *util.VocabularyError for non-members.
func ParseIPv4Scope(token string) (IPv4Scope, error) { return ipv4ScopeVocabulary.parse(token) }

// IPv6Scope is a scope-like tag on an inet6 line. One address may carry
// several (e.g. GLOBAL and DYNAMIC).
type IPv6Scope string

const (
	IPv6ScopeGlobal     IPv6Scope = "GLOBAL"
	IPv6ScopeLink       IPv6Scope = "LINK"
	IPv6ScopeHost       IPv6Scope = "HOST"
	IPv6ScopeSite       IPv6Scope = "SITE"
	IPv6ScopeUniverse   IPv6Scope = "UNIVERSE"
	IPv6ScopeMngTmpAddr IPv6Scope = "MNGTMPADDR"
	IPv6ScopeCompat     IPv6Scope = "COMPAT"
	IPv6ScopeDynamic    IPv6Scope = "DYNAMIC"
)

var ipv6ScopeVocabulary = newVocabulary("IPv6 scope",
	IPv6ScopeGlobal, IPv6ScopeLink, IPv6ScopeHost, IPv6ScopeSite,
	IPv6ScopeUniverse, IPv6ScopeMngTmpAddr, IPv6ScopeCompat, IPv6ScopeDynamic,
)

// IsIPv6Scope reports whether token names an IPv6 scope tag.
func IsIPv6Scope(token string) bool { _, ok := ipv6ScopeVocabulary.lookup(token); return ok }

// LookupIPv6Scope returns the IPv6 scope tag named by token.
func LookupIPv6Scope(token string) (IPv6Scope, bool) { return ipv6ScopeVocabulary.lookup(token) }

// ParseIPv6Scope is LookupIPv6Scope returning a *util.VocabularyError for non-members.
func ParseIPv6Scope(token string) (IPv6Scope, error) { return ipv6ScopeVocabulary.parse(token) }

// ============================================================================
// IPv6 address flags
// ============================================================================

// GenerationFlag describes how an IPv6 address was generated.
type GenerationFlag string

const (
	GenerationNone          GenerationFlag = "NONE"
	GenerationEUI64         GenerationFlag = "EUI64"
	GenerationTemporary     GenerationFlag = "TEMPORARY"
	GenerationStablePrivacy GenerationFlag = "STABLE_PRIVACY"
	GenerationDynamic       GenerationFlag = "DYNAMIC"
	GenerationManual        GenerationFlag = "MANUAL"
)

var generationFlagVocabulary = newVocabulary("IPv6 generation flag",
	GenerationNone, GenerationEUI64, GenerationTemporary,
	GenerationStablePrivacy, GenerationDynamic, GenerationManual,
).alias("stable-privacy", GenerationStablePrivacy)

// IsGenerationFlag reports whether token names a generation flag.
func IsGenerationFlag(token string) bool {
	_, ok := generationFlagVocabulary.lookup(token)
	return ok
}

// LookupGenerationFlag returns the generation flag named by token. The CLI
// spelling "stable-privacy" maps to GenerationStablePrivacy.
func LookupGenerationFlag(token string) (GenerationFlag, bool) {
	return generationFlagVocabulary.lookup(token)
}

// ParseGenerationFlag is LookupGenerationFlag returning a *util.VocabularyError for non-members.
func ParseGenerationFlag(token string) (GenerationFlag, error) {
	return generationFlagVocabulary.parse(token)
}

// RouteFlag is a prefix-route or DAD flag on an IPv6 address.
type RouteFlag string

const (
	RouteNone          RouteFlag = "NONE"
	RouteNoPrefixRoute RouteFlag = "NOPREFIXROUTE"
	RouteNoDAD         RouteFlag = "NODAD"
	RouteOptimistic    RouteFlag = "OPTIMISTIC"
	RouteAutoconf      RouteFlag = "AUTOCONF"
)

var routeFlagVocabulary = newVocabulary("IPv6 route flag",
	RouteNone, RouteNoPrefixRoute, RouteNoDAD, RouteOptimistic, RouteAutoconf,
)

// IsRouteFlag reports whether token names a route flag.
func IsRouteFlag(token string) bool { _, ok := routeFlagVocabulary.lookup(token); return ok }

// LookupRouteFlag returns the route flag named by token.
func LookupRouteFlag(token string) (RouteFlag, bool) { return routeFlagVocabulary.lookup(token) }

// ParseRouteFlag is LookupRouteFlag returning a *util.VocabularyError for non-members.
func ParseRouteFlag(token string) (RouteFlag, error) { return routeFlagVocabulary.parse(token) }
