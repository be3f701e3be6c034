package util

import (
	"regexp"
	"strings"
)

const octet = `(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)`

var (
	ipv4Pattern = regexp.MustCompile(`^(?:` + octet + `\.){3}` + octet + `$`)

	ipv6FullPattern     = regexp.MustCompile(`^(?:[0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)
	ipv6ShortPattern    = regexp.MustCompile(`^(?:(?:[0-9a-fA-F]{1,4}:){0,6}[0-9a-fA-F]{1,4})?::(?:(?:[0-9a-fA-F]{1,4}:){0,6}[0-9a-fA-F]{1,4})?$`)
	ipv6EmbeddedPattern = regexp.MustCompile(`^::[fF]{4}:(?:` + octet + `\.){3}` + octet + `$`)

	// colon/hyphen separated, Cisco dotted, bare hex
	macPattern = regexp.MustCompile(`^(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}$` +
		`|^[0-9A-Fa-f]{4}\.[0-9A-Fa-f]{4}\.[0-9A-Fa-f]{4}$` +
		`|^[0-9A-Fa-f]{12}$`)
)

// ValidateIPv4 checks that s is a dotted-quad IPv4 address with octets 0-255.
// Returns a *FormatError for blank or malformed input.
func ValidateIPv4(s string) error {
	return validate("IPv4", s, ipv4Pattern)
}

// ValidateIPv6 checks that s is an IPv6 address in full 8-group form,
// "::" compressed form, or the IPv4-mapped form "::ffff:a.b.c.d".
func ValidateIPv6(s string) error {
	return validate("IPv6", s, ipv6FullPattern, ipv6ShortPattern, ipv6EmbeddedPattern)
}

// ValidateMAC checks that s is a 48-bit MAC address. Accepted forms:
// "00:1a:2b:3c:4d:5e", "00-1a-2b-3c-4d-5e", "001a.2b3c.4d5e", "001a2b3c4d5e".
func ValidateMAC(s string) error {
	return validate("MAC", s, macPattern)
}

func validate(kind, s string, patterns ...*regexp.Regexp) error {
	v := strings.TrimSpace(s)
	if v == "" {
		return NewFormatError(kind, s)
	}
	for _, p := range patterns {
		if p.MatchString(v) {
			return nil
		}
	}
	return NewFormatError(kind, s)
}
