// Package cli provides shared output helpers for the ipshow CLI: colour,
// tables, structured encodings and jq filtering.
package cli

import "os"

// colorEnabled is false when NO_COLOR is set (no-color.org) or when
// SetColor turned it off.
var colorEnabled = os.Getenv("NO_COLOR") == ""

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + ansiReset
}

func Green(s string) string  { return paint(ansiGreen, s) }
func Yellow(s string) string { return paint(ansiYellow, s) }
func Red(s string) string    { return paint(ansiRed, s) }
func Bold(s string) string   { return paint(ansiBold, s) }

// SetColor forces colour on or off, e.g. off when stdout is not a terminal.
// NO_COLOR still wins.
func SetColor(enabled bool) {
	colorEnabled = enabled && os.Getenv("NO_COLOR") == ""
}
