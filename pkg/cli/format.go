// Package cli provides terminal formatting helpers for the lglass CLI.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// colorEnabled is false when NO_COLOR env var is set (per no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
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

// Green wraps s in ANSI green. Returns s unchanged when NO_COLOR is set.
func Green(s string) string { return paint(ansiGreen, s) }

// Yellow wraps s in ANSI yellow.
func Yellow(s string) string { return paint(ansiYellow, s) }

// Red wraps s in ANSI red.
func Red(s string) string { return paint(ansiRed, s) }

// Bold wraps s in ANSI bold.
func Bold(s string) string { return paint(ansiBold, s) }

// Dim wraps s in ANSI dim.
func Dim(s string) string { return paint(ansiDim, s) }

// StatusColor colors s by verdict status: success green, warning yellow,
// danger (and anything unrecognised) red.
func StatusColor(status, s string) string {
	switch status {
	case "success":
		return Green(s)
	case "warning":
		return Yellow(s)
	default:
		return Red(s)
	}
}

// DotPad pads name with dots to the given width.
// Example: DotPad("address", 16) → "address ........"
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	return name + " " + strings.Repeat(".", width-len(name)-1)
}

// KeyValue writes one dot-padded "key ..... value" line.
func KeyValue(w io.Writer, key, value string, width int) {
	if value == "" {
		value = Dim("-")
	}
	fmt.Fprintf(w, "%s %s\n", DotPad(key, width), value)
}
