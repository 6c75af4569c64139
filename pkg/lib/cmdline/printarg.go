// Package cmdline checks command lines against OS size limits and renders
// arguments for display.
package cmdline

import (
	"io"
	"strings"
)

const escapedChars = "\"\\$"

// NeedsQuoting reports whether PrintArg would quote arg on its own.
func NeedsQuoting(arg string) bool {
	return strings.ContainsAny(arg, " "+escapedChars)
}

// PrintArg writes arg to w for display, wrapping it in double quotes and
// escaping '"', '\' and '$' when it contains any of them or a space, or when
// quote is set. This is a readability aid, not a shell-escaping guarantee.
func PrintArg(w io.Writer, arg string, quote bool) error {
	if !quote && !NeedsQuoting(arg) {
		_, err := io.WriteString(w, arg)
		return err
	}

	var b strings.Builder
	b.Grow(len(arg) + 2)
	b.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if strings.IndexByte(escapedChars, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	_, err := io.WriteString(w, b.String())
	return err
}

// Format renders args as one space-separated display line.
func Format(args ...string) string {
	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		// strings.Builder never fails
		_ = PrintArg(&b, arg, false)
	}
	return b.String()
}
