//go:build windows

package cmdline

// DefaultLimits returns the CreateProcess command line limit. The command
// line is one string, so arguments cost their separator and no pointers.
func DefaultLimits() Limits {
	return Limits{MaxSize: 32768}
}
