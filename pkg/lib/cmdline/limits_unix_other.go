//go:build unix && !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package cmdline

// DefaultLimits falls back to the xargs baseline where ARG_MAX cannot be queried.
func DefaultLimits() Limits {
	return unixLimits(xargsArgMax)
}
