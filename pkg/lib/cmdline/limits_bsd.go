//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package cmdline

import "golang.org/x/sys/unix"

// DefaultLimits returns the limits reported by the kern.argmax sysctl.
func DefaultLimits() Limits {
	argMax, err := unix.SysctlUint32("kern.argmax")
	if err != nil || argMax == 0 {
		return unixLimits(posixArgMax)
	}
	return unixLimits(int(argMax))
}
