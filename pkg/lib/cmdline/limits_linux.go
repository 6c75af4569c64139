//go:build linux

package cmdline

import "golang.org/x/sys/unix"

// maxArgStrlen is MAX_ARG_STRLEN: the kernel rejects any single string this long.
const maxArgStrlen = 32 * 4096

// DefaultLimits returns the limits of the running kernel. Linux sizes ARG_MAX
// as a quarter of the stack rlimit, never below 128 KiB.
func DefaultLimits() Limits {
	argMax := xargsArgMax
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_STACK, &rlim); err == nil && rlim.Cur != ^uint64(0) {
		if quarter := rlim.Cur / 4; quarter > uint64(argMax) {
			argMax = int(min(quarter, uint64(1<<31-1)))
		}
	}
	l := unixLimits(argMax)
	l.MaxArgLen = maxArgStrlen
	return l
}
