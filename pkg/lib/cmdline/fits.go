package cmdline

import "unsafe"

// Baselines shared by the unix limit tables.
const (
	// posixArgMax is _POSIX_ARG_MAX, the smallest ARG_MAX a POSIX system may have.
	posixArgMax = 4096
	// xargsArgMax is the baseline xargs uses regardless of the real ARG_MAX.
	xargsArgMax = 128 * 1024

	pointerSize = int(unsafe.Sizeof(uintptr(0)))
)

// Limits describes how large an invocation the platform accepts.
type Limits struct {
	// MaxSize is the largest accepted EncodedSize.
	MaxSize int
	// MaxArgLen, when positive, is an exclusive bound on a single argument.
	MaxArgLen int
	// PointerSize is the per-argument cost of the argv pointer table.
	PointerSize int
}

// EncodedSize returns the bytes needed to pass program and args to the OS:
// every string with its terminator plus the nil-terminated pointer table.
func (l Limits) EncodedSize(program string, args []string) int {
	size := len(program) + 1
	for _, arg := range args {
		size += len(arg) + 1
	}
	return size + (len(args)+1)*l.PointerSize
}

// Fits reports whether the invocation stays within l. A size equal to
// MaxSize fits.
func (l Limits) Fits(program string, args []string) bool {
	if l.MaxArgLen > 0 {
		for _, arg := range args {
			if len(arg) >= l.MaxArgLen {
				return false
			}
		}
	}
	return l.EncodedSize(program, args) <= l.MaxSize
}

// Fits checks program and args against the limits of the running platform.
func Fits(program string, args []string) bool {
	return DefaultLimits().Fits(program, args)
}

// EncodedSize is Limits.EncodedSize for the running platform.
func EncodedSize(program string, args []string) int {
	return DefaultLimits().EncodedSize(program, args)
}

// unixLimits derives the effective limit from the system ARG_MAX the way
// xargs does, keeping half of it for the environment.
func unixLimits(argMax int) Limits {
	effective := xargsArgMax
	if effective > argMax {
		effective = argMax
	}
	if effective < posixArgMax {
		effective = posixArgMax
	}
	return Limits{MaxSize: effective / 2, PointerSize: pointerSize}
}
