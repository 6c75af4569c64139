//go:build !unix && !windows

package cmdline

func DefaultLimits() Limits {
	return Limits{MaxSize: posixArgMax, PointerSize: pointerSize}
}
