//go:build darwin

package launcher

import "syscall"

// maxRSSBytes: darwin reports ru_maxrss in bytes.
func maxRSSBytes(ru *syscall.Rusage) uint64 {
	return uint64(ru.Maxrss)
}
