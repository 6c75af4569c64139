//go:build unix && !darwin

package launcher

import "syscall"

// maxRSSBytes converts ru_maxrss, reported in kilobytes outside darwin.
func maxRSSBytes(ru *syscall.Rusage) uint64 {
	return uint64(ru.Maxrss) * 1024
}
