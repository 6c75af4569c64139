package lib

import "time"

// ProcessState is the coarse state of a launched process handle.
type ProcessState int

const (
	ProcessStateUnspecified ProcessState = iota
	ProcessStateRunning
	ProcessStateExited
)

func (s ProcessState) String() string {
	switch s {
	case ProcessStateRunning:
		return "running"
	case ProcessStateExited:
		return "exited"
	default:
		return "unspecified"
	}
}

// ProcessInfo identifies a process started without waiting.
// It is updated in place by Wait once the process is resolved.
type ProcessInfo struct {
	// ID is the launcher-side handle used to look the process up again.
	ID         string
	Pid        int
	ReturnCode int
	State      ProcessState
}

// ProcessStatistics holds measured resource usage of a completed process.
type ProcessStatistics struct {
	TotalTime time.Duration
	UserTime  time.Duration
	// PeakMemory is the peak resident set size in bytes.
	PeakMemory uint64
}

// Redirect slots, by fixed position.
const (
	Stdin  = 0
	Stdout = 1
	Stderr = 2
)

// Redirects holds the stdin source and stdout/stderr destinations.
// A nil slot inherits the caller's stream, an empty path means the null device.
type Redirects [3]*string

// Redirect returns a pointer to path, for filling Redirects literals.
func Redirect(path string) *string {
	return &path
}
