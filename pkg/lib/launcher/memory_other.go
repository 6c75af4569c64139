//go:build unix && !linux

package launcher

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

type platformState struct{}

func newPlatformState(config) platformState {
	return platformState{}
}

// newMemoryLimiter: without cgroups or procfs there is nothing that can
// observe or cap a child's memory from outside, and rlimits cannot be set
// between fork and exec from Go.
func (l *processLauncher) newMemoryLimiter(_ string, limit uint64, _ zerolog.Logger) (memoryLimiter, error) {
	if limit == 0 {
		return noLimiter{}, nil
	}
	msg := fmt.Sprintf("Memory limits are not supported on %s", runtime.GOOS)
	return nil, lib.NewLaunchError(lib.KindUnsupported, msg, nil)
}
