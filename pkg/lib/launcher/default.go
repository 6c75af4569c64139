package launcher

import (
	"context"
	"sync"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

var defaultLauncher = sync.OnceValue(func() Launcher { return New() })

// Default returns the process-wide Launcher used by the package functions.
func Default() Launcher {
	return defaultLauncher()
}

// ExecuteAndWait runs req on the default Launcher.
func ExecuteAndWait(ctx context.Context, req Request, secondsToWait uint) (*Result, error) {
	return Default().ExecuteAndWait(ctx, req, secondsToWait)
}

// ExecuteNoWait starts req on the default Launcher.
func ExecuteNoWait(ctx context.Context, req Request) (*lib.ProcessInfo, error) {
	return Default().ExecuteNoWait(ctx, req)
}

// Wait resolves a handle returned by ExecuteNoWait.
func Wait(ctx context.Context, info *lib.ProcessInfo, secondsToWait uint, polling bool) (*Result, error) {
	return Default().Wait(ctx, info, secondsToWait, polling)
}
