//go:build !unix

package launcher

import (
	"context"
	"fmt"
	"runtime"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

// unsupportedLauncher reports every launch as unsupported. Process groups,
// wait statuses and rusage accounting are unix facilities this package
// builds on.
type unsupportedLauncher struct {
	config
}

func newPlatformLauncher(cfg config) Launcher {
	return unsupportedLauncher{config: cfg}
}

func (l unsupportedLauncher) unsupported(mode, op string) error {
	err := lib.NewLaunchError(lib.KindUnsupported, fmt.Sprintf("%s is not supported on %s", op, runtime.GOOS), nil)
	l.metrics.observeLaunchFailure(mode, err)
	return err
}

func (l unsupportedLauncher) ExecuteAndWait(context.Context, Request, uint) (*Result, error) {
	return &Result{ExitCode: -1}, l.unsupported(modeSync, "Program execution")
}

func (l unsupportedLauncher) ExecuteNoWait(context.Context, Request) (*lib.ProcessInfo, error) {
	return nil, l.unsupported(modeAsync, "Asynchronous program execution")
}

func (l unsupportedLauncher) Wait(context.Context, *lib.ProcessInfo, uint, bool) (*Result, error) {
	return &Result{ExitCode: -1}, lib.NewLaunchError(lib.KindUnknownProcess, "No process was started", nil)
}

func (l unsupportedLauncher) Kill(*lib.ProcessInfo) error {
	return lib.NewLaunchError(lib.KindUnknownProcess, "No process was started", nil)
}
