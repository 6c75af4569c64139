//go:build unix

package launcher

import (
	"context"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

// ExecuteNoWait implements Launcher. The child is reaped in the background;
// Wait collects the outcome.
func (l *processLauncher) ExecuteNoWait(ctx context.Context, req Request) (*lib.ProcessInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, lib.NewLaunchError(lib.KindCanceled, "Launch canceled", err)
	}

	c, err := l.spawn(req, modeAsync)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.processes[c.id] = c
	l.mu.Unlock()

	return &lib.ProcessInfo{
		ID:    c.id,
		Pid:   c.pid,
		State: lib.ProcessStateRunning,
	}, nil
}
