//go:build unix

package launcher

import (
	"sync"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

// processLauncher launches programs with fork/exec through os.StartProcess.
type processLauncher struct {
	config
	platform platformState

	mu        sync.RWMutex
	processes map[string]*child
}

var _ Launcher = (*processLauncher)(nil)

func newPlatformLauncher(cfg config) Launcher {
	return &processLauncher{
		config:    cfg,
		platform:  newPlatformState(cfg),
		processes: make(map[string]*child),
	}
}

func (l *processLauncher) getProcess(info *lib.ProcessInfo) (*child, error) {
	if info == nil {
		return nil, lib.NewLaunchError(lib.KindUnknownProcess, "No process handle", nil)
	}
	l.mu.RLock()
	c := l.processes[info.ID]
	l.mu.RUnlock()
	if c == nil {
		return nil, lib.NewLaunchError(lib.KindUnknownProcess, "Unknown process "+info.ID, nil)
	}
	return c, nil
}

func (l *processLauncher) forget(c *child) {
	l.mu.Lock()
	delete(l.processes, c.id)
	l.mu.Unlock()
}
