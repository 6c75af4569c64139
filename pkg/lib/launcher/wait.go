//go:build unix

package launcher

import (
	"context"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

// Wait implements Launcher. A ctx ending before the process does leaves it
// running and the handle valid; an elapsed wait bound kills it.
func (l *processLauncher) Wait(ctx context.Context, info *lib.ProcessInfo, secondsToWait uint, polling bool) (*Result, error) {
	c, err := l.getProcess(info)
	if err != nil {
		return &Result{ExitCode: -1}, err
	}

	if polling && secondsToWait == 0 {
		select {
		case <-c.done:
		default:
			return &Result{Pid: c.pid}, nil
		}
	}

	res, finished, err := c.await(ctx, secondsToWait, false)
	if !finished {
		return res, err
	}

	l.forget(c)
	info.ReturnCode = res.ExitCode
	info.State = lib.ProcessStateExited
	return res, err
}

// Kill implements Launcher.
func (l *processLauncher) Kill(info *lib.ProcessInfo) error {
	c, err := l.getProcess(info)
	if err != nil {
		return err
	}
	c.kill(reasonKilled)
	return nil
}
