//go:build unix

package launcher

import (
	"context"
	"time"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

// ExecuteAndWait implements Launcher.
func (l *processLauncher) ExecuteAndWait(ctx context.Context, req Request, secondsToWait uint) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return &Result{ExitCode: -1}, lib.NewLaunchError(lib.KindCanceled, "Launch canceled", err)
	}

	c, err := l.spawn(req, modeSync)
	if err != nil {
		return &Result{ExitCode: -1}, err
	}
	res, _, err := c.await(ctx, secondsToWait, true)
	return res, err
}

// await blocks until the child is reaped. An elapsed wait bound kills the
// child; so does ctx ending when killOnCancel is set. finished is false only
// when await gave up on a child that is still running.
func (c *child) await(ctx context.Context, secondsToWait uint, killOnCancel bool) (res *Result, finished bool, err error) {
	var timeout <-chan time.Time
	if secondsToWait > 0 {
		timer := time.NewTimer(time.Duration(secondsToWait) * time.Second)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-c.done:
	case <-timeout:
		c.kill(reasonTimeout)
		<-c.done
	case <-ctx.Done():
		if !killOnCancel {
			return &Result{Pid: c.pid}, false, lib.NewLaunchError(lib.KindCanceled, "Wait canceled", ctx.Err())
		}
		c.kill(reasonCanceled)
		<-c.done
	}
	res, err = c.outcome()
	return res, true, err
}
