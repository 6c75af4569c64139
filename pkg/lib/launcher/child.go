//go:build unix

package launcher

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

// killReason records who decided to terminate a child. The first kill wins.
type killReason int32

const (
	reasonNone killReason = iota
	reasonTimeout
	reasonMemoryLimit
	reasonCanceled
	reasonKilled
)

// child is a started process. It is reaped exactly once by its own goroutine;
// result and err are immutable after done is closed.
type child struct {
	id       string
	mode     string
	proc     *os.Process
	pid      int
	ownGroup bool
	start    time.Time
	limiter  memoryLimiter
	logger   zerolog.Logger
	metrics  *Metrics

	reason atomic.Int32
	// mu orders signals against reaping; once reaped the pid may be reused.
	mu     sync.Mutex
	reaped bool
	done   chan struct{}
	result *Result
	err    error
}

// kill terminates the child unless it is already finished or another kill
// got there first.
func (c *child) kill(reason killReason) bool {
	if !c.reason.CompareAndSwap(int32(reasonNone), int32(reason)) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reaped {
		return false
	}

	c.logger.Debug().Int("pid", c.pid).Int32("reason", int32(reason)).Msg("Killing process")
	if c.limiter.kill() {
		return true
	}
	if c.ownGroup {
		// Negative PID targets the whole process group.
		_ = unix.Kill(-c.pid, unix.SIGKILL)
	} else {
		killDescendants(c.pid)
	}
	_ = c.proc.Kill()
	return true
}

func (c *child) markReaped() {
	c.mu.Lock()
	c.reaped = true
	c.mu.Unlock()
}

func (c *child) reap() {
	c.logger.Debug().Int("pid", c.pid).Msg("Waiting for process to finish")

	// Where the platform can wait without reaping, stop signalling while the
	// pid is still reserved by the zombie.
	exited := waitExited(c.pid)
	if exited {
		c.markReaped()
	}
	state, err := c.proc.Wait()
	if !exited {
		c.markReaped()
	}
	wall := time.Since(c.start)
	oomKilled := c.limiter.release()

	c.result, c.err = c.resolve(state, err, wall, oomKilled)
	c.metrics.observe(c.mode, c.result, c.err)

	if c.err != nil {
		c.logger.Debug().Int("pid", c.pid).Err(c.err).Msg("Process finished abnormally")
	} else {
		c.logger.Debug().Int("pid", c.pid).Int("exit_code", c.result.ExitCode).Dur("wall", wall).Msg("Process finished")
	}
	close(c.done)
}

func (c *child) resolve(state *os.ProcessState, err error, wall time.Duration, oomKilled bool) (*Result, error) {
	if err != nil {
		return &Result{ExitCode: -1, Pid: c.pid}, lib.NewLaunchError(lib.KindLaunchFailed, "Error waiting for child process", err)
	}

	ws, ok := state.Sys().(syscall.WaitStatus)
	if ok && ws.Signaled() {
		killed := &Result{ExitCode: -2, Pid: c.pid}
		switch killReason(c.reason.Load()) {
		case reasonTimeout:
			return killed, lib.NewLaunchError(lib.KindTimeout, "Child timed out", nil)
		case reasonMemoryLimit:
			return killed, lib.NewLaunchError(lib.KindMemoryLimit, "Child exceeded its memory limit", nil)
		case reasonCanceled:
			return killed, lib.NewLaunchError(lib.KindCanceled, "Child was canceled", nil)
		case reasonKilled:
			return killed, lib.NewLaunchError(lib.KindCanceled, "Child was killed", nil)
		}
		if oomKilled {
			return killed, lib.NewLaunchError(lib.KindMemoryLimit, "Child was killed by the out-of-memory killer", nil)
		}
		name := unix.SignalName(ws.Signal())
		if name == "" {
			name = ws.Signal().String()
		}
		msg := fmt.Sprintf("Child terminated by signal %s", name)
		if ws.CoreDump() {
			msg += " (core dumped)"
		}
		return killed, lib.NewLaunchError(lib.KindSignaled, msg, nil)
	}

	// Exited on its own, even if a kill was attempted after the fact.
	return &Result{
		ExitCode: state.ExitCode(),
		Pid:      c.pid,
		Stats: &lib.ProcessStatistics{
			TotalTime:  wall,
			UserTime:   state.UserTime(),
			PeakMemory: peakMemory(state),
		},
	}, nil
}

// outcome returns a private copy of the resolved result. Only valid after done.
func (c *child) outcome() (*Result, error) {
	res := *c.result
	if res.Stats != nil {
		stats := *res.Stats
		res.Stats = &stats
	}
	return &res, c.err
}

func peakMemory(state *os.ProcessState) uint64 {
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0
	}
	return maxRSSBytes(ru)
}
