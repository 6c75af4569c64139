//go:build unix

package launcher

import "syscall"

// memoryLimiter enforces MemoryLimit for one child.
type memoryLimiter interface {
	// prepare adjusts process attributes before the spawn.
	prepare(sys *syscall.SysProcAttr)
	// started is called once the child exists.
	started(c *child)
	// kill terminates the child through the limiter's own facility, if it has one.
	kill() bool
	// release stops enforcement after the child is reaped or failed to start,
	// reporting whether the kernel killed it for running out of memory.
	release() bool
}

type noLimiter struct{}

func (noLimiter) prepare(*syscall.SysProcAttr) {}
func (noLimiter) started(*child)               {}
func (noLimiter) kill() bool                   { return false }
func (noLimiter) release() bool                { return false }
