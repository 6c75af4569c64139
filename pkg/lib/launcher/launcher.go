// Package launcher starts external programs, either waiting for them with a
// timeout or handing back a handle to be waited on later. Each platform family
// provides its own implementation of Launcher, selected at build time.
package launcher

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

var logger = zerolog.Nop()

const defaultCgroupRoot = "/sys/fs/cgroup/prl"

// Launch modes, as recorded in metrics and logs.
const (
	modeSync  = "sync"
	modeAsync = "async"
)

// Request describes one program invocation.
type Request struct {
	// Program is the path of the executable. It is not searched in PATH,
	// see FindProgramByName.
	Program string
	// Args is the complete argv, passed verbatim. When empty, argv is {Program}.
	Args []string
	// Env replaces the environment when non-nil, even if empty.
	Env       []string
	Redirects lib.Redirects
	// MemoryLimit caps the resident memory of the child in bytes. Zero means no cap.
	MemoryLimit uint64
}

func (r Request) argv() []string {
	if len(r.Args) == 0 {
		return []string{r.Program}
	}
	return r.Args
}

// Result is the outcome of a resolved process.
type Result struct {
	// ExitCode is the child's exit status, -1 if it never started and -2 if
	// it was killed.
	ExitCode int
	Pid      int
	// Stats is set only when the child exited on its own.
	Stats *lib.ProcessStatistics
}

// Launcher is the process launching capability of a platform.
type Launcher interface {
	// ExecuteAndWait runs the program and blocks until it exits, is killed
	// for exceeding its memory limit, or secondsToWait elapses (0 waits forever).
	// A non-zero exit status is not an error.
	ExecuteAndWait(ctx context.Context, req Request, secondsToWait uint) (*Result, error)
	// ExecuteNoWait starts the program and returns without waiting for it.
	ExecuteNoWait(ctx context.Context, req Request) (*lib.ProcessInfo, error)
	// Wait resolves a handle returned by ExecuteNoWait. With polling set and
	// secondsToWait zero it returns at once, leaving info running if the
	// process has not finished.
	Wait(ctx context.Context, info *lib.ProcessInfo, secondsToWait uint, polling bool) (*Result, error)
	// Kill terminates a process started by ExecuteNoWait.
	Kill(info *lib.ProcessInfo) error
}

type config struct {
	logger       zerolog.Logger
	metrics      *Metrics
	pollInterval time.Duration
	cgroupRoot   string
}

// Option configures a Launcher.
type Option func(*config)

// WithLogger sets the logger used for process lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics records launch outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithPollInterval sets how often memory usage is sampled when no kernel
// facility enforces the limit.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithCgroupRoot sets the cgroup v2 directory under which per-launch groups
// are created when running as root on Linux.
func WithCgroupRoot(dir string) Option {
	return func(c *config) { c.cgroupRoot = dir }
}

// New returns the Launcher of the running platform.
func New(opts ...Option) Launcher {
	cfg := config{
		logger:       logger,
		pollInterval: 10 * time.Millisecond,
		cgroupRoot:   defaultCgroupRoot,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newPlatformLauncher(cfg)
}
