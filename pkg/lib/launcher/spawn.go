//go:build unix

package launcher

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/argv"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/cmdline"
)

var slotNames = [3]string{"stdin", "stdout", "stderr"}

// spawn marshals req and creates the process. The arena and the redirect
// files are released once os.StartProcess has returned.
func (l *processLauncher) spawn(req Request, mode string) (*child, error) {
	if req.Program == "" {
		return nil, lib.NewLaunchError(lib.KindLaunchFailed, "Program path is empty", nil)
	}

	id := lib.NewID()
	log := l.logger.With().Str("id", id).Str("mode", mode).Logger()

	limiter, err := l.newMemoryLimiter(id, req.MemoryLimit, log)
	if err != nil {
		l.metrics.observeLaunchFailure(mode, err)
		return nil, err
	}

	blk := argv.Marshal(req.argv(), req.Env, req.Redirects)
	defer blk.Release()

	files, closeFiles, err := openRedirects(blk)
	if err != nil {
		limiter.release()
		l.metrics.observeLaunchFailure(mode, err)
		return nil, err
	}
	defer closeFiles()

	// A child in its own process group can be killed together with its
	// descendants, but must stay in ours to read from our terminal. Kills
	// then walk its descendants where the platform exposes them.
	_, stdinRedirected := blk.Redirect(lib.Stdin)
	ownGroup := stdinRedirected || !isatty.IsTerminal(os.Stdin.Fd())
	sys := &syscall.SysProcAttr{Setpgid: ownGroup}
	limiter.prepare(sys)

	log.Debug().
		Str("command", cmdline.Format(blk.Args...)).
		Int("arena_bytes", blk.Size()).
		Int("image_bytes", blk.Footprint()).
		Msg("Starting process")
	start := time.Now()
	proc, err := os.StartProcess(req.Program, blk.Args, &os.ProcAttr{
		Env:   blk.Env,
		Files: files,
		Sys:   sys,
	})
	if err != nil {
		limiter.release()
		log.Debug().Err(err).Msg("Failed to start process")
		msg := "Program could not be executed"
		if errors.Is(err, syscall.E2BIG) {
			msg = fmt.Sprintf("Argument list too long (%d bytes)", blk.Footprint())
		}
		lerr := lib.NewLaunchError(lib.KindLaunchFailed, msg, err)
		l.metrics.observeLaunchFailure(mode, lerr)
		return nil, lerr
	}

	c := &child{
		id:       id,
		mode:     mode,
		proc:     proc,
		pid:      proc.Pid,
		ownGroup: ownGroup,
		start:    start,
		limiter:  limiter,
		logger:   log,
		metrics:  l.metrics,
		done:     make(chan struct{}),
	}
	limiter.started(c)
	l.metrics.observeStart(mode)

	go c.reap()
	return c, nil
}

// openRedirects returns the three child stdio files. Unset slots inherit
// ours; stdout and stderr naming the same path share one file.
func openRedirects(blk *argv.Block) ([]*os.File, func(), error) {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for slot := range files {
		path, ok := blk.Redirect(slot)
		if !ok {
			continue
		}
		if slot == lib.Stderr {
			if outPath, outOK := blk.Redirect(lib.Stdout); outOK && outPath == path {
				files[slot] = files[lib.Stdout]
				continue
			}
		}

		f, err := openRedirect(slot, path)
		if err != nil {
			closeAll()
			msg := fmt.Sprintf("Cannot open file '%s' for %s", path, slotNames[slot])
			return nil, nil, lib.NewLaunchError(lib.KindLaunchFailed, msg, err)
		}
		files[slot] = f
		opened = append(opened, f)
	}
	return files, closeAll, nil
}

func openRedirect(slot int, path string) (*os.File, error) {
	if path == "" {
		path = os.DevNull
	}
	if slot == lib.Stdin {
		return os.Open(path)
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
}
