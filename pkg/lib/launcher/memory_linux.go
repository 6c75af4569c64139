//go:build linux

package launcher

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// platformState holds the cgroup hierarchy shared by all launches of one launcher.
type platformState struct {
	cgroups *cgroupManager
}

func newPlatformState(cfg config) platformState {
	return platformState{cgroups: &cgroupManager{root: cfg.cgroupRoot}}
}

// newMemoryLimiter prefers a cgroup with memory.max, which the kernel
// enforces, and falls back to sampling the RSS of the child's process tree
// from procfs.
func (l *processLauncher) newMemoryLimiter(id string, limit uint64, log zerolog.Logger) (memoryLimiter, error) {
	if limit == 0 {
		return noLimiter{}, nil
	}
	if l.platform.cgroups.available() {
		cg, err := l.platform.cgroups.create(id, limit, log)
		if err == nil {
			return cg, nil
		}
		log.Warn().Err(err).Msg("Cgroup setup failed, falling back to RSS monitor")
	}
	return &rssMonitor{
		limit:    limit,
		interval: l.pollInterval,
		stop:     make(chan struct{}),
	}, nil
}

// cgroupManager owns the cgroup v2 directory launches are placed under.
// As non-root it stays unavailable.
type cgroupManager struct {
	root    string
	once    sync.Once
	initErr error
}

func (m *cgroupManager) available() bool {
	if os.Geteuid() != 0 || m.root == "" {
		return false
	}
	m.once.Do(func() {
		m.initErr = m.init()
	})
	return m.initErr == nil
}

func (m *cgroupManager) init() error {
	if err := os.MkdirAll(m.root, 0755); err != nil {
		return err
	}

	available, err := readControllerSet(filepath.Join(m.root, "cgroup.controllers"))
	if err != nil {
		return err
	}
	if !available["memory"] {
		return fmt.Errorf("memory controller not available in %s", m.root)
	}
	enabled, err := readControllerSet(filepath.Join(m.root, "cgroup.subtree_control"))
	if err != nil {
		return err
	}
	if !enabled["memory"] {
		return writeString(filepath.Join(m.root, "cgroup.subtree_control"), "+memory")
	}
	return nil
}

func (m *cgroupManager) create(id string, limit uint64, log zerolog.Logger) (*cgroupLimiter, error) {
	dir := filepath.Join(m.root, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if err := writeString(filepath.Join(dir, "memory.max"), strconv.FormatUint(limit, 10)); err != nil {
		_ = os.Remove(dir)
		return nil, err
	}
	// Without swap accounting the file does not exist; the cap still holds for RAM.
	_ = writeString(filepath.Join(dir, "memory.swap.max"), "0")
	// An OOM kill of any descendant takes down the whole cgroup, so a wrapper
	// cannot outlive its killed workload and exit normally.
	if err := writeString(filepath.Join(dir, "memory.oom.group"), "1"); err != nil {
		_ = os.Remove(dir)
		return nil, err
	}

	f, err := os.Open(dir)
	if err != nil {
		_ = os.Remove(dir)
		return nil, err
	}
	return &cgroupLimiter{dir: dir, file: f, logger: log}, nil
}

func readControllerSet(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for _, f := range strings.Fields(string(data)) {
		set[strings.TrimPrefix(f, "+")] = true
	}
	return set, nil
}

func writeString(path, val string) error {
	return os.WriteFile(path, []byte(val), 0644)
}

// cgroupLimiter places the child in its own cgroup at clone time.
type cgroupLimiter struct {
	dir    string
	file   *os.File
	logger zerolog.Logger
}

func (cg *cgroupLimiter) prepare(sys *syscall.SysProcAttr) {
	sys.UseCgroupFD = true
	sys.CgroupFD = int(cg.file.Fd())
}

func (cg *cgroupLimiter) started(*child) {
	cg.closeFile()
}

func (cg *cgroupLimiter) closeFile() {
	if cg.file != nil {
		_ = cg.file.Close()
		cg.file = nil
	}
}

func (cg *cgroupLimiter) kill() bool {
	return writeString(filepath.Join(cg.dir, "cgroup.kill"), "1") == nil
}

func (cg *cgroupLimiter) release() bool {
	cg.closeFile()
	oomKills, _ := readEventCount(filepath.Join(cg.dir, "memory.events"), "oom_kill")
	if err := os.Remove(cg.dir); err != nil {
		cg.logger.Warn().Err(err).Str("cgroup", cg.dir).Msg("Cgroup not removed")
	}
	return oomKills > 0
}

// readEventCount reads one "key value" line of a cgroup events file.
func readEventCount(path, key string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 2 && fields[0] == key {
			return strconv.ParseUint(fields[1], 10, 64)
		}
	}
	return 0, scanner.Err()
}

// rssMonitor samples the resident set of the child and its descendants and
// kills the tree once the limit is exceeded. It races with the child's own exit; child.kill picks
// the single winner.
type rssMonitor struct {
	limit    uint64
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

func (m *rssMonitor) prepare(*syscall.SysProcAttr) {}

func (m *rssMonitor) started(c *child) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			rss, err := treeResidentMemory(c.pid, c.ownGroup)
			if err != nil {
				// Process is gone.
				return
			}
			if rss > m.limit {
				c.logger.Debug().Uint64("rss", rss).Uint64("limit", m.limit).Msg("Memory limit exceeded")
				c.kill(reasonMemoryLimit)
				return
			}
			select {
			case <-m.stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

func (m *rssMonitor) kill() bool { return false }

func (m *rssMonitor) release() bool {
	close(m.stop)
	m.wg.Wait()
	return false
}
