//go:build linux

package launcher

import (
	"errors"
	"os"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

// processTree returns pid and every process below it. With group set, members
// of the process group led by pid are included too, which catches
// descendants that were reparented after an intermediate parent exited.
func processTree(pid int, group bool) ([]procfs.ProcStat, error) {
	procs, err := procfs.AllProcs()
	if err != nil {
		return nil, err
	}

	stats := make(map[int]procfs.ProcStat, len(procs))
	children := make(map[int][]int)
	for _, p := range procs {
		st, err := p.Stat()
		if err != nil {
			// Exited while we were listing.
			continue
		}
		stats[st.PID] = st
		children[st.PPID] = append(children[st.PPID], st.PID)
	}
	if _, ok := stats[pid]; !ok {
		return nil, os.ErrProcessDone
	}

	queue := []int{pid}
	if group {
		for other, st := range stats {
			if st.PGRP == pid && other != pid {
				queue = append(queue, other)
			}
		}
	}

	seen := make(map[int]bool, len(queue))
	var tree []procfs.ProcStat
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if seen[p] {
			continue
		}
		seen[p] = true
		st, ok := stats[p]
		if !ok {
			continue
		}
		tree = append(tree, st)
		queue = append(queue, children[p]...)
	}
	return tree, nil
}

// treeResidentMemory sums the resident set of pid and its descendants.
func treeResidentMemory(pid int, group bool) (uint64, error) {
	tree, err := processTree(pid, group)
	if err != nil {
		return 0, err
	}
	var rss uint64
	for _, st := range tree {
		rss += uint64(st.ResidentMemory())
	}
	return rss, nil
}

// killDescendants kills every process below pid, leaving pid itself alone.
// It serves children that share our process group and so cannot be killed
// as a group.
func killDescendants(pid int) {
	tree, err := processTree(pid, false)
	if err != nil {
		return
	}
	for _, st := range tree {
		if st.PID != pid {
			_ = unix.Kill(st.PID, unix.SIGKILL)
		}
	}
}

// waitExited blocks until pid has exited without reaping it, so the pid and
// its process group id stay reserved until Wait is called.
func waitExited(pid int) bool {
	var info unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, pid, &info, unix.WEXITED|unix.WNOWAIT, nil)
		if !errors.Is(err, unix.EINTR) {
			return err == nil
		}
	}
}
