//go:build unix && !linux

package launcher

// Without a portable process table, a child sharing our process group is
// killed alone; its descendants survive.
func killDescendants(int) {}

// waitExited is unavailable here; the child is marked reaped only once Wait
// returns, leaving a short window in which a group kill may miss.
func waitExited(int) bool { return false }
