package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/launcher"
)

var (
	colorMuted = lipgloss.Color("#9CA3AF")
	colorOK    = lipgloss.Color("#10B981")
	colorError = lipgloss.Color("#EF4444")

	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

type row struct {
	label string
	value string
}

// renderTable lays rows out as an aligned two column box.
func renderTable(title string, rows []row) string {
	labelW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.label))
	}

	lines := make([]string, 0, len(rows)+1)
	if title != "" {
		lines = append(lines, title)
	}
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(pad(r.label, labelW))+"  "+r.value)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func printHandle(w io.Writer, info *lib.ProcessInfo) {
	fmt.Fprintln(w, renderTable("", []row{
		{"ID", valueStyle.Render(info.ID)},
		{"PID", valueStyle.Render(fmt.Sprint(info.Pid))},
		{"STATE", valueStyle.Render(info.State.String())},
	}))
}

func printResult(w io.Writer, res *launcher.Result, err error) {
	var rows []row
	title := okStyle.Render("exited")
	if err != nil {
		title = errStyle.Render(err.Error())
	}
	if res != nil {
		rows = append(rows, row{"EXIT CODE", valueStyle.Render(fmt.Sprint(res.ExitCode))})
		if res.Pid > 0 {
			rows = append(rows, row{"PID", fmt.Sprint(res.Pid)})
		}
		if st := res.Stats; st != nil {
			rows = append(rows,
				row{"WALL TIME", formatDuration(st.TotalTime)},
				row{"USER TIME", formatDuration(st.UserTime)},
				row{"PEAK MEMORY", formatBytes(st.PeakMemory)},
			)
		}
	}
	fmt.Fprintln(w, renderTable(title, rows))
}

func printBench(w io.Writer, r benchReport) {
	title := okStyle.Render(fmt.Sprintf("%d runs", r.Runs))
	if r.Failures > 0 {
		title = errStyle.Render(fmt.Sprintf("%d runs, %d failed", r.Runs, r.Failures))
	}
	fmt.Fprintln(w, renderTable(title, []row{
		{"P50", formatDuration(r.P50)},
		{"P90", formatDuration(r.P90)},
		{"P99", formatDuration(r.P99)},
		{"MAX USER TIME", formatDuration(r.MaxUser)},
		{"PEAK MEMORY", formatBytes(r.PeakMem)},
	}))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.String()
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit && exp < 3; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}

func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
