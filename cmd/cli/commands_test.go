//go:build unix

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
	"github.com/SanjoDeundiak/process-launcher/pkg/lib/launcher"
)

// execute runs prl with args and returns the app state plus captured output.
func execute(t *testing.T, args ...string) (*app, string, string) {
	t.Helper()
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvMetricsFile, "")

	a := newApp()
	root := a.rootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("prl %s: %v", strings.Join(args, " "), err)
	}
	return a, out.String(), errOut.String()
}

func TestRunExitCode(t *testing.T) {
	a, _, summary := execute(t, "run", "--", "/bin/sh", "-c", "exit 3")
	if a.exitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", a.exitCode)
	}
	if !strings.Contains(summary, "EXIT CODE") {
		t.Fatalf("expected summary, got %q", summary)
	}
}

func TestRunTimeout(t *testing.T) {
	a, _, summary := execute(t, "run", "--timeout", "1", "--", "/bin/sh", "-c", "sleep 10")
	if a.exitCode != exitTimeout {
		t.Fatalf("expected exit code %d, got %d", exitTimeout, a.exitCode)
	}
	if !strings.Contains(summary, "Child timed out") {
		t.Fatalf("expected timeout in summary, got %q", summary)
	}
}

func TestRunLaunchFailure(t *testing.T) {
	a, _, _ := execute(t, "run", "-q", "--", "/nonexistent/prl-test-program")
	if a.exitCode != exitLaunchFailed {
		t.Fatalf("expected exit code %d, got %d", exitLaunchFailed, a.exitCode)
	}
}

func TestRunRedirectAndEnv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")
	a, _, _ := execute(t, "run", "-q", "--clear-env", "--env", "PRL_TEST=hello",
		"--stdout", out, "--", "/bin/sh", "-c", "echo $PRL_TEST")
	if a.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", a.exitCode)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("unexpected output: %q", data)
	}
}

func TestRunConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")
	cfgPath := filepath.Join(dir, "prl.toml")
	if err := os.WriteFile(cfgPath, []byte("stdout = \""+out+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	a, _, _ := execute(t, "--config", cfgPath, "run", "-q", "--", "/bin/sh", "-c", "echo configured")
	if a.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", a.exitCode)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "configured\n" {
		t.Fatalf("unexpected output: %q", data)
	}
}

func TestRunWritesMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prl.prom")
	execute(t, "--metrics-file", path, "run", "-q", "--", "/bin/sh", "-c", "exit 0")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	want := `process_launcher_launches_total{mode="sync",outcome="exited"} 1`
	if !strings.Contains(string(data), want) {
		t.Fatalf("expected %q in metrics:\n%s", want, data)
	}
}

func TestSpawnPollsUntilExit(t *testing.T) {
	a, handle, summary := execute(t, "spawn", "--poll-interval", "10ms", "--", "/bin/sh", "-c", "sleep 0.2; exit 5")
	if a.exitCode != 5 {
		t.Fatalf("expected exit code 5, got %d", a.exitCode)
	}
	if !strings.Contains(handle, "running") {
		t.Fatalf("expected running handle, got %q", handle)
	}
	if !strings.Contains(summary, "EXIT CODE") {
		t.Fatalf("expected summary, got %q", summary)
	}
}

func TestSpawnDeadlineKills(t *testing.T) {
	a, _, summary := execute(t, "spawn", "--timeout", "1", "--poll-interval", "50ms", "--", "/bin/sh", "-c", "sleep 10")
	if a.exitCode != exitTimeout {
		t.Fatalf("expected exit code %d, got %d", exitTimeout, a.exitCode)
	}
	if !strings.Contains(summary, "Child was killed") {
		t.Fatalf("expected kill in summary, got %q", summary)
	}
}

func TestBench(t *testing.T) {
	a, report, _ := execute(t, "bench", "-n", "3", "--", "/bin/sh", "-c", "exit 0")
	if a.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", a.exitCode)
	}
	for _, want := range []string{"3 runs", "P50", "P99"} {
		if !strings.Contains(report, want) {
			t.Fatalf("expected %q in report:\n%s", want, report)
		}
	}

	a, report, _ = execute(t, "bench", "-n", "2", "--", "/bin/sh", "-c", "exit 1")
	if a.exitCode != exitFailure {
		t.Fatalf("expected failure exit code, got %d", a.exitCode)
	}
	if !strings.Contains(report, "2 failed") {
		t.Fatalf("expected failures in report:\n%s", report)
	}
}

func TestFits(t *testing.T) {
	a, out, _ := execute(t, "fits", "--", "/bin/echo", "hello")
	if a.exitCode != 0 || !strings.HasPrefix(out, "fits (") {
		t.Fatalf("expected fit, got %d %q", a.exitCode, out)
	}

	huge := strings.Repeat("x", 4<<20)
	a, out, _ = execute(t, "fits", "--", "/bin/echo", huge)
	if a.exitCode != exitFailure || !strings.HasPrefix(out, "does not fit") {
		t.Fatalf("expected no fit, got %d %q", a.exitCode, out)
	}
}

func TestQuote(t *testing.T) {
	_, out, _ := execute(t, "quote", "--", "plain", "two words", `a"b`)
	if out != `plain "two words" "a\"b"`+"\n" {
		t.Fatalf("unexpected quote output: %q", out)
	}

	_, out, _ = execute(t, "quote", "--force", "--", "plain")
	if out != "\"plain\"\n" {
		t.Fatalf("unexpected forced quote output: %q", out)
	}
}

func TestExitStatusMapping(t *testing.T) {
	cases := []struct {
		kind lib.FailureKind
		want int
	}{
		{lib.KindLaunchFailed, exitLaunchFailed},
		{lib.KindTimeout, exitTimeout},
		{lib.KindMemoryLimit, exitKilled},
		{lib.KindSignaled, exitKilled},
		{lib.KindUnsupported, exitFailure},
	}
	for _, tc := range cases {
		err := lib.NewLaunchError(tc.kind, "test", nil)
		if got := exitStatus(&launcher.Result{ExitCode: -2}, err); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.kind, tc.want, got)
		}
	}
	if got := exitStatus(&launcher.Result{ExitCode: 9}, nil); got != 9 {
		t.Fatalf("expected child status 9, got %d", got)
	}
}
