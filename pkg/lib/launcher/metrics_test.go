//go:build unix

package launcher

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

func TestMetricsRecordOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	l := New(WithMetrics(m))

	if _, err := l.ExecuteAndWait(context.Background(), helperRequest("exit:3"), 10); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := l.ExecuteAndWait(context.Background(), Request{Program: "/nonexistent/program"}, 10); err == nil {
		t.Fatalf("expected launch failure")
	}
	req := helperRequest("sleep:10s")
	req.Redirects[lib.Stdin] = lib.Redirect("")
	if _, err := l.ExecuteAndWait(context.Background(), req, 1); lib.KindOf(err) != lib.KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}

	checks := map[string]float64{
		"exited":        1,
		"launch failed": 1,
		"timeout":       1,
	}
	for outcome, want := range checks {
		if got := testutil.ToFloat64(m.launches.WithLabelValues(modeSync, outcome)); got != want {
			t.Fatalf("launches{outcome=%q}: got %v, want %v", outcome, got, want)
		}
	}
	if got := testutil.ToFloat64(m.running.WithLabelValues(modeSync)); got != 0 {
		t.Fatalf("running gauge should return to 0, got %v", got)
	}
	if n := testutil.CollectAndCount(m.wallTime); n != 1 {
		t.Fatalf("expected one wall time series, got %d", n)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.observeStart(modeAsync)
	m.observeLaunchFailure(modeAsync, nil)
	m.observe(modeAsync, &Result{}, nil)
}

func TestOutcomeLabel(t *testing.T) {
	if got := outcomeLabel(nil); got != "exited" {
		t.Fatalf("got %q", got)
	}
	if got := outcomeLabel(lib.NewLaunchError(lib.KindMemoryLimit, "x", nil)); got != "memory limit" {
		t.Fatalf("got %q", got)
	}
}
