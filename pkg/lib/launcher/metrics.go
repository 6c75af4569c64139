package launcher

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SanjoDeundiak/process-launcher/pkg/lib"
)

// Metrics counts launches by mode and outcome. A nil *Metrics records nothing.
type Metrics struct {
	launches *prometheus.CounterVec
	running  *prometheus.GaugeVec
	wallTime *prometheus.HistogramVec
	userTime *prometheus.HistogramVec
}

// NewMetrics creates the launcher collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		launches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "process_launcher_launches_total",
				Help: "Launched programs by mode (sync, async) and outcome",
			},
			[]string{"mode", "outcome"},
		),
		running: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "process_launcher_running",
				Help: "Children started and not yet reaped",
			},
			[]string{"mode"},
		),
		wallTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "process_launcher_wall_seconds",
				Help:    "Wall time of children that exited on their own",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"mode"},
		),
		userTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "process_launcher_user_cpu_seconds",
				Help:    "User CPU time of children that exited on their own",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"mode"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.launches, m.running, m.wallTime, m.userTime)
	}
	return m
}

// outcomeLabel is "exited" for a normal exit, otherwise the failure kind.
func outcomeLabel(err error) string {
	kind := lib.KindOf(err)
	if kind == lib.KindNone {
		if err != nil {
			return "error"
		}
		return "exited"
	}
	return kind.String()
}

func (m *Metrics) observeStart(mode string) {
	if m == nil {
		return
	}
	m.running.WithLabelValues(mode).Inc()
}

func (m *Metrics) observeLaunchFailure(mode string, err error) {
	if m == nil {
		return
	}
	m.launches.WithLabelValues(mode, outcomeLabel(err)).Inc()
}

func (m *Metrics) observe(mode string, res *Result, err error) {
	if m == nil {
		return
	}
	m.running.WithLabelValues(mode).Dec()
	m.launches.WithLabelValues(mode, outcomeLabel(err)).Inc()
	if res != nil && res.Stats != nil {
		m.wallTime.WithLabelValues(mode).Observe(res.Stats.TotalTime.Seconds())
		m.userTime.WithLabelValues(mode).Observe(res.Stats.UserTime.Seconds())
	}
}
