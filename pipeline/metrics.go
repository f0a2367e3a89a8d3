package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run status label values.
const (
	statusOK        = "ok"
	statusExhausted = "exhausted"
	statusError     = "error"
)

// Metrics records matching runs in Prometheus. A nil *Metrics is a no-op.
type Metrics struct {
	// runs counts runs by method and status
	runs *prometheus.CounterVec
	// duration tracks end-to-end run latency
	duration *prometheus.HistogramVec
	// unmatched holds the unmatched treated count of the latest run
	unmatched *prometheus.GaugeVec
}

// NewMetrics creates and registers the run metrics on reg. A nil reg creates
// unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "causalmatch_runs_total",
			Help: "Total matching runs by method and status",
		}, []string{"method", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "causalmatch_run_duration_seconds",
			Help:    "Matching run duration in seconds, distance table through balance report",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"method"}),
		unmatched: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "causalmatch_unmatched_treated",
			Help: "Treated units left unmatched by the latest run",
		}, []string{"method"}),
	}
}

func (m *Metrics) observe(method, status string, elapsed time.Duration, unmatched int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(method, status).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
	if status != statusError {
		m.unmatched.WithLabelValues(method).Set(float64(unmatched))
	}
}
