package export

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - счётчики экспорта. Нулевой *Metrics ничего не пишет.
type Metrics struct {
	Exports       *prometheus.CounterVec
	Failures      *prometheus.CounterVec
	Duration      prometheus.Histogram
	StageDuration *prometheus.HistogramVec
	InFlight      prometheus.Gauge
}

// NewMetrics регистрирует коллекторы в reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Exports: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idcards_exports_total",
			Help: "Total number of card exports, labeled by outcome",
		}, []string{"outcome"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idcards_export_failures_total",
			Help: "Failed card exports, labeled by the stage that failed",
		}, []string{"stage"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "idcards_export_duration_seconds",
			Help:    "End-to-end card export latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idcards_export_stage_duration_seconds",
			Help:    "Time spent in each export stage in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"stage"}),
		InFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "idcards_exports_in_flight",
			Help: "Number of card exports currently running",
		}),
	}
}

func (m *Metrics) begin() {
	if m == nil {
		return
	}
	m.InFlight.Inc()
}

func (m *Metrics) stage(s State, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(s.String()).Observe(d.Seconds())
}

func (m *Metrics) finish(failedAt State, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.InFlight.Dec()
	m.Duration.Observe(d.Seconds())
	if err != nil {
		m.Exports.WithLabelValues("failed").Inc()
		m.Failures.WithLabelValues(failedAt.String()).Inc()
		return
	}
	m.Exports.WithLabelValues("done").Inc()
}
