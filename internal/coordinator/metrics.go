package coordinator

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the cycle coordinator's Prometheus instrumentation.
// Observability is an ambient concern carried regardless of the spec's
// REST/push non-goal framing; it is kept separate from the pure pipeline
// functions so those remain trivially testable without a registry.
type metrics struct {
	cycleDuration   prometheus.Histogram
	basinsProcessed prometheus.Counter
	basinsFailed    prometheus.Counter
	alertsEmitted   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "floodcore",
			Name:      "cycle_duration_seconds",
			Help:      "Wall-clock duration of a full pipeline cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		basinsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodcore",
			Name:      "basins_processed_total",
			Help:      "Basins successfully processed across all cycles.",
		}),
		basinsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "floodcore",
			Name:      "basins_failed_total",
			Help:      "Basins that failed validation across all cycles.",
		}),
		alertsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "floodcore",
			Name:      "alerts_emitted_total",
			Help:      "Non-green alerts emitted, by severity level.",
		}, []string{"level"}),
	}

	if reg != nil {
		reg.MustRegister(m.cycleDuration, m.basinsProcessed, m.basinsFailed, m.alertsEmitted)
	}

	return m
}
