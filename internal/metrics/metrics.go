// Package metrics exposes Prometheus counters for telemetry ingest and the
// retention sweeper. Callers tolerate a nil *Metrics so tests can skip
// registration entirely.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Module provides the metrics set registered on the default registry.
var Module = fx.Provide(New)

type Metrics struct {
	ingestTotal     *prometheus.CounterVec
	speedViolations prometheus.Counter
	sweepsTotal     *prometheus.CounterVec
	sweepDeleted    prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		ingestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fleetlane",
			Name:      "telemetry_ingest_total",
			Help:      "GPS log submissions by result.",
		}, []string{"result"}),
		speedViolations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fleetlane",
			Name:      "speed_violations_total",
			Help:      "Stored records flagged as speed violations.",
		}),
		sweepsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fleetlane",
			Name:      "retention_sweeps_total",
			Help:      "Retention sweeper runs by result.",
		}, []string{"result"}),
		sweepDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "fleetlane",
			Name:      "retention_deleted_records_total",
			Help:      "Telemetry records deleted by the retention sweeper.",
		}),
	}
}

func (m *Metrics) IncIngest(result string) {
	if m == nil {
		return
	}
	m.ingestTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncSpeedViolation() {
	if m == nil {
		return
	}
	m.speedViolations.Inc()
}

func (m *Metrics) ObserveSweep(deleted int64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sweepsTotal.WithLabelValues(result).Inc()
	if deleted > 0 {
		m.sweepDeleted.Add(float64(deleted))
	}
}
