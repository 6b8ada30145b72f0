// internal/logging/metrics.go
package logging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap/zapcore"
)

// Metrics holds Prometheus counters for logger activity.
//
// All metrics are prefixed with "simplelog_":
//   - simplelog_records_total{logger,level} - records that passed the logger filters
//   - simplelog_suppressed_total{logger} - records dropped as duplicates
//   - simplelog_redacted_total{logger} - records whose message was masked
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RecordsTotal    *prometheus.CounterVec
	SuppressedTotal *prometheus.CounterVec
	RedactedTotal   *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg. Pass a
// fresh prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplelog_records_total",
				Help: "Total number of records that passed logger-level filters",
			},
			[]string{"logger", "level"},
		),
		SuppressedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplelog_suppressed_total",
				Help: "Total number of records suppressed as consecutive duplicates",
			},
			[]string{"logger"},
		),
		RedactedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplelog_redacted_total",
				Help: "Total number of records with sensitive values masked",
			},
			[]string{"logger"},
		),
	}
}

func (m *Metrics) record(logger string, level zapcore.Level) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(logger, LevelName(level)).Inc()
}

func (m *Metrics) suppressed(logger string) {
	if m == nil {
		return
	}
	m.SuppressedTotal.WithLabelValues(logger).Inc()
}

func (m *Metrics) redacted(logger string) {
	if m == nil {
		return
	}
	m.RedactedTotal.WithLabelValues(logger).Inc()
}
