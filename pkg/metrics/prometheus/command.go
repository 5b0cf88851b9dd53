// Package prometheus provides Prometheus-backed implementations of the
// interfaces declared in pkg/metrics.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/respkv/pkg/metrics"
)

// commandMetrics is the Prometheus implementation of metrics.CommandMetrics.
type commandMetrics struct {
	commandsTotal       *prometheus.CounterVec
	commandDuration     *prometheus.HistogramVec
	activeConnections   prometheus.Gauge
	connectionsAccepted prometheus.Counter
	connectionsClosed   prometheus.Counter
}

// NewCommandMetrics creates a new Prometheus-backed metrics.CommandMetrics.
// Returns nil if metrics are not enabled (metrics.InitRegistry was not
// called with enable=true).
func NewCommandMetrics() metrics.CommandMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &commandMetrics{
		commandsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "respkv_commands_total",
				Help: "Total number of dispatched commands by name and outcome",
			},
			[]string{"command", "outcome"},
		),
		commandDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "respkv_command_duration_milliseconds",
				Help: "Duration of command parse+execute in milliseconds",
				Buckets: []float64{
					0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100,
				},
			},
			[]string{"command"},
		),
		activeConnections: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "respkv_active_connections",
				Help: "Current number of open client connections",
			},
		),
		connectionsAccepted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "respkv_connections_accepted_total",
				Help: "Total number of accepted client connections",
			},
		),
		connectionsClosed: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "respkv_connections_closed_total",
				Help: "Total number of closed client connections",
			},
		),
	}
}

func (m *commandMetrics) RecordCommand(command, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(command, outcome).Inc()
	m.commandDuration.WithLabelValues(command).Observe(float64(duration.Microseconds()) / 1000)
}

func (m *commandMetrics) SetActiveConnections(count int32) {
	if m == nil {
		return
	}
	m.activeConnections.Set(float64(count))
}

func (m *commandMetrics) RecordConnectionAccepted() {
	if m == nil {
		return
	}
	m.connectionsAccepted.Inc()
}

func (m *commandMetrics) RecordConnectionClosed() {
	if m == nil {
		return
	}
	m.connectionsClosed.Inc()
}
