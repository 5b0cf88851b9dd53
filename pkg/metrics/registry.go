// Package metrics declares the metrics surface the server records against,
// independent of any particular metrics backend. pkg/metrics/prometheus
// provides the Prometheus-backed implementation; passing a nil
// CommandMetrics anywhere in this module disables collection with zero
// overhead.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
	enabled  bool
)

// InitRegistry creates (or resets) the process-wide Prometheus registry.
// enable controls whether IsEnabled reports true; callers that want
// metrics disabled should simply never call the prometheus package's
// constructors, which already check IsEnabled and return nil.
func InitRegistry(enable bool) *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		registry = nil
		return nil
	}
	registry = prometheus.NewRegistry()
	return registry
}

// GetRegistry returns the process-wide registry, or nil if metrics are
// disabled or InitRegistry has not been called.
func GetRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// IsEnabled reports whether metrics collection is active.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}
