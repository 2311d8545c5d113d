// Package metrics counts what operators do during a session. The counters are
// written to a node_exporter textfile when the process exits.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// Outcome labels.
const (
	OutcomeOK         = "ok"
	OutcomeDenied     = "denied"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeStorage    = "storage"
	OutcomeUnexpected = "unexpected"
)

type Metrics struct {
	Registry *prometheus.Registry

	OperationCounter  *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	LoginCounter      *prometheus.CounterVec
}

// New registers every collector on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		OperationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of menu operations by role, action and outcome",
			},
			[]string{"role", "action", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of menu operations in seconds, operator think time included",
				Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"action"},
		),
		LoginCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "login_attempts_total",
				Help:      "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// RecordOperation is safe to call on a nil *Metrics.
func (m *Metrics) RecordOperation(role, action, outcome string, startTime time.Time) {
	if m == nil {
		return
	}
	m.OperationCounter.With(prometheus.Labels{
		"role":    role,
		"action":  action,
		"outcome": outcome,
	}).Inc()
	m.OperationDuration.With(prometheus.Labels{"action": action}).Observe(time.Since(startTime).Seconds())
}

// RecordLogin is safe to call on a nil *Metrics.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// WriteTextfile dumps the registry to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
