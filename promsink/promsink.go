// Package promsink reports client operation metrics to Prometheus.
package promsink

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	client "github.com/devexp/devexp-go-client"
)

// Sink is a [client.MetricSink] backed by Prometheus collectors. It is safe
// for concurrent use.
type Sink struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	items      *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates a sink and registers its collectors with reg. Metric names are
// prefixed with namespace when it is not empty.
func New(reg prometheus.Registerer, namespace string) (*Sink, error) {
	s := &Sink{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_operations_total",
				Help:      "Total number of client operations",
			},
			[]string{"operation", "status"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_operation_errors_total",
				Help:      "Total number of failed client operations by error kind",
			},
			[]string{"operation", "kind"},
		),
		items: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "client_operation_items_total",
				Help:      "Total number of items handled by bulk client operations",
			},
			[]string{"operation"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "client_operation_duration_seconds",
				Help:      "Client operation latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}

	for _, c := range []prometheus.Collector{s.operations, s.failures, s.items, s.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Sink) RecordOperation(m client.OperationMetric) {
	status := "success"
	if !m.Success {
		status = "error"
		s.failures.WithLabelValues(m.Operation, ErrorKind(m.Err)).Inc()
	}

	s.operations.WithLabelValues(m.Operation, status).Inc()
	s.duration.WithLabelValues(m.Operation).Observe(m.Duration.Seconds())

	if m.ItemCount > 0 {
		s.items.WithLabelValues(m.Operation).Add(float64(m.ItemCount))
	}
}

// ErrorKind returns a low-cardinality label for err.
func ErrorKind(err error) string {
	var apiErr *client.APIError
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, client.ErrTransport):
		return "transport"
	case errors.As(err, &apiErr):
		return apiErr.Kind.String()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
