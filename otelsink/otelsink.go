// Package otelsink reports client operation metrics through an OpenTelemetry
// meter.
package otelsink

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	client "github.com/devexp/devexp-go-client"
)

// Sink is a [client.MetricSink] backed by OpenTelemetry instruments.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording never fails; instrument errors surface from New.
type Sink struct {
	total    metric.Int64Counter
	errors   metric.Int64Counter
	items    metric.Int64Counter
	duration metric.Float64Histogram
}

// New creates the sink's instruments on meter.
func New(meter metric.Meter) (*Sink, error) {
	total, err := meter.Int64Counter(
		"devexp.client.operations",
		metric.WithDescription("Total number of client operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"devexp.client.errors",
		metric.WithDescription("Total number of failed client operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	items, err := meter.Int64Counter(
		"devexp.client.items",
		metric.WithDescription("Total number of items handled by bulk client operations"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"devexp.client.duration_ms",
		metric.WithDescription("Client operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Sink{total: total, errors: errorCount, items: items, duration: duration}, nil
}

func (s *Sink) RecordOperation(m client.OperationMetric) {
	ctx := context.Background()

	opt := metric.WithAttributes(
		attribute.String("operation", m.Operation),
		attribute.Bool("success", m.Success),
	)

	s.total.Add(ctx, 1, opt)

	if !m.Success {
		s.errors.Add(ctx, 1, opt)
	}

	if m.ItemCount > 0 {
		s.items.Add(ctx, int64(m.ItemCount), opt)
	}

	s.duration.Record(ctx, float64(m.Duration.Microseconds())/1000, opt)
}
