package client

import (
	"context"
	"time"
)

// OperationMetric is reported once for every instrumented operation.
type OperationMetric struct {
	Operation string
	Duration  time.Duration
	// ItemCount is the number of items handled by a bulk operation, or zero.
	ItemCount int
	Success   bool
	// Err is the error returned by the operation, unchanged.
	Err error
}

// MetricSink receives operation metrics. Implementations must be safe for
// concurrent use: bulk operations report from several goroutines at once.
type MetricSink interface {
	RecordOperation(m OperationMetric)
}

// MetricSinkFunc adapts a plain function to a [MetricSink].
type MetricSinkFunc func(OperationMetric)

func (f MetricSinkFunc) RecordOperation(m OperationMetric) {
	f(m)
}

// Measure runs fn and reports its duration and outcome to sink as a single
// [OperationMetric] named name. The result and error of fn are returned
// unchanged. With a nil sink, Measure only calls fn.
//
// Measure calls nest: a bulk operation measured as a whole may measure each
// of its items as well, and every call reports its own metric.
func Measure[T any](ctx context.Context, sink MetricSink, name string, itemCount int, fn func(context.Context) (T, error)) (T, error) {
	if sink == nil {
		return fn(ctx)
	}

	start := time.Now()
	result, err := fn(ctx)
	elapsed := time.Since(start)

	report(sink, OperationMetric{
		Operation: name,
		Duration:  elapsed,
		ItemCount: itemCount,
		Success:   err == nil,
		Err:       err,
	})

	return result, err
}

// MeasureErr is [Measure] for operations that return only an error.
func MeasureErr(ctx context.Context, sink MetricSink, name string, itemCount int, fn func(context.Context) error) error {
	_, err := Measure(ctx, sink, name, itemCount, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// report hands m to sink. A panicking sink must not change the outcome of the
// operation being measured, so the panic is dropped.
func report(sink MetricSink, m OperationMetric) {
	defer func() {
		_ = recover()
	}()
	sink.RecordOperation(m)
}
