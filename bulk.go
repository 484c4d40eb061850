package client

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BulkConfig selects how [ExecuteBulk] processes its items.
type BulkConfig struct {
	// Parallel enables bounded-parallel execution. When false, items run one
	// at a time in input order.
	Parallel bool
	// MaxParallelism caps the number of items in flight when Parallel is set.
	// Values below 1 are treated as 1.
	MaxParallelism int
}

func (o Options) bulkConfig() BulkConfig {
	return BulkConfig{Parallel: o.bulkEnabled, MaxParallelism: o.maxParallelism}
}

// ExecuteBulk applies op to every input and returns the results in input
// order.
//
// Sequential execution stops at the first failure. Parallel execution never
// has more than MaxParallelism calls of op in flight; after the first
// failure no further items are started, items already running are allowed to
// finish, and the first failure is returned. Items are not rolled back on
// failure: the caller decides what to do with work already committed.
//
// Every call of op receives ctx. Once ctx is done no further items are
// started and the context error is returned.
func ExecuteBulk[In, Out any](ctx context.Context, cfg BulkConfig, inputs []In, op func(context.Context, In) (Out, error)) ([]Out, error) {
	if !cfg.Parallel {
		return executeSequential(ctx, inputs, op)
	}
	return executeParallel(ctx, max(cfg.MaxParallelism, 1), inputs, op)
}

func executeSequential[In, Out any](ctx context.Context, inputs []In, op func(context.Context, In) (Out, error)) ([]Out, error) {
	results := make([]Out, 0, len(inputs))

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := op(ctx, in)
		if err != nil {
			return nil, err
		}

		results = append(results, out)
	}

	return results, nil
}

func executeParallel[In, Out any](ctx context.Context, limit int, inputs []In, op func(context.Context, In) (Out, error)) ([]Out, error) {
	results := make([]Out, len(inputs))

	// The group deliberately has no derived context: a failing item must not
	// cancel its siblings.
	var g errgroup.Group
	g.SetLimit(limit)

	var (
		mu     sync.Mutex
		failed bool
	)

	stopped := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return failed
	}

	for i, in := range inputs {
		if ctx.Err() != nil || stopped() {
			break
		}

		g.Go(func() error {
			// Go may have blocked on the limit while a sibling failed.
			if ctx.Err() != nil || stopped() {
				return nil
			}

			out, err := op(ctx, in)
			if err != nil {
				mu.Lock()
				failed = true
				mu.Unlock()
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
