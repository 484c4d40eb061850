package client

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// RetryEvent describes a single retry decision. It is passed to the hook
// registered with [WithRetryHook] before the executor waits out Delay.
type RetryEvent struct {
	Method string
	Path   string
	// Attempt is the attempt that just failed, starting at 1.
	Attempt int
	Delay   time.Duration
	// Reason is the transport error text or the HTTP status code.
	Reason string
}

// retryPolicy decides whether a failed attempt is tried again. The delay
// between attempts is constant.
type retryPolicy struct {
	enabled     bool
	maxAttempts int
	delay       time.Duration
	shouldRetry func(*resty.Response, error) bool
}

func newRetryPolicy(o Options) retryPolicy {
	return retryPolicy{
		enabled:     o.retryEnabled,
		maxAttempts: o.maxRetryAttempts,
		delay:       o.retryDelay,
		shouldRetry: o.retryPolicy,
	}
}

// next reports whether attempt (1-based) should be followed by another one
// and how long to wait before it.
func (p retryPolicy) next(attempt int, resp *resty.Response, err error) (time.Duration, bool) {
	if !p.enabled || attempt >= p.maxAttempts {
		return 0, false
	}

	if !p.shouldRetry(resp, err) {
		return 0, false
	}

	return p.delay, true
}

func retryReason(resp *resty.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	if resp == nil {
		return "no response"
	}
	return strconv.Itoa(resp.StatusCode())
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
