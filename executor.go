package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// Response is the raw outcome of a successful request.
type Response struct {
	StatusCode int
	RawBody    string
}

// requestExecutor turns one logical request into one or more HTTP attempts.
// It owns the retry loop; resty's built-in retries stay disabled.
type requestExecutor struct {
	http      *resty.Client
	retry     retryPolicy
	retryHook func(RetryEvent)
	codec     JSONCodec
	logger    RequestLogger
	limiter   *rate.Limiter
}

func newRequestExecutor(baseURL string, o Options) *requestExecutor {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(o.timeout).
		SetRetryCount(0).
		SetHeaders(o.requestHeaders).
		SetAuthScheme(o.authScheme).
		SetAuthToken(o.apiKey).
		SetLogger(restyLogger{logger: o.requestLogger})

	e := &requestExecutor{
		http:      rc,
		retry:     newRetryPolicy(o),
		retryHook: o.retryHook,
		codec:     o.jsonCodec,
		logger:    o.requestLogger,
	}

	if o.rateLimit > 0 {
		e.limiter = rate.NewLimiter(o.rateLimit, o.rateBurst)
	}

	return e
}

// execute sends the request, retrying transient failures, and returns either
// the successful response or a classified *APIError. Cancellation of ctx is
// reported as the context error itself.
func (e *requestExecutor) execute(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		b, err := e.codec.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = b
	}

	for attempt := 1; ; attempt++ {
		// A refused limiter wait means nothing was sent; it is never retried.
		if err := e.wait(ctx); err != nil {
			return nil, err
		}

		resp, err := e.attempt(ctx, method, path, payload, attempt)
		if err == nil && resp.IsSuccess() {
			return &Response{StatusCode: resp.StatusCode(), RawBody: string(resp.Body())}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		delay, retry := e.retry.next(attempt, resp, err)
		if !retry {
			return nil, terminalError(resp, err)
		}

		reason := retryReason(resp, err)
		e.logger.Warn("retrying request",
			"method", method, "path", path, "attempt", attempt, "delay", delay, "reason", reason)

		if e.retryHook != nil {
			e.retryHook(RetryEvent{
				Method:  method,
				Path:    path,
				Attempt: attempt,
				Delay:   delay,
				Reason:  reason,
			})
		}

		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// wait blocks until the rate limiter admits one more attempt. The limiter
// refuses up front when the wait would outlive the context deadline; that is
// reported as context.DeadlineExceeded.
func (e *requestExecutor) wait(ctx context.Context) error {
	if e.limiter == nil {
		return nil
	}

	if err := e.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}

	return nil
}

func (e *requestExecutor) attempt(ctx context.Context, method, path string, payload []byte, attempt int) (*resty.Response, error) {
	req := e.http.R().SetContext(ctx)
	if payload != nil {
		req.SetBody(payload)
	}

	e.logger.Debug("sending request", "method", method, "path", path, "attempt", attempt)

	resp, err := req.Execute(method, path)
	if err != nil {
		e.logger.Debug("request failed", "method", method, "path", path, "attempt", attempt, "error", err)
		return resp, err
	}

	e.logger.Debug("received response", "status", resp.StatusCode(), "method", method, "path", path)

	return resp, nil
}

// terminalError builds the single error reported for a request that will not
// be attempted again.
func terminalError(resp *resty.Response, err error) error {
	if err != nil {
		return newTransportError(err)
	}
	return classify(resp.StatusCode(), string(resp.Body()))
}

// send executes the request and decodes a non-empty success body into T. An
// empty body yields the zero value of T.
func send[T any](ctx context.Context, e *requestExecutor, method, path string, body any) (T, *Response, error) {
	var data T

	resp, err := e.execute(ctx, method, path, body)
	if err != nil {
		return data, nil, err
	}

	if strings.TrimSpace(resp.RawBody) == "" {
		return data, resp, nil
	}

	if err := e.codec.Unmarshal([]byte(resp.RawBody), &data); err != nil {
		return data, resp, fmt.Errorf("failed to decode response body: %w", err)
	}

	return data, resp, nil
}

func (e *requestExecutor) close() {
	e.http.GetClient().CloseIdleConnections()
}
