package client

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	maxRetryAttemptsLimit = 10
	maxRetryDelay         = time.Minute
	maxParallelismLimit   = 64
)

type Option func(*Options)

// Options is the configuration of a [Client]. It is a value: once a client
// has been created its options are never modified, and [Options.With]
// returns a new value instead of changing the receiver.
type Options struct {
	apiKey           string
	authScheme       string
	timeout          time.Duration
	retryEnabled     bool
	maxRetryAttempts int
	retryDelay       time.Duration
	retryPolicy      func(*resty.Response, error) bool
	retryHook        func(RetryEvent)
	bulkEnabled      bool
	maxParallelism   int
	requestLogger    RequestLogger
	metricSink       MetricSink
	defaultPageSize  int
	requestHeaders   map[string]string
	jsonCodec        JSONCodec
	rateLimit        rate.Limit
	rateBurst        int
}

func newClientOptions() *Options {
	return &Options{
		authScheme:       "Bearer",
		timeout:          30 * time.Second,
		retryEnabled:     true,
		maxRetryAttempts: 3,
		retryDelay:       2 * time.Second,
		retryPolicy:      DefaultRetryPolicy,
		maxParallelism:   4,
		requestLogger:    &NoopLogger{},
		defaultPageSize:  20,
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		jsonCodec: StdJSONCodec{},
	}
}

// DefaultOptions returns the options used by [New] before any [Option] is applied.
func DefaultOptions() Options {
	return *newClientOptions()
}

// With returns a copy of o with opts applied. The receiver is left untouched,
// so a common base can be extended into several divergent configurations.
func (o Options) With(opts ...Option) Options {
	next := o
	next.requestHeaders = maps.Clone(o.requestHeaders)
	if next.requestHeaders == nil {
		next.requestHeaders = make(map[string]string)
	}

	for _, opt := range opts {
		opt(&next)
	}

	return next
}

// WithAPIKey sets the key sent as the bearer token on every request.
func WithAPIKey(apiKey string) Option {
	return func(o *Options) {
		o.apiKey = strings.TrimSpace(apiKey)
	}
}

func WithAuthScheme(scheme string) Option {
	return func(o *Options) {
		if scheme = strings.TrimSpace(scheme); scheme != "" {
			o.authScheme = scheme
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithRetries enables retries with at most maxAttempts attempts per request
// (the first attempt included) and a constant delay between attempts.
func WithRetries(maxAttempts int, delay time.Duration) Option {
	return func(o *Options) {
		o.retryEnabled = true
		if maxAttempts >= 1 {
			o.maxRetryAttempts = maxAttempts
		}
		if delay >= 0 {
			o.retryDelay = delay
		}
	}
}

// WithoutRetries makes every request a single attempt.
func WithoutRetries() Option {
	return func(o *Options) {
		o.retryEnabled = false
	}
}

func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

// WithRetryHook registers a function called once per retry, before the
// executor waits. It is not called when the executor gives up.
func WithRetryHook(hook func(RetryEvent)) Option {
	return func(o *Options) {
		o.retryHook = hook
	}
}

// WithBulkOperations runs bulk operations with up to maxParallelism items in
// flight. Without it bulk operations process their items one at a time.
func WithBulkOperations(maxParallelism int) Option {
	return func(o *Options) {
		o.bulkEnabled = true
		if maxParallelism >= 1 {
			o.maxParallelism = maxParallelism
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithMetricSink enables operation metrics. Every public operation of the
// contacts and messages APIs reports one [OperationMetric] to sink.
func WithMetricSink(sink MetricSink) Option {
	return func(o *Options) {
		o.metricSink = sink
	}
}

func WithPageSize(pageSize int) Option {
	return func(o *Options) {
		if pageSize >= 1 {
			o.defaultPageSize = pageSize
		}
	}
}

func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || strings.EqualFold(header, "Content-Type") || strings.EqualFold(header, "Accept") ||
			strings.EqualFold(header, "Authorization") {
			return
		}

		o.requestHeaders[header] = value
	}
}

func WithJSONCodec(codec JSONCodec) Option {
	return func(o *Options) {
		if codec != nil {
			o.jsonCodec = codec
		}
	}
}

// WithRateLimit paces outgoing attempts to at most requestsPerSecond, with
// bursts of up to burst requests. Retries count against the limit.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(o *Options) {
		if requestsPerSecond > 0 && burst >= 1 {
			o.rateLimit = rate.Limit(requestsPerSecond)
			o.rateBurst = burst
		}
	}
}

func (o Options) MetricsEnabled() bool {
	return o.metricSink != nil
}

func (o Options) BulkEnabled() bool {
	return o.bulkEnabled
}

func (o Options) MaxParallelism() int {
	return o.maxParallelism
}

func (o Options) DefaultPageSize() int {
	return o.defaultPageSize
}

func (o Options) Validate() error {
	if o.apiKey == "" {
		return errors.New("API key must be set")
	}

	if o.timeout <= 0 {
		return errors.New("timeout must be positive")
	}

	if o.maxRetryAttempts < 1 {
		return errors.New("maxRetryAttempts must be at least 1")
	}

	if o.maxRetryAttempts > maxRetryAttemptsLimit {
		return fmt.Errorf("maxRetryAttempts must not exceed %d", maxRetryAttemptsLimit)
	}

	if o.retryDelay < 0 {
		return errors.New("retryDelay must be non-negative")
	}

	if o.retryDelay > maxRetryDelay {
		return fmt.Errorf("retryDelay must not exceed %v", maxRetryDelay)
	}

	if o.maxParallelism < 1 {
		return errors.New("maxParallelism must be at least 1")
	}

	if o.maxParallelism > maxParallelismLimit {
		return fmt.Errorf("maxParallelism must not exceed %d", maxParallelismLimit)
	}

	if o.defaultPageSize < 1 {
		return errors.New("defaultPageSize must be at least 1")
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	if o.retryPolicy == nil {
		return errors.New("retryPolicy must not be nil")
	}

	if o.jsonCodec == nil {
		return errors.New("jsonCodec must not be nil")
	}

	return nil
}
