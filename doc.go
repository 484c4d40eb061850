// Package client provides an HTTP client for the Devexp contacts and
// messages API.
//
// The client wraps [github.com/go-resty/resty/v2] with bounded retries,
// typed error classification, optional per-operation metrics and bounded
// parallel bulk operations.
//
// # Basic Usage
//
//	c := client.New("https://api.example.com",
//	    client.WithAPIKey("my-key"),
//	    client.WithRetries(3, 2*time.Second),
//	)
//
//	if err := c.Connect(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	contact, err := c.Contacts().AddContact(ctx, client.CreateContactRequest{
//	    Name:  "Ada",
//	    Phone: "+34600111222",
//	})
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained;
// all configuration is validated when [Client.Connect] is called. An
// [Options] value is never modified once built: [Options.With] returns a new
// value, so a shared base configuration can be branched safely.
//
// # Retry Behaviour
//
// [DefaultRetryPolicy] retries on 5xx server errors, HTTP 408 and transient
// transport errors. Other 4xx responses are returned after a single attempt.
// The delay between attempts is constant, and a cancelled context aborts the
// wait immediately. [WithRetries] sets the total number of attempts.
//
// # Errors
//
// A request that fails for good returns an *[APIError] carrying the status
// code, a readable message, the raw response body and, when the server sent
// one, its own message (and the resource id for 404 responses). Use
// [errors.Is] with [ErrValidation], [ErrAuth], [ErrNotFound], [ErrServer],
// [ErrUnexpected] or [ErrTransport] to branch on the failure class.
//
// # Metrics
//
// [WithMetricSink] wraps every contacts and messages operation so that it
// reports one [OperationMetric]. Bulk operations report a metric for the
// whole batch and one for each item. [Measure] instruments arbitrary work the
// same way. Adapters for Prometheus and OpenTelemetry live in the promsink
// and otelsink packages.
//
// # Logging
//
// Supply a [RequestLogger] via [WithRequestLogger]; a *slog.Logger satisfies
// the interface. The default [NoopLogger] discards all log output.
package client
