package client

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// DefaultRetryPolicy is the default retry condition used by [Client]. It
// retries on 5xx server errors and HTTP 408 (request timeout), and on
// transient transport errors such as refused connections and client-side
// timeouts. Other 4xx responses are never retried: they describe a problem
// with the request, not with the server. Context cancellation and permanent
// DNS resolution failures are never retried either.
//
// Supply a custom function via [WithRetryPolicy] to override this behaviour.
func DefaultRetryPolicy(r *resty.Response, err error) bool {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false
		}

		// Don't retry on DNS resolution errors unless the resolver itself timed out
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return dnsErr.IsTimeout || dnsErr.IsTemporary
		}

		return true
	}

	if r == nil {
		return false
	}

	return r.StatusCode() >= http.StatusInternalServerError || r.StatusCode() == http.StatusRequestTimeout
}
