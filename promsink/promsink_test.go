package promsink

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/devexp/devexp-go-client"
)

func TestSink_RecordOperation(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	sink, err := New(reg, "devexp")
	require.NoError(t, err)

	sink.RecordOperation(client.OperationMetric{
		Operation: "Contacts.AddContact",
		Duration:  20 * time.Millisecond,
		Success:   true,
	})
	sink.RecordOperation(client.OperationMetric{
		Operation: "Contacts.AddContacts",
		Duration:  80 * time.Millisecond,
		ItemCount: 4,
		Success:   true,
	})
	sink.RecordOperation(client.OperationMetric{
		Operation: "Contacts.AddContact",
		Duration:  5 * time.Millisecond,
		Success:   false,
		Err:       &client.APIError{Kind: client.KindValidation, StatusCode: 400},
	})

	assert.InDelta(t, 1, testutil.ToFloat64(sink.operations.WithLabelValues("Contacts.AddContact", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(sink.operations.WithLabelValues("Contacts.AddContact", "error")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(sink.failures.WithLabelValues("Contacts.AddContact", "validation")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(sink.items.WithLabelValues("Contacts.AddContacts")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(sink.duration))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := New(reg, "devexp")
	require.NoError(t, err)

	_, err = New(reg, "devexp")
	assert.Error(t, err)
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"not found", &client.APIError{Kind: client.KindNotFound, StatusCode: 404}, "not_found"},
		{"wrapped server", fmt.Errorf("bulk: %w", &client.APIError{Kind: client.KindServer, StatusCode: 503}), "server"},
		{"transport", &client.APIError{Kind: client.KindGeneric, Err: errors.New("connection refused")}, "transport"},
		{"canceled", context.Canceled, "canceled"},
		{"other", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}
