package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type metricRecorder struct {
	mu      sync.Mutex
	metrics []OperationMetric
}

func (r *metricRecorder) RecordOperation(m OperationMetric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = append(r.metrics, m)
}

func (r *metricRecorder) all() []OperationMetric {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]OperationMetric(nil), r.metrics...)
}

func (r *metricRecorder) named(name string) []OperationMetric {
	var out []OperationMetric
	for _, m := range r.all() {
		if m.Operation == name {
			out = append(out, m)
		}
	}
	return out
}

func TestMetrics_SingleOperation(t *testing.T) {
	t.Parallel()

	sink := &metricRecorder{}
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Contact{ID: uuid.New()})
	}, WithMetricSink(sink))

	if _, err := client.Contacts().GetContact(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	metrics := sink.all()
	if len(metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(metrics))
	}

	m := metrics[0]
	if m.Operation != "Contacts.GetContact" {
		t.Errorf("expected operation=Contacts.GetContact, got %s", m.Operation)
	}

	if !m.Success || m.Err != nil {
		t.Errorf("expected a successful metric, got %+v", m)
	}

	if m.ItemCount != 0 {
		t.Errorf("expected itemCount=0, got %d", m.ItemCount)
	}

	if m.Duration <= 0 {
		t.Errorf("expected a positive duration, got %v", m.Duration)
	}
}

func TestMetrics_FailureKeepsError(t *testing.T) {
	t.Parallel()

	sink := &metricRecorder{}
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, WithMetricSink(sink))

	err := client.Contacts().DeleteContact(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	metrics := sink.named("Contacts.DeleteContact")
	if len(metrics) != 1 {
		t.Fatalf("expected 1 metric, got %d", len(metrics))
	}

	if metrics[0].Success {
		t.Error("expected a failed metric")
	}

	if metrics[0].Err != err {
		t.Errorf("expected the metric to carry the returned error, got %v", metrics[0].Err)
	}
}

func TestMetrics_BulkReportsItemsAndBatch(t *testing.T) {
	t.Parallel()

	sink := &metricRecorder{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req CreateContactRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusCreated, Contact{ID: uuid.New(), Name: req.Name, Phone: req.Phone})
	}, WithMetricSink(sink), WithBulkOperations(2))

	_, err := client.Contacts().AddContacts(context.Background(), []CreateContactRequest{
		{Name: "a", Phone: "+34600000001"},
		{Name: "b", Phone: "+34600000002"},
		{Name: "c", Phone: "+34600000003"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	metrics := sink.all()
	if len(metrics) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(metrics))
	}

	if n := len(sink.named("Contacts.AddContact")); n != 3 {
		t.Errorf("expected 3 item metrics, got %d", n)
	}

	batch := metrics[len(metrics)-1]
	if batch.Operation != "Contacts.AddContacts" || batch.ItemCount != 3 || !batch.Success {
		t.Errorf("unexpected batch metric: %+v", batch)
	}
}

func TestMetrics_SendMessages(t *testing.T) {
	t.Parallel()

	sink := &metricRecorder{}
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, Message{ID: uuid.New()})
	}, WithMetricSink(sink))

	_, err := client.Messages().SendMessages(context.Background(), "Shop", "hi", []Contact{{ID: uuid.New()}, {ID: uuid.New()}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := len(sink.named("Messages.SendMessageTo")); n != 2 {
		t.Errorf("expected 2 item metrics, got %d", n)
	}

	if n := len(sink.named("Messages.SendMessage")); n != 0 {
		t.Errorf("expected no nested SendMessage metrics, got %d", n)
	}

	batch := sink.named("Messages.SendMessages")
	if len(batch) != 1 || batch[0].ItemCount != 2 {
		t.Errorf("unexpected batch metrics: %+v", batch)
	}
}

func TestMetrics_PanickingSinkDoesNotAffectResult(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Message{ID: id})
	}, WithMetricSink(MetricSinkFunc(func(OperationMetric) { panic("sink failure") })))

	msg, err := client.Messages().GetMessage(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.ID != id {
		t.Errorf("expected id=%s, got %s", id, msg.ID)
	}
}
