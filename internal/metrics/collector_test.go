package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/client"
)

func TestObserveRequestOutcomes(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.Observe(client.Event{
		Type:      client.EventRequestComplete,
		Operation: client.OperationTextToImage,
		Model:     "imagen-4.0-generate-001",
		Duration:  3 * time.Second,
	})
	c.Observe(client.Event{
		Type:      client.EventRequestError,
		Operation: client.OperationReferenceEdit,
		Duration:  time.Second,
		Error:     ai.NewPolicyBlockedError("blocked", "SAFETY"),
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues(client.OperationTextToImage, OutcomeSuccess, "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requestsTotal.WithLabelValues(client.OperationReferenceEdit, OutcomeError, "policy_blocked")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.requestDuration))
	assert.InDelta(t, 0.04, testutil.ToFloat64(c.estimatedSpend.WithLabelValues("imagen-4.0-generate-001")), 1e-9)
}

func TestObserveUnknownModelHasNoSpend(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.Observe(client.Event{Type: client.EventRequestComplete, Operation: client.OperationTextToImage, Model: "custom-model"})

	assert.Equal(t, 0, testutil.CollectAndCount(c.estimatedSpend))
}

func TestObserveRetriesAndFallbacks(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	for _, rt := range []client.RetryEventType{client.RetryEventAttemptStart, client.RetryEventAttemptFailed, client.RetryEventRetrying} {
		c.Observe(client.Event{
			Type:       client.EventRetry,
			Operation:  client.OperationTextToImage,
			RetryEvent: &client.RetryEvent{Type: rt, Kind: ai.KindQuotaExceeded},
		})
	}
	c.Observe(client.Event{Type: client.EventFallback, Provider: ai.ProviderGoogle, Model: "imagen-4.0-generate-001"})
	c.Observe(client.Event{Type: client.EventFallback, Provider: ai.ProviderGoogle, Model: "imagen-4.0-generate-001"})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.retriesTotal.WithLabelValues(client.OperationTextToImage, "quota_exceeded")),
		"only backoff waits count as retries")
	assert.Equal(t, 2.0, testutil.ToFloat64(c.fallbacksTotal.WithLabelValues("google", "imagen-4.0-generate-001")))
}

func TestRunStopsWhenChannelCloses(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	events := make(chan client.Event, 2)
	events <- client.Event{Type: client.EventFallback, Provider: ai.ProviderOpenAI, Model: "dall-e-3"}
	close(events)

	done := make(chan struct{})
	go func() {
		c.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the channel closed")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(c.fallbacksTotal.WithLabelValues("openai", "dall-e-3")))
}

func TestRunStopsOnCancel(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		c.Run(ctx, make(chan client.Event))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
