// Package metrics exports client events as Prometheus metrics.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ai "github.com/mchlmayer/thumbpro"
	"github.com/mchlmayer/thumbpro/client"
	"github.com/mchlmayer/thumbpro/model"
)

const namespace = "thumbpro"

// Outcome labels for the requests counter.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Collector turns client events into request, retry, fallback and spend metrics.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	fallbacksTotal  *prometheus.CounterVec
	estimatedSpend  *prometheus.CounterVec
}

// NewCollector registers the metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of generation requests by outcome",
			},
			[]string{"operation", "outcome", "kind"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Generation request duration in seconds, including backoff",
				Buckets:   []float64{1, 2, 5, 10, 20, 30, 60, 120},
			},
			[]string{"operation"},
		),
		retriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "retries_total",
				Help:      "Total number of backoff retries by error kind",
			},
			[]string{"operation", "kind"},
		),
		fallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallbacks_total",
				Help:      "Total number of times a candidate model was skipped",
			},
			[]string{"provider", "model"},
		),
		estimatedSpend: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimated_spend_usd_total",
				Help:      "Estimated image generation spend in USD",
			},
			[]string{"model"},
		),
	}
}

// Observe records a single event.
func (c *Collector) Observe(e client.Event) {
	switch e.Type {
	case client.EventRequestComplete:
		c.requestsTotal.WithLabelValues(e.Operation, OutcomeSuccess, "").Inc()
		c.requestDuration.WithLabelValues(e.Operation).Observe(e.Duration.Seconds())
		if cost := model.EstimateImageCost(e.Model); cost > 0 {
			c.estimatedSpend.WithLabelValues(e.Model).Add(cost)
		}
	case client.EventRequestError:
		c.requestsTotal.WithLabelValues(e.Operation, OutcomeError, string(ai.KindOf(e.Error))).Inc()
		c.requestDuration.WithLabelValues(e.Operation).Observe(e.Duration.Seconds())
	case client.EventRetry:
		if e.RetryEvent != nil && e.RetryEvent.Type == client.RetryEventRetrying {
			c.retriesTotal.WithLabelValues(e.Operation, string(e.RetryEvent.Kind)).Inc()
		}
	case client.EventFallback:
		c.fallbacksTotal.WithLabelValues(string(e.Provider), e.Model).Inc()
	}
}

// Run observes events until the channel is closed or ctx is done.
func (c *Collector) Run(ctx context.Context, events <-chan client.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			c.Observe(e)
		}
	}
}
