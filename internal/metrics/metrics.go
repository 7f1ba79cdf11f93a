package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg            *prometheus.Registry
	WebhookEvents  *prometheus.CounterVec
	WebhookLatency prometheus.Histogram
	OrdersExported prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_events_total",
		Help: "Order webhook events by topic and outcome.",
	}, []string{"topic", "outcome"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "webhook_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	exported := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_exported_total"})

	r.MustRegister(events, latency, exported)
	return &Registry{
		reg:            r,
		WebhookEvents:  events,
		WebhookLatency: latency,
		OrdersExported: exported,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
