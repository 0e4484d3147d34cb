// Package metrics exposes prometheus instruments for refinement calls and
// window visibility transitions.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	providerReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptlight",
			Name:      "provider_requests_total",
			Help:      "Total refinement requests by provider, model and result",
		},
		[]string{"provider", "model", "result"},
	)

	providerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptlight",
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of refinement requests by provider and model",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptlight",
			Name:      "visibility_transitions_total",
			Help:      "Window visibility transitions by triggering event and resulting state",
		},
		[]string{"event", "state"},
	)

	hostFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptlight",
			Name:      "host_command_failures_total",
			Help:      "Window commands the host failed to perform",
		},
		[]string{"op"},
	)

	registerOnce sync.Once
)

// Init registers the instruments with the default registry. Safe to call
// more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(providerReqs, providerLatency, transitions, hostFailures)
	})
}

func Handler() http.Handler { return promhttp.Handler() }

// ObserveProvider records one refinement call. model must come from a small
// fixed set; the dispatcher passes the provider default or "custom".
func ObserveProvider(provider, model, result string, dur time.Duration) {
	providerReqs.WithLabelValues(provider, model, result).Inc()
	providerLatency.WithLabelValues(provider, model).Observe(dur.Seconds())
}

func IncTransition(event, state string) { transitions.WithLabelValues(event, state).Inc() }

func IncHostFailure(op string) { hostFailures.WithLabelValues(op).Inc() }
