package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "hyperreal"

// Tool call outcomes.
const (
	outcomeOK          = "ok"
	outcomeToolError   = "tool_error"
	outcomeBadRequest  = "bad_request"
	outcomePanic       = "panic"
	outcomeEncodeError = "encode_error"
)

type metrics struct {
	registry  *prometheus.Registry
	toolCalls *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// newMetrics uses a private registry so that several servers can live in
// one process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool calls handled, by tool and outcome.",
		}, []string{"tool", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.registry.MustRegister(
		m.toolCalls,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
