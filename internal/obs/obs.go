package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hogdash_tool_calls_total",
		Help: "Gateway tool invocations by outcome.",
	}, []string{"tool", "outcome"})

	ToolCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hogdash_tool_call_duration_seconds",
		Help:    "Gateway tool call latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hogdash_cache_hits_total",
		Help: "Result cache hits.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hogdash_cache_misses_total",
		Help: "Result cache misses.",
	})
)
