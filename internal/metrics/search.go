package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search path Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propmatch",
			Name:      "searches_total",
			Help:      "Total number of searches served, by path",
		},
		[]string{"path"}, // "semantic" / "fallback"
	)

	SearchEscalationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "propmatch",
			Name:      "search_escalations_total",
			Help:      "Total number of escalations from the vector path to fallback",
		},
		[]string{"reason"}, // "embed_failed" / "query_failed" / "no_candidates" / "filtered_empty"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchEscalationsTotal)
	searchMetricsRegistered = true
}
