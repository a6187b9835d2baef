// Package metrics holds the Prometheus collectors of the analytics engine.
// Collectors register with the default registry, served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RiskAssessments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isg",
		Name:      "risk_assessments_total",
		Help:      "Risk scores computed, by resulting level.",
	}, []string{"level"})

	IndicatorUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isg",
		Name:      "indicator_updates_total",
		Help:      "Indicator actual updates, by outcome (status or error reason).",
	}, []string{"outcome"})

	BatchUpdateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "isg",
		Name:      "indicator_batch_update_duration_seconds",
		Help:      "Wall time of batch indicator updates.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	TrendAnalyses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isg",
		Name:      "trend_analyses_total",
		Help:      "Trend analyses computed, by overall trend.",
	}, []string{"trend"})
)
