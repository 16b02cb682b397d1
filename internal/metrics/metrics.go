package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RulesFormatted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "automation_rules_formatted_total",
		Help: "Total number of rules converted to their display shape.",
	})

	EventChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_event_changes_total",
		Help: "Total number of event changes, labelled by the new event name.",
	}, []string{"event_name"})

	RemovalsRefused = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_removals_refused_total",
		Help: "Removals refused because the rule would be left without a condition or action.",
	}, []string{"kind"})

	CatalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "automation_catalog_reloads_total",
		Help: "Catalog reload attempts, labelled by result.",
	}, []string{"result"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "automation_http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"method", "status"})

	BatchQueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "automation_batch_queue_utilization_ratio",
		Help: "Current batch format queue utilization (0–1).",
	})
)
