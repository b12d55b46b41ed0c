package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PageViews counts composed public pages by template
	PageViews = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpage_page_views_total",
			Help: "Total number of public pages composed, by template",
		},
		[]string{"template"},
	)

	// PageLookups counts public page requests by outcome
	PageLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpage_page_lookups_total",
			Help: "Public page lookups by outcome (hit, miss, not_found, error)",
		},
		[]string{"outcome"},
	)

	ComposeLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "linkpage_compose_duration_seconds",
			Help:    "Latency of public page composition",
			Buckets: prometheus.DefBuckets,
		},
	)

	// LinkClicks counts link activations
	LinkClicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "linkpage_link_clicks_total",
			Help: "Total number of link activations",
		},
	)

	// AnalyticsEvents tracks analytics delivery by event name and result
	AnalyticsEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpage_analytics_events_total",
			Help: "Analytics events by name and result (delivered, failed, dropped)",
		},
		[]string{"name", "result"},
	)

	// PositionRepairs counts collections whose positions had to be reindexed
	PositionRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpage_position_repairs_total",
			Help: "Collections reindexed because of duplicate positions",
		},
		[]string{"collection"},
	)

	// Uploads tracks media uploads by kind and status
	Uploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkpage_uploads_total",
			Help: "Media uploads by kind and status",
		},
		[]string{"kind", "status"},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
