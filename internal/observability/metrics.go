package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gps_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Dataset metrics, set once at startup.
	PointsLoaded     prometheus.Gauge
	PointsDropped    prometheus.Gauge
	BoundariesLoaded prometheus.Gauge

	// Request path metrics.
	HTTPRequests      *prometheus.CounterVec // labels: route, status
	FilterDuration    prometheus.Histogram
	FilteredPoints    prometheus.Histogram
	MapRenderErrors   prometheus.Counter
	ChartRenderErrors *prometheus.CounterVec // labels: chart={bar,pie}

	// Selection event sink metrics.
	SelectionEventsPublished prometheus.Counter
	SelectionEventErrors     prometheus.Counter
	SelectionEventsEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.PointsLoaded,
		m.PointsDropped,
		m.BoundariesLoaded,
		m.HTTPRequests,
		m.FilterDuration,
		m.FilteredPoints,
		m.MapRenderErrors,
		m.ChartRenderErrors,
		m.SelectionEventsPublished,
		m.SelectionEventErrors,
		m.SelectionEventsEnabled,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PointsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "points_loaded",
			Help:      "Valid GPS points held in memory.",
		}),
		PointsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "points_dropped",
			Help:      "CSV rows dropped at load for missing coordinates.",
		}),
		BoundariesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "boundaries_loaded",
			Help:      "Boundary polygons held in memory.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		FilterDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_duration_seconds",
			Help:      "Time spent filtering the dataset for one selection.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		FilteredPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filtered_points",
			Help:      "Points matched per selection.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		MapRenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_render_errors_total",
			Help:      "Map renders replaced by the fallback map.",
		}),
		ChartRenderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_render_errors_total",
			Help:      "Chart render failures by chart.",
		}, []string{"chart"}),
		SelectionEventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_events_published_total",
			Help:      "Selection events acknowledged by Kafka.",
		}),
		SelectionEventErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_event_errors_total",
			Help:      "Selection events that failed to publish.",
		}),
		SelectionEventsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selection_events_enabled",
			Help:      "1 when selection events are published to Kafka, 0 otherwise.",
		}),
	}
}
