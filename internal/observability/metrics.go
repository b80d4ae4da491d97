package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "disaster_atlas"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	DatasetRows prometheus.Gauge

	// View metrics.
	ViewRequests *prometheus.CounterVec   // labels: view
	ViewDuration *prometheus.HistogramVec // labels: view
	ViewNoData   *prometheus.CounterVec   // labels: view
	ChartCache   *prometheus.CounterVec   // labels: result={hit,miss}

	// Replay metrics.
	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	PublishRunning   prometheus.Gauge

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Number of records in the loaded dataset.",
		}),
		ViewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_requests_total",
			Help:      "View computations by view name.",
		}, []string{"view"}),
		ViewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_duration_seconds",
			Help:      "Time spent computing a view.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"view"}),
		ViewNoData: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_no_data_total",
			Help:      "View computations that produced no data for the selection.",
		}, []string{"view"}),
		ChartCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_cache_total",
			Help:      "Rendered chart cache lookups by result.",
		}, []string{"result"}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Records written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed Kafka batch writes.",
		}),
		PublishRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "publish_running",
			Help:      "1 while a replay is in progress, 0 otherwise.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.DatasetRows,
		m.ViewRequests,
		m.ViewDuration,
		m.ViewNoData,
		m.ChartCache,
		m.RecordsPublished,
		m.PublishErrors,
		m.PublishRunning,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	}
}
