package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// visualization service.
type Metrics struct {
	DatasetRows     prometheus.Gauge
	DatasetLoads    *prometheus.CounterVec // labels: outcome={success,error}
	RowsSkipped     prometheus.Counter
	DatasetReady    prometheus.Gauge
	RefresherActive prometheus.Gauge

	// Interaction metrics.
	BandClicks  *prometheus.CounterVec // labels: band={0..5}
	StateResets *prometheus.CounterVec // labels: action={clear,defaults}

	// Rendering metrics.
	RenderDuration *prometheus.HistogramVec // labels: view={chart,map}

	// Topology fetch metrics.
	TopologyFetches *prometheus.CounterVec // labels: outcome={success,error,empty}
	TopologyCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Activity event metrics.
	EventsPublished    prometheus.Counter
	EventPublishErrors prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.DatasetRows,
		m.DatasetLoads,
		m.RowsSkipped,
		m.DatasetReady,
		m.RefresherActive,
		m.BandClicks,
		m.StateResets,
		m.RenderDuration,
		m.TopologyFetches,
		m.TopologyCache,
		m.EventsPublished,
		m.EventPublishErrors,
	)

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
			Namespace: "zonal_viz",
			Name:      "dataset_rows",
			Help:      "Number of anomaly samples currently loaded.",
		}),
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by outcome.",
		}, []string{"outcome"}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "dataset_rows_skipped_total",
			Help:      "Malformed CSV rows skipped during loads.",
		}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zonal_viz",
			Name:      "dataset_ready",
			Help:      "1 once a dataset load has succeeded, 0 before.",
		}),
		RefresherActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zonal_viz",
			Name:      "dataset_refresher_active",
			Help:      "1 while the dataset refresher loop is running.",
		}),
		BandClicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "band_clicks_total",
			Help:      "Cycle operations by band id.",
		}, []string{"band"}),
		StateResets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "state_resets_total",
			Help:      "Clear and restore-defaults operations.",
		}, []string{"action"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zonal_viz",
			Name:      "render_duration_seconds",
			Help:      "SVG render duration by view.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"view"}),
		TopologyFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "topology_fetches_total",
			Help:      "World-boundaries fetches by outcome.",
		}, []string{"outcome"}),
		TopologyCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "topology_cache_total",
			Help:      "Topology cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "grouping_events_published_total",
			Help:      "Grouping activity events written to the sink topic.",
		}),
		EventPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zonal_viz",
			Name:      "grouping_event_publish_errors_total",
			Help:      "Failed grouping activity event publishes.",
		}),
	}
}
