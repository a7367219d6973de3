package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// alert notifier.
type Metrics struct {
	PassesTotal  *prometheus.CounterVec // labels: outcome={completed,aborted}
	PassDuration prometheus.Histogram

	EntriesSeen        prometheus.Counter
	Notifications      *prometheus.CounterVec // labels: kind={new,update}
	NotifyErrors       prometheus.Counter
	CacheEntries       prometheus.Gauge
	CachePersistErrors prometheus.Counter

	SinkEvents prometheus.Counter
	SinkErrors prometheus.Counter

	ServiceRunning prometheus.Gauge
}

// NewMetrics creates and registers all notifier metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PassesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_alert",
			Name:      "passes_total",
			Help:      "Polling passes by outcome.",
		}, []string{"outcome"}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_alert",
			Name:      "pass_duration_seconds",
			Help:      "Duration of a complete fetch-classify-notify-persist pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		EntriesSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_alert",
			Name:      "entries_seen_total",
			Help:      "Feed entries examined across all passes.",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_alert",
			Name:      "notifications_total",
			Help:      "Notifications delivered, by kind.",
		}, []string{"kind"}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_alert",
			Name:      "notify_errors_total",
			Help:      "Notification delivery failures.",
		}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_alert",
			Name:      "cache_entries",
			Help:      "Alert cache entries after the most recent pass.",
		}),
		CachePersistErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_alert",
			Name:      "cache_persist_errors_total",
			Help:      "Failed attempts to write the alert cache file.",
		}),
		SinkEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_alert",
			Name:      "sink_events_total",
			Help:      "Notification events published to the Kafka sink.",
		}),
		SinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_alert",
			Name:      "sink_errors_total",
			Help:      "Failed publishes to the Kafka sink.",
		}),
		ServiceRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storm_alert",
			Name:      "service_running",
			Help:      "1 while the poll scheduler is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.PassesTotal,
		m.PassDuration,
		m.EntriesSeen,
		m.Notifications,
		m.NotifyErrors,
		m.CacheEntries,
		m.CachePersistErrors,
		m.SinkEvents,
		m.SinkErrors,
		m.ServiceRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PassesTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_alert", Name: "passes_total"}, []string{"outcome"}),
		PassDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "storm_alert", Name: "pass_duration_seconds"}),
		EntriesSeen:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_alert", Name: "entries_seen_total"}),
		Notifications:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "storm_alert", Name: "notifications_total"}, []string{"kind"}),
		NotifyErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_alert", Name: "notify_errors_total"}),
		CacheEntries:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_alert", Name: "cache_entries"}),
		CachePersistErrors: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_alert", Name: "cache_persist_errors_total"}),
		SinkEvents:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_alert", Name: "sink_events_total"}),
		SinkErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "storm_alert", Name: "sink_errors_total"}),
		ServiceRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "storm_alert", Name: "service_running"}),
	}
}
