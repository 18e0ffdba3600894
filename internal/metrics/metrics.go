package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for queries and imports.
type Metrics struct {
	Queries       *prometheus.CounterVec
	QueryErrors   *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	Records       prometheus.Gauge
	Imports       *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_queries_total",
			Help: "Total number of country queries by operation",
		}, []string{"operation"}),
		QueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_query_errors_total",
			Help: "Total number of country queries that failed in the store",
		}, []string{"operation"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "countries_query_duration_seconds",
			Help:    "Latency of country queries",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		Records: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countries_records",
			Help: "Number of country records after the last import",
		}),
		Imports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countries_imports_total",
			Help: "Total number of imports by outcome",
		}, []string{"status"}),
	}
}

// ObserveQuery records one finished query. Safe on a nil receiver.
func (m *Metrics) ObserveQuery(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(operation).Inc()
	m.QueryDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	if err != nil {
		m.QueryErrors.WithLabelValues(operation).Inc()
	}
}

// ObserveImport records one finished import. Safe on a nil receiver.
func (m *Metrics) ObserveImport(records int64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.Imports.WithLabelValues("failed").Inc()
		return
	}
	m.Imports.WithLabelValues("completed").Inc()
	m.SetRecords(records)
}

// SetRecords updates the record gauge. Safe on a nil receiver.
func (m *Metrics) SetRecords(records int64) {
	if m == nil {
		return
	}
	m.Records.Set(float64(records))
}
