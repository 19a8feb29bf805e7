package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Seed related metrics
	SeedRowsInserted  *prometheus.CounterVec
	SeedRowsFailed    *prometheus.CounterVec
	SeedTablesCreated prometheus.Counter

	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Lookup cache metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Mail relay metrics
	MailSendSuccess *prometheus.CounterVec
	MailSendFailure *prometheus.CounterVec
}

// New builds an unregistered metric set; call Register to expose it.
func New(namespace string) *Metrics {
	return &Metrics{
		SeedRowsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "rows_inserted_total",
			Help:      "Total number of fixture rows inserted while seeding",
		}, []string{"table"}),
		SeedRowsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "rows_failed_total",
			Help:      "Total number of fixture rows skipped because the insert failed",
		}, []string{"table"}),
		SeedTablesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "tables_created_total",
			Help:      "Total number of tables created by the initializer",
		}),

		DatabaseOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"operation", "status"}),
		DatabaseLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of lookup cache hits",
		}, []string{"backend"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of lookup cache misses",
		}, []string{"backend"}),

		MailSendSuccess: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "send_success_total",
			Help:      "Total number of contact form mails handed to the SMTP relay",
		}, []string{"host"}),
		MailSendFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "send_failure_total",
			Help:      "Total number of contact form mails the SMTP relay rejected",
		}, []string{"host"}),
	}
}

// Register exposes every collector on reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.SeedRowsInserted,
		m.SeedRowsFailed,
		m.SeedTablesCreated,
		m.DatabaseOperations,
		m.DatabaseLatency,
		m.CacheHits,
		m.CacheMisses,
		m.MailSendSuccess,
		m.MailSendFailure,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveQuery records the outcome and latency of one store call.
func (m *Metrics) ObserveQuery(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(operation, status).Inc()
	m.DatabaseLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
