package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "hospital_dashboard"

// Recompute results.
const (
	ResultOK    = "ok"
	ResultEmpty = "empty"
	ResultError = "error"
)

// Metrics groups the dashboard collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	recomputeTotal *prometheus.CounterVec
	recomputeStale prometheus.Counter
	queryDuration  *prometheus.HistogramVec
	submissions    *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		recomputeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recompute_total",
			Help:      "Dashboard recomputations by result",
		}, []string{"result"}),
		recomputeStale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recompute_stale_total",
			Help:      "Recompute results discarded because a newer filter was triggered",
		}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Duration of aggregate queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointment_submissions_total",
			Help:      "Appointment submissions by terminal state",
		}, []string{"state"}),
	}
	reg.MustRegister(m.recomputeTotal, m.recomputeStale, m.queryDuration, m.submissions)
	return m
}

// RegisterDBStats exposes database/sql pool statistics.
func RegisterDBStats(reg prometheus.Registerer, db *sql.DB) {
	reg.MustRegister(collectors.NewDBStatsCollector(db, "hospital"))
}

func (m *Metrics) ObserveRecompute(result string) {
	if m == nil {
		return
	}
	m.recomputeTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveStale() {
	if m == nil {
		return
	}
	m.recomputeStale.Inc()
}

func (m *Metrics) ObserveQuery(name string, started time.Time) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(name).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveSubmission(state string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(state).Inc()
}
