// Package metrics exposes Prometheus counters for record validation runs.
// Counters live on a dedicated registry so embedding services can scrape or
// push them without touching the global default.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder tracks validation outcomes.
type Recorder struct {
	registry *prometheus.Registry

	recordsTotal   prometheus.Counter
	recordsValid   prometheus.Counter
	recordsInvalid prometheus.Counter
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	return &Recorder{
		registry: reg,
		recordsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rowcheck_records_total",
			Help: "Total number of records validated",
		}),
		recordsValid: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rowcheck_records_valid_total",
			Help: "Number of records that passed all checks",
		}),
		recordsInvalid: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rowcheck_records_invalid_total",
			Help: "Number of records that failed a check",
		}),
	}
}

// Observe records one validation outcome.
func (r *Recorder) Observe(valid bool) {
	r.recordsTotal.Inc()
	if valid {
		r.recordsValid.Inc()
	} else {
		r.recordsInvalid.Inc()
	}
}

// Registry returns the backing registry for custom exposition.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler returns an HTTP handler serving the recorder's metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
