package rowcheck

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rowcheck/rowcheck/metrics"
)

// RecordReader supplies one record per call, with a flag marking the
// stream's header row. It returns io.EOF when the stream is exhausted.
type RecordReader interface {
	Read() (fields []string, header bool, err error)
}

// RecordSink accepts classified records. Invalid receives the diagnostic for
// the record's first failing check.
type RecordSink interface {
	Valid(rec []string) error
	Invalid(rec []string, diag string) error
}

// Stats are the running tallies of one validation pass.
type Stats struct {
	Total   int
	Valid   int
	Invalid int
}

// Runner drives a single synchronous pass: read, validate, route, repeat.
// Record-level failures are steady-state outcomes and never abort the
// stream; only source/sink errors do.
type Runner struct {
	validator *RecordValidator
	sink      RecordSink
	log       zerolog.Logger
	recorder  *metrics.Recorder
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger attaches a logger for per-record diagnostics and summaries.
func WithLogger(log zerolog.Logger) RunnerOption {
	return func(r *Runner) { r.log = log }
}

// WithMetrics attaches a Prometheus recorder for outcome counters.
func WithMetrics(rec *metrics.Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// NewRunner builds a runner over one validator and sink.
func NewRunner(v *RecordValidator, sink RecordSink, opts ...RunnerOption) *Runner {
	r := &Runner{validator: v, sink: sink, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run consumes the source until EOF. Per record: the field-count check runs
// first; a header row is acceptable as-is once counted; otherwise a failed
// count skips the schema checks entirely.
func (r *Runner) Run(ctx context.Context, src RecordReader) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		rec, header, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading record %d: %w", stats.Total+1, err)
		}

		iss := r.validator.CheckFieldCount(len(rec))
		if iss == nil && !header {
			iss = r.validator.CheckSchema(rec)
		}

		stats.Total++
		if r.recorder != nil {
			r.recorder.Observe(iss == nil)
		}
		if iss == nil {
			stats.Valid++
			if err := r.sink.Valid(rec); err != nil {
				return stats, fmt.Errorf("writing valid record: %w", err)
			}
			continue
		}
		stats.Invalid++
		r.log.Debug().
			Int("record", stats.Total).
			Str("code", iss.Code).
			Int("field", iss.Field).
			Msg(iss.Message)
		if err := r.sink.Invalid(rec, iss.Message); err != nil {
			return stats, fmt.Errorf("writing invalid record: %w", err)
		}
	}
	r.log.Info().
		Int("total", stats.Total).
		Int("valid", stats.Valid).
		Int("invalid", stats.Invalid).
		Msg("validation pass complete")
	return stats, nil
}
