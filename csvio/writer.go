package csvio

import (
	"encoding/csv"
	"io"
)

// Splitter routes valid and invalid records to separate CSV outputs.
// Invalid records can optionally carry their diagnostic as an extra trailing
// column for downstream triage.
type Splitter struct {
	valid      *csv.Writer
	invalid    *csv.Writer
	appendDiag bool
}

// SplitterOption configures a Splitter.
type SplitterOption func(*Splitter)

// WithDiagnosticColumn appends the diagnostic message as the last column of
// each invalid record.
func WithDiagnosticColumn() SplitterOption {
	return func(s *Splitter) { s.appendDiag = true }
}

// NewSplitter builds a sink writing valid records to good and invalid
// records to bad, using the dialect's delimiter for both.
func NewSplitter(good, bad io.Writer, d Dialect, opts ...SplitterOption) *Splitter {
	vw := csv.NewWriter(good)
	vw.Comma = d.Delimiter
	iw := csv.NewWriter(bad)
	iw.Comma = d.Delimiter
	s := &Splitter{valid: vw, invalid: iw}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Valid writes one record to the good output.
func (s *Splitter) Valid(rec []string) error {
	return s.valid.Write(rec)
}

// Invalid writes one record to the bad output, appending the diagnostic when
// configured.
func (s *Splitter) Invalid(rec []string, diag string) error {
	if s.appendDiag {
		rec = append(append([]string(nil), rec...), diag)
	}
	return s.invalid.Write(rec)
}

// Flush drains both buffered writers and reports the first error.
func (s *Splitter) Flush() error {
	s.valid.Flush()
	s.invalid.Flush()
	if err := s.valid.Error(); err != nil {
		return err
	}
	return s.invalid.Error()
}
