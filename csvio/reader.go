package csvio

import (
	"encoding/csv"
	"io"
)

// Reader streams records from a delimited source one at a time. Field-count
// enforcement is deliberately disabled here; judging counts is the
// validator's job, not the parser's.
type Reader struct {
	cr      *csv.Reader
	dialect Dialect
	row     int
}

// NewReader wraps r with the given dialect.
func NewReader(r io.Reader, d Dialect) *Reader {
	cr := csv.NewReader(r)
	cr.Comma = d.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{cr: cr, dialect: d}
}

// Read returns the next record and whether it is the stream's header row.
// It returns io.EOF when the source is exhausted.
func (r *Reader) Read() ([]string, bool, error) {
	rec, err := r.cr.Read()
	if err != nil {
		return nil, false, err
	}
	r.row++
	header := r.dialect.HasHeader && r.row == 1
	return rec, header, nil
}

// Dialect returns the dialect the reader was built with.
func (r *Reader) Dialect() Dialect { return r.dialect }
