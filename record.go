package rowcheck

import "fmt"

// RecordValidator classifies records under a field-count contract and an
// optional Schema. A nil *Issue from a check means the record passed it.
//
// A RecordValidator is single-writer/single-reader: the adopted field count
// is plain state, so an instance must not be shared across concurrent
// streams without external synchronization.
type RecordValidator struct {
	schema  *Schema
	want    int
	wantSet bool
}

// RecordOption configures a RecordValidator.
type RecordOption func(*RecordValidator)

// WithSchema attaches a validated Schema; CheckSchema is a no-op without one.
func WithSchema(s *Schema) RecordOption {
	return func(v *RecordValidator) { v.schema = s }
}

// WithFieldCount fixes the expected field count up front instead of adopting
// it from the first record.
func WithFieldCount(n int) RecordOption {
	return func(v *RecordValidator) {
		v.want = n
		v.wantSet = true
	}
}

// NewRecordValidator builds a validator for one record stream.
func NewRecordValidator(opts ...RecordOption) *RecordValidator {
	v := &RecordValidator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// CheckFieldCount verifies the record's field count against the contract.
// The first call on an unconfigured validator adopts its argument as the
// contract; the count is immutable after that.
func (v *RecordValidator) CheckFieldCount(actual int) *Issue {
	if !v.wantSet {
		v.want = actual
		v.wantSet = true
	}
	if actual != v.want {
		return &Issue{
			Code:    CodeFieldCount,
			Field:   -1,
			Message: fmt.Sprintf("bad field count - should be %d but is: %d", v.want, actual),
		}
	}
	return nil
}

// CheckSchema runs the layered schema checks against one record, stopping at
// the first violation. Order matters: the numeric checks are cheap, specific,
// and produce more actionable diagnostics than the generic engine, so their
// message wins when a record has several problems.
func (v *RecordValidator) CheckSchema(rec []string) *Issue {
	if v.schema == nil {
		return nil
	}
	if iss := v.schema.checkNumericKinds(rec); iss != nil {
		return iss
	}
	if iss := v.schema.checkNumericRanges(rec); iss != nil {
		return iss
	}
	return v.schema.checkStructural(rec)
}

// checkStructural delegates the raw field values to the generic structural
// validator and reports its first violation verbatim.
func (s *Schema) checkStructural(rec []string) *Issue {
	diag, idx, ok := s.structural.Validate(rec)
	if ok {
		return nil
	}
	title := ""
	if idx >= 0 && idx < len(s.Rules) {
		title = s.Rules[idx].Title
	}
	value := ""
	if idx >= 0 && idx < len(rec) {
		value = rec[idx]
	}
	return &Issue{
		Code:    CodeStructural,
		Field:   idx,
		Title:   title,
		Value:   value,
		Message: diag,
	}
}
