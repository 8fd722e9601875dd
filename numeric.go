package rowcheck

import (
	"fmt"
	"strconv"
)

// checkNumericKinds coerces each field with a numeric kind and stops at the
// first value that does not convert. A record shorter than the rule sequence
// is reported as a likely delimiter mismatch, not a type failure, since the
// two need different remediation.
func (s *Schema) checkNumericKinds(rec []string) *Issue {
	for i := range s.Rules {
		r := &s.Rules[i]
		if !r.Kind.Numeric() {
			continue
		}
		if i >= len(rec) {
			return &Issue{
				Code:  CodeMissingField,
				Field: i,
				Title: r.Title,
				Message: fmt.Sprintf(
					"%s is missing - record has only %d fields; was the file split on the wrong delimiter?",
					fieldLabel(i, r.Title), len(rec)),
			}
		}
		if !r.Kind.coerces(rec[i]) {
			return &Issue{
				Code:  CodeNumericKind,
				Field: i,
				Title: r.Title,
				Value: rec[i],
				Message: fmt.Sprintf("%s failed numericKind:%s check with value: %q",
					fieldLabel(i, r.Title), r.Kind, rec[i]),
			}
		}
	}
	return nil
}

// checkNumericRanges compares coerced field values against the pre-parsed
// bounds. It runs only after checkNumericKinds passed, so coercion cannot
// fail here; fields outside the record are skipped for the same reason.
func (s *Schema) checkNumericRanges(rec []string) *Issue {
	for i := range s.Rules {
		r := &s.Rules[i]
		if !r.Kind.Numeric() || (r.Min == nil && r.Max == nil) || i >= len(rec) {
			continue
		}
		switch r.Kind {
		case KindInteger:
			v, err := strconv.ParseInt(rec[i], 10, 64)
			if err != nil {
				continue
			}
			if r.Min != nil && v < r.Min.Int {
				return rangeIssue(i, r, CodeNumericMinimum, rec[i], r.Min.Raw)
			}
			if r.Max != nil && v > r.Max.Int {
				return rangeIssue(i, r, CodeNumericMaximum, rec[i], r.Max.Raw)
			}
		case KindFloat:
			v, err := strconv.ParseFloat(rec[i], 64)
			if err != nil {
				continue
			}
			if r.Min != nil && v < r.Min.Float {
				return rangeIssue(i, r, CodeNumericMinimum, rec[i], r.Min.Raw)
			}
			if r.Max != nil && v > r.Max.Float {
				return rangeIssue(i, r, CodeNumericMaximum, rec[i], r.Max.Raw)
			}
		}
	}
	return nil
}

func rangeIssue(idx int, r *FieldRule, code, value, bound string) *Issue {
	check, rel := "numericMinimum", "under the minimum"
	if code == CodeNumericMaximum {
		check, rel = "numericMaximum", "over the maximum"
	}
	return &Issue{
		Code:  code,
		Field: idx,
		Title: r.Title,
		Value: value,
		Message: fmt.Sprintf("%s failed %s check - value %s is %s of %s",
			fieldLabel(idx, r.Title), check, value, rel, bound),
	}
}
