package rowcheck

import (
	"fmt"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeFieldCount     = "field_count"
	CodeNumericKind    = "numeric_kind"
	CodeNumericMinimum = "numeric_minimum"
	CodeNumericMaximum = "numeric_maximum"
	CodeMissingField   = "missing_field"
	CodeStructural     = "structural"
)

// Issue is the diagnostic for a single failed record check. A nil *Issue
// means the check passed. Only the first failing check is ever reported for a
// record; checks are never aggregated.
type Issue struct {
	Code    string // One of the codes listed above.
	Field   int    // Zero-based column index; -1 for record-level issues.
	Title   string // FieldRule title, when the schema declares one.
	Value   string // The offending field value, when applicable.
	Message string // Human-readable diagnostic.
}

// Error returns the diagnostic message, letting *Issue travel as an error.
func (i *Issue) Error() string { return i.Message }

// fieldLabel renders a column reference for diagnostics, including the title
// when the schema declares one: "field 2 (age)".
func fieldLabel(idx int, title string) string {
	if title != "" {
		return fmt.Sprintf("field %d (%s)", idx, title)
	}
	return fmt.Sprintf("field %d", idx)
}

// SchemaError reports a malformed schema. It is fatal: callers must not
// validate any records against a schema whose construction returned one.
type SchemaError struct {
	Field  int    // Rule index within the schema; -1 for schema-level errors.
	Key    string // The offending key, when one is involved.
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Field >= 0 {
		return fmt.Sprintf("schema error: field %d: %s", e.Field, e.Reason)
	}
	return "schema error: " + e.Reason
}

func schemaErrorf(field int, key, format string, a ...any) *SchemaError {
	return &SchemaError{Field: field, Key: key, Reason: fmt.Sprintf(format, a...)}
}
