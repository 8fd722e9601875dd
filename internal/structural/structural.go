// Package structural adapts the delegated portion of a field-rule schema to
// a generic JSON Schema engine. Constraints are translated into a draft-4
// document once at load time; per-record validation submits the raw field
// values as an array and surfaces the engine's first violation verbatim.
package structural

import (
	"fmt"
	"strconv"

	"github.com/xeipuuv/gojsonschema"
)

// FieldConstraint carries the generic (non-numeric) constraints of one
// column rule.
type FieldConstraint struct {
	Title     string
	Type      string
	MinLength *int
	MaxLength *int
	Pattern   string
	Enum      []any
	Required  *bool
	Blank     *bool
}

// Validator is a compiled structural check. It is immutable and safe for
// repeated use within one stream.
type Validator struct {
	schema *gojsonschema.Schema
	titles []string
}

// Compile translates the constraints into a JSON Schema array document and
// compiles it. Translation rules: `blank: false` becomes a minLength of at
// least 1; a trailing run of `required: false` columns lowers minItems.
// Compile errors (for example an invalid pattern) are configuration errors.
func Compile(fields []FieldConstraint) (*Validator, error) {
	doc := document(fields)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compiling structural schema: %w", err)
	}
	titles := make([]string, len(fields))
	for i, f := range fields {
		titles[i] = f.Title
	}
	return &Validator{schema: schema, titles: titles}, nil
}

// Validate checks one record. On failure it returns the first violation's
// diagnostic plus the offending column index (-1 when the violation is not
// tied to a single column).
func (v *Validator) Validate(rec []string) (diag string, field int, ok bool) {
	doc := make([]any, len(rec))
	for i, s := range rec {
		doc[i] = s
	}
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Sprintf("structural check aborted: %v", err), -1, false
	}
	if result.Valid() {
		return "", -1, true
	}
	re := result.Errors()[0]
	idx := fieldIndex(re.Field())
	return fmt.Sprintf("%s failed structural check: %s", v.label(idx), re.Description()), idx, false
}

func (v *Validator) label(idx int) string {
	if idx < 0 {
		return "record"
	}
	if idx < len(v.titles) && v.titles[idx] != "" {
		return fmt.Sprintf("field %d (%s)", idx, v.titles[idx])
	}
	return fmt.Sprintf("field %d", idx)
}

// fieldIndex extracts a column index from the engine's field path, which is
// the element index for item violations and "(root)" for whole-array ones.
func fieldIndex(field string) int {
	n, err := strconv.Atoi(field)
	if err != nil {
		return -1
	}
	return n
}

func document(fields []FieldConstraint) map[string]any {
	items := make([]any, 0, len(fields))
	for _, f := range fields {
		item := map[string]any{}
		if f.Type != "" && f.Type != "any" {
			item["type"] = f.Type
		}
		minLen := f.MinLength
		if f.Blank != nil && !*f.Blank && minLen == nil {
			one := 1
			minLen = &one
		}
		if minLen != nil {
			item["minLength"] = *minLen
		}
		if f.MaxLength != nil {
			item["maxLength"] = *f.MaxLength
		}
		if f.Pattern != "" {
			item["pattern"] = f.Pattern
		}
		if len(f.Enum) > 0 {
			item["enum"] = f.Enum
		}
		items = append(items, item)
	}

	// Trailing optional columns shrink the minimum record width.
	minItems := len(fields)
	for minItems > 0 {
		req := fields[minItems-1].Required
		if req != nil && !*req {
			minItems--
			continue
		}
		break
	}

	return map[string]any{
		"$schema":  "http://json-schema.org/draft-04/schema#",
		"type":     "array",
		"items":    items,
		"minItems": minItems,
	}
}
