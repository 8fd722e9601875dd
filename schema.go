package rowcheck

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rowcheck/rowcheck/internal/structural"
)

// itemsKey is the single top-level attribute a schema document must carry.
const itemsKey = "items"

// allowedKeys is the full FieldRule key whitelist. Anything else is rejected
// at load time.
var allowedKeys = map[string]struct{}{
	"title":          {},
	"description":    {},
	"type":           {},
	"minLength":      {},
	"maxLength":      {},
	"pattern":        {},
	"enum":           {},
	"required":       {},
	"blank":          {},
	"numericKind":    {},
	"numericMinimum": {},
	"numericMaximum": {},
}

// unsupportedKeys are look-alike keys from generic JSON-schema engines that
// cannot be evaluated against text fields. They get a dedicated rejection so
// the remediation is obvious, distinct from plain unknown keys.
var unsupportedKeys = map[string]string{
	"minimum":     "use 'numericMinimum' instead",
	"maximum":     "use 'numericMaximum' instead",
	"format":      "it cannot be evaluated against text fields",
	"divisibleBy": "it cannot be evaluated against text fields",
}

// Limit is a numeric bound pre-parsed at schema-load time. Raw keeps the
// document's spelling for diagnostics; Int or Float carries the comparable
// value depending on the rule's NumericKind.
type Limit struct {
	Raw   string
	Int   int64
	Float float64
}

// FieldRule holds the constraints for exactly one column position. The
// numeric extension fields are interpreted by this engine; the remaining
// constraints are handed to the generic structural validator.
type FieldRule struct {
	Title       string
	Description string

	Kind NumericKind
	Min  *Limit
	Max  *Limit

	// Delegated to the generic structural validator.
	Type      string
	MinLength *int
	MaxLength *int
	Pattern   string
	Enum      []any
	Required  *bool
	Blank     *bool
}

// Schema is the validated, immutable set of per-column rules. Rule order is
// fixed at load time and aligns positionally with record fields.
type Schema struct {
	Rules []FieldRule

	structural *structural.Validator
}

// BuildSchema validates a raw schema mapping and compiles it into a typed
// Schema. Any violation returns a *SchemaError and no Schema; configuration
// errors are fatal and must stop the caller before any record is read.
func BuildSchema(raw map[string]any) (*Schema, error) {
	if len(raw) != 1 {
		return nil, schemaErrorf(-1, "",
			"schema must have exactly one top-level attribute (%q), found %d", itemsKey, len(raw))
	}
	items, ok := raw[itemsKey]
	if !ok {
		return nil, schemaErrorf(-1, "",
			"schema must have exactly one top-level attribute (%q)", itemsKey)
	}
	seq, ok := items.([]any)
	if !ok {
		return nil, schemaErrorf(-1, itemsKey, "%q must be a sequence of field rules", itemsKey)
	}

	s := &Schema{Rules: make([]FieldRule, 0, len(seq))}
	for i, el := range seq {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, schemaErrorf(i, "", "field rule must be a mapping")
		}
		rule, err := buildFieldRule(i, m)
		if err != nil {
			return nil, err
		}
		s.Rules = append(s.Rules, rule)
	}

	sv, err := structural.Compile(structuralConstraints(s.Rules))
	if err != nil {
		return nil, schemaErrorf(-1, "", "structural constraints rejected: %v", err)
	}
	s.structural = sv
	return s, nil
}

func buildFieldRule(idx int, m map[string]any) (FieldRule, error) {
	var r FieldRule

	// Sorted so that a rule with several bad keys rejects deterministically.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := allowedKeys[k]; ok {
			continue
		}
		if hint, ok := unsupportedKeys[k]; ok {
			return r, schemaErrorf(idx, k, "unsupported key %q - %s", k, hint)
		}
		return r, schemaErrorf(idx, k, "unknown key %q", k)
	}

	if v, ok := m["title"]; ok {
		r.Title = fmt.Sprint(v)
	}
	if v, ok := m["description"]; ok {
		r.Description = fmt.Sprint(v)
	}
	if v, ok := m["type"]; ok {
		r.Type = fmt.Sprint(v)
	}
	if v, ok := m["pattern"]; ok {
		r.Pattern = fmt.Sprint(v)
	}
	if v, ok := m["enum"]; ok {
		vals, ok := v.([]any)
		if !ok {
			return r, schemaErrorf(idx, "enum", "'enum' must be a sequence, got %v", v)
		}
		r.Enum = vals
	}

	for _, k := range []string{"minLength", "maxLength"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		n, ok := asInt(v)
		if !ok {
			return r, schemaErrorf(idx, k, "%q must be an integer, got %v", k, v)
		}
		if k == "minLength" {
			r.MinLength = &n
		} else {
			r.MaxLength = &n
		}
	}

	for _, k := range []string{"required", "blank"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return r, schemaErrorf(idx, k, "%q must be a boolean, got %v", k, v)
		}
		if k == "required" {
			r.Required = &b
		} else {
			r.Blank = &b
		}
	}

	if v, ok := m["numericKind"]; ok {
		str, _ := v.(string)
		kind, ok := parseNumericKind(str)
		if !ok {
			return r, schemaErrorf(idx, "numericKind",
				"'numericKind' must be one of integer, float, string; got %v", v)
		}
		r.Kind = kind
	}

	for _, k := range []string{"numericMinimum", "numericMaximum"} {
		v, ok := m[k]
		if !ok {
			continue
		}
		if !r.Kind.Numeric() {
			return r, schemaErrorf(idx, k,
				"%q requires 'numericKind' to be integer or float", k)
		}
		lim, err := parseLimit(r.Kind, v)
		if err != nil {
			return r, schemaErrorf(idx, k, "%q value %v is not a valid %s", k, v, r.Kind)
		}
		if k == "numericMinimum" {
			r.Min = lim
		} else {
			r.Max = lim
		}
	}

	return r, nil
}

// parseLimit coerces a schema document value to the rule's numeric kind. The
// document may carry the bound as a native number or as a string.
func parseLimit(kind NumericKind, v any) (*Limit, error) {
	raw := fmt.Sprint(v)
	lim := &Limit{Raw: raw}
	switch kind {
	case KindInteger:
		switch n := v.(type) {
		case int:
			lim.Int = int64(n)
		case int64:
			lim.Int = n
		case uint64:
			lim.Int = int64(n)
		case float64:
			if n != float64(int64(n)) {
				return nil, fmt.Errorf("fractional value %v for integer limit", n)
			}
			lim.Int = int64(n)
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, err
			}
			lim.Int = i
		default:
			return nil, fmt.Errorf("unsupported limit value %v (%T)", v, v)
		}
	case KindFloat:
		switch n := v.(type) {
		case int:
			lim.Float = float64(n)
		case int64:
			lim.Float = float64(n)
		case uint64:
			lim.Float = float64(n)
		case float64:
			lim.Float = n
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, err
			}
			lim.Float = f
		default:
			return nil, fmt.Errorf("unsupported limit value %v (%T)", v, v)
		}
	}
	return lim, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// structuralConstraints projects the delegated portion of each rule for the
// generic engine adapter.
func structuralConstraints(rules []FieldRule) []structural.FieldConstraint {
	out := make([]structural.FieldConstraint, 0, len(rules))
	for _, r := range rules {
		out = append(out, structural.FieldConstraint{
			Title:     r.Title,
			Type:      r.Type,
			MinLength: r.MinLength,
			MaxLength: r.MaxLength,
			Pattern:   r.Pattern,
			Enum:      r.Enum,
			Required:  r.Required,
			Blank:     r.Blank,
		})
	}
	return out
}
