package rowcheck_test

import (
	"errors"
	"strings"
	"testing"

	rowcheck "github.com/rowcheck/rowcheck"
)

func rule(m map[string]any) map[string]any {
	return map[string]any{"items": []any{m}}
}

func mustSchemaError(t *testing.T, raw map[string]any) *rowcheck.SchemaError {
	t.Helper()
	_, err := rowcheck.BuildSchema(raw)
	if err == nil {
		t.Fatalf("expected schema rejection, got nil")
	}
	var se *rowcheck.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	return se
}

func TestBuildSchema_TopLevelShape(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{"empty", map[string]any{}},
		{"two attributes", map[string]any{"items": []any{}, "extra": true}},
		{"wrong attribute", map[string]any{"fields": []any{}}},
		{"items not a sequence", map[string]any{"items": "nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			se := mustSchemaError(t, tc.raw)
			if se.Field != -1 {
				t.Fatalf("structural errors are schema-level, got field %d", se.Field)
			}
		})
	}
}

func TestBuildSchema_UnknownVsUnsupportedKeys(t *testing.T) {
	unknown := mustSchemaError(t, rule(map[string]any{"frobnicate": 1}))
	if !strings.Contains(unknown.Error(), "unknown key") {
		t.Fatalf("want 'unknown key' in %q", unknown.Error())
	}

	unsupported := mustSchemaError(t, rule(map[string]any{"minimum": 0}))
	if !strings.Contains(unsupported.Error(), "unsupported key") {
		t.Fatalf("want 'unsupported key' in %q", unsupported.Error())
	}
	if !strings.Contains(unsupported.Error(), "numericMinimum") {
		t.Fatalf("want remediation hint naming numericMinimum in %q", unsupported.Error())
	}
	if strings.Contains(unsupported.Error(), "unknown key") {
		t.Fatalf("unsupported keys must not be reported as unknown: %q", unsupported.Error())
	}

	for _, k := range []string{"maximum", "format", "divisibleBy"} {
		se := mustSchemaError(t, rule(map[string]any{k: "x"}))
		if !strings.Contains(se.Error(), "unsupported key") {
			t.Fatalf("key %q: want 'unsupported key' in %q", k, se.Error())
		}
	}
}

func TestBuildSchema_BooleanKeysAreStrict(t *testing.T) {
	for _, v := range []any{"yes", 1, "true"} {
		se := mustSchemaError(t, rule(map[string]any{"required": v}))
		if se.Key != "required" {
			t.Fatalf("want offending key 'required', got %q", se.Key)
		}
	}
	se := mustSchemaError(t, rule(map[string]any{"blank": "false"}))
	if !strings.Contains(se.Error(), "boolean") {
		t.Fatalf("want boolean complaint in %q", se.Error())
	}

	if _, err := rowcheck.BuildSchema(rule(map[string]any{"required": true, "blank": false})); err != nil {
		t.Fatalf("proper booleans must pass: %v", err)
	}
}

func TestBuildSchema_NumericKindValues(t *testing.T) {
	for _, v := range []string{"integer", "float", "string"} {
		if _, err := rowcheck.BuildSchema(rule(map[string]any{"numericKind": v})); err != nil {
			t.Fatalf("numericKind %q must pass: %v", v, err)
		}
	}
	se := mustSchemaError(t, rule(map[string]any{"numericKind": "decimal"}))
	if !strings.Contains(se.Error(), "numericKind") {
		t.Fatalf("want numericKind named in %q", se.Error())
	}
}

func TestBuildSchema_LimitRequiresNumericKind(t *testing.T) {
	se := mustSchemaError(t, rule(map[string]any{"numericMinimum": 0}))
	if !strings.Contains(se.Error(), "numericMinimum") {
		t.Fatalf("want violated limit named in %q", se.Error())
	}

	// Declared but non-numeric kind is just as malformed.
	se = mustSchemaError(t, rule(map[string]any{"numericKind": "string", "numericMaximum": 10}))
	if !strings.Contains(se.Error(), "numericMaximum") {
		t.Fatalf("want violated limit named in %q", se.Error())
	}
}

func TestBuildSchema_LimitMustCoerce(t *testing.T) {
	se := mustSchemaError(t, rule(map[string]any{"numericKind": "integer", "numericMinimum": "abc"}))
	if !strings.Contains(se.Error(), "abc") {
		t.Fatalf("want offending value in %q", se.Error())
	}
	mustSchemaError(t, rule(map[string]any{"numericKind": "integer", "numericMaximum": 1.5}))

	if _, err := rowcheck.BuildSchema(rule(map[string]any{"numericKind": "float", "numericMinimum": "1.5"})); err != nil {
		t.Fatalf("float limit as string must pass: %v", err)
	}
}

func TestBuildSchema_PreparsesLimits(t *testing.T) {
	s, err := rowcheck.BuildSchema(rule(map[string]any{
		"numericKind":    "integer",
		"numericMinimum": 0,
		"numericMaximum": "100",
	}))
	if err != nil {
		t.Fatalf("BuildSchema: %v", err)
	}
	r := s.Rules[0]
	if r.Kind != rowcheck.KindInteger {
		t.Fatalf("kind = %v", r.Kind)
	}
	if r.Min == nil || r.Min.Int != 0 || r.Max == nil || r.Max.Int != 100 {
		t.Fatalf("limits not pre-parsed: min=%+v max=%+v", r.Min, r.Max)
	}
	if r.Max.Raw != "100" {
		t.Fatalf("raw spelling must survive for diagnostics, got %q", r.Max.Raw)
	}
}

func TestBuildSchema_RejectsBadPatternAtLoad(t *testing.T) {
	if _, err := rowcheck.BuildSchema(rule(map[string]any{"pattern": "(unclosed"})); err == nil {
		t.Fatalf("invalid pattern must be a configuration error, not a record failure")
	}
}

func TestBuildSchema_FieldIndexInErrors(t *testing.T) {
	raw := map[string]any{"items": []any{
		map[string]any{"title": "ok"},
		map[string]any{"bogus": 1},
	}}
	se := mustSchemaError(t, raw)
	if se.Field != 1 {
		t.Fatalf("want rule index 1, got %d", se.Field)
	}
}
