package rowcheck_test

import (
	"os"
	"path/filepath"
	"testing"

	rowcheck "github.com/rowcheck/rowcheck"
)

const yamlSchema = `
items:
  - title: part
    blank: false
  - title: qty
    numericKind: integer
    numericMinimum: 0
`

const jsonSchema = `{
  "items": [
    {"title": "part", "blank": false},
    {"title": "qty", "numericKind": "integer", "numericMinimum": 0}
  ]
}`

func TestSchemaFromYAML(t *testing.T) {
	raw, err := rowcheck.SchemaFromYAML([]byte(yamlSchema))
	if err != nil {
		t.Fatalf("SchemaFromYAML: %v", err)
	}
	s, err := rowcheck.BuildSchema(raw)
	if err != nil {
		t.Fatalf("BuildSchema: %v", err)
	}
	if len(s.Rules) != 2 || s.Rules[1].Kind != rowcheck.KindInteger {
		t.Fatalf("unexpected schema: %+v", s.Rules)
	}
}

func TestSchemaFromJSON(t *testing.T) {
	raw, err := rowcheck.SchemaFromJSON([]byte(jsonSchema))
	if err != nil {
		t.Fatalf("SchemaFromJSON: %v", err)
	}
	s, err := rowcheck.BuildSchema(raw)
	if err != nil {
		t.Fatalf("BuildSchema: %v", err)
	}
	if s.Rules[1].Min == nil || s.Rules[1].Min.Int != 0 {
		t.Fatalf("limit lost in json load: %+v", s.Rules[1])
	}
}

func TestSchemaFromYAML_SyntaxError(t *testing.T) {
	if _, err := rowcheck.SchemaFromYAML([]byte(":\n  - ]broken")); err == nil {
		t.Fatalf("expected yaml syntax error")
	}
}

func TestLoadSchema_SelectsDecoderByExtension(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "schema.yml")
	if err := os.WriteFile(yml, []byte(yamlSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := rowcheck.LoadSchema(yml); err != nil {
		t.Fatalf("yaml load: %v", err)
	}

	jsn := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(jsn, []byte(jsonSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := rowcheck.LoadSchema(jsn); err != nil {
		t.Fatalf("json load: %v", err)
	}

	if _, err := rowcheck.LoadSchema(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadSchema_MalformedSchemaIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(path, []byte("items:\n  - minimum: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := rowcheck.LoadSchema(path); err == nil {
		t.Fatalf("unsupported key must reject the schema at load")
	}
}
