package rowcheck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SchemaFromYAML decodes a YAML schema document into the raw mapping consumed
// by BuildSchema. Parse-syntax errors belong to the document, not to schema
// validation, and are returned as plain errors.
func SchemaFromYAML(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding yaml schema: %w", err)
	}
	return raw, nil
}

// SchemaFromJSON decodes a JSON schema document into the raw mapping consumed
// by BuildSchema.
func SchemaFromJSON(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding json schema: %w", err)
	}
	return raw, nil
}

// SchemaFromFile reads a schema document, selecting the decoder by file
// extension. Anything that is not .json is treated as YAML, which also
// covers JSON content since YAML is a superset.
func SchemaFromFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return SchemaFromJSON(data)
	}
	return SchemaFromYAML(data)
}

// LoadSchema reads and validates a schema document in one step.
func LoadSchema(path string) (*Schema, error) {
	raw, err := SchemaFromFile(path)
	if err != nil {
		return nil, err
	}
	return BuildSchema(raw)
}
