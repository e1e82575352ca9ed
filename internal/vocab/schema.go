package vocab

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const documentSchemaURL = "schema://lexiz/vocabulary.json"

// documentSchema describes a vocabulary file. Struct-level rules that need
// cross-entry context (duplicate ids) live in Validate.
var documentSchema = map[string]any{
	"type":     "object",
	"required": []any{"topics"},
	"properties": map[string]any{
		"topics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "terms"},
				"properties": map[string]any{
					"id":   map[string]any{"type": "string", "minLength": 1},
					"name": map[string]any{"type": "string"},
					"terms": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "text", "meaning"},
							"properties": map[string]any{
								"id":       map[string]any{"type": "integer", "minimum": 0},
								"text":     map[string]any{"type": "string", "minLength": 1},
								"category": map[string]any{"type": "string"},
								"meaning":  map[string]any{"type": "string", "minLength": 1},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
	compileOnce       sync.Once
)

func getDocumentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain JSON value, so round-trip the definition.
		defBytes, err := json.Marshal(documentSchema)
		if err != nil {
			compiledSchemaErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compiledSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, defParsed); err != nil {
			compiledSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = c.Compile(documentSchemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// checkSchema validates a decoded document (any YAML or JSON value).
func checkSchema(raw any) error {
	schema, err := getDocumentSchema()
	if err != nil {
		return fmt.Errorf("compile vocabulary schema: %w", err)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
