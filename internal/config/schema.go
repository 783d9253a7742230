package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/unbound-force/vitestlint/internal/taxonomy"
)

const schemaURL = "https://github.com/unbound-force/vitestlint/config.schema.json"

// Schema returns the JSON Schema of the config file. The allowed
// function names come from taxonomy.AllFunctions.
func Schema() string {
	names := make([]string, 0, len(taxonomy.AllFunctions()))
	for _, n := range taxonomy.AllFunctions() {
		names = append(names, string(n))
	}
	enum, _ := json.Marshal(names)

	return strings.NewReplacer("{{FUNCTIONS}}", string(enum)).Replace(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "` + schemaURL + `",
  "title": "vitestlint configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "types": {
      "type": "array",
      "items": { "enum": {{FUNCTIONS}} },
      "uniqueItems": true
    },
    "sourceType": {
      "enum": ["", "module", "script", "commonjs"]
    },
    "include": {
      "type": "array",
      "items": { "type": "string", "minLength": 1 }
    },
    "exclude": {
      "type": "array",
      "items": { "type": "string", "minLength": 1 }
    },
    "concurrency": {
      "type": "integer",
      "minimum": 0
    }
  }
}`)
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(Schema()))
	if err != nil {
		return nil, fmt.Errorf("parsing config schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding config schema: %w", err)
	}
	schema, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	return schema, nil
}
