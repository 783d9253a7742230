package report

// Schema is the JSON Schema (Draft 2020-12) for the vitestlint JSON
// output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/vitestlint/check-report.schema.json",
  "title": "vitestlint Check Report",
  "description": "Output schema for vitestlint check --format=json",
  "type": "object",
  "required": ["version", "results"],
  "properties": {
    "version": {
      "type": "string",
      "description": "vitestlint version"
    },
    "metadata": { "$ref": "#/$defs/Metadata" },
    "results": {
      "type": "array",
      "items": { "$ref": "#/$defs/FileResult" }
    }
  },
  "$defs": {
    "FileResult": {
      "type": "object",
      "required": ["file", "source_type", "diagnostics"],
      "properties": {
        "file": {
          "type": "string",
          "description": "Path as given on the command line"
        },
        "source_type": {
          "type": "string",
          "enum": ["module", "script", "commonjs"]
        },
        "diagnostics": {
          "type": "array",
          "maxItems": 1,
          "items": { "$ref": "#/$defs/Diagnostic" }
        },
        "warnings": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    },
    "Diagnostic": {
      "type": "object",
      "required": ["id", "rule", "message", "file", "start", "end", "functions"],
      "properties": {
        "id": {
          "type": "string",
          "pattern": "^vi-[0-9a-f]{8}$",
          "description": "Stable identifier (vi-XXXXXXXX)"
        },
        "rule": {
          "type": "string",
          "const": "prefer-importing-vitest-globals"
        },
        "message": { "type": "string" },
        "file": { "type": "string" },
        "start": { "$ref": "#/$defs/Position" },
        "end": { "$ref": "#/$defs/Position" },
        "functions": {
          "type": "array",
          "minItems": 1,
          "items": { "type": "string" },
          "description": "Missing framework functions in discovery order"
        },
        "fix": { "$ref": "#/$defs/Fix" }
      }
    },
    "Position": {
      "type": "object",
      "required": ["line", "column"],
      "properties": {
        "line": { "type": "integer", "minimum": 1 },
        "column": { "type": "integer", "minimum": 1 }
      }
    },
    "Fix": {
      "type": "object",
      "required": ["range", "text"],
      "properties": {
        "range": {
          "type": "object",
          "required": ["start", "end"],
          "properties": {
            "start": { "type": "integer", "minimum": 0 },
            "end": { "type": "integer", "minimum": 0 }
          }
        },
        "text": { "type": "string" }
      }
    },
    "Metadata": {
      "type": "object",
      "required": ["version", "files", "duration_ms"],
      "properties": {
        "version": { "type": "string" },
        "files": { "type": "integer", "minimum": 0 },
        "timestamp": { "type": "string" },
        "duration_ms": {
          "type": "integer",
          "description": "Run duration in milliseconds"
        },
        "warnings": {
          "oneOf": [
            { "type": "array", "items": { "type": "string" } },
            { "type": "null" }
          ],
          "description": "Run warnings, if any"
        }
      }
    }
  }
}`
