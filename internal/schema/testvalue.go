package schema

import "encoding/json"

// TestValue picks a representative JSON literal for a JSON Schema property.
//
// Priority:
//   - the property's "default", JSON-encoded
//   - the first "enum" value, JSON-encoded
//   - a zero literal for the property's type (see zeroLiteral)
func TestValue(prop map[string]any) string {
	if def, ok := prop["default"]; ok {
		if text, err := json.Marshal(def); err == nil {
			return string(text)
		}
	}
	if enum, ok := prop["enum"].([]any); ok && len(enum) > 0 {
		if text, err := json.Marshal(enum[0]); err == nil {
			return string(text)
		}
	}
	return zeroLiteral(schemaType(prop["type"]))
}

// schemaType resolves a JSON Schema "type" to a single type name. For
// nullable types like ["string", "null"] the first non-"null" entry wins.
func schemaType(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case []any:
		for _, entry := range v {
			if s, ok := entry.(string); ok && s != "null" {
				return s
			}
		}
	}
	return ""
}

// zeroLiteral maps a type name to its placeholder literal. Strings and arrays
// use the `""` and `[]` forms that render as null in a fixture.
func zeroLiteral(t string) string {
	switch t {
	case "string":
		return `""`
	case "integer":
		return "0"
	case "number":
		return "0.0"
	case "boolean":
		return "false"
	case "array":
		return "[]"
	default:
		return "null"
	}
}
