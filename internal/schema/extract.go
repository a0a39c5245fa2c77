// Package schema builds tool arguments from a JSON Schema object, such as
// the inputSchema of an MCP tool.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/thellimist/fixturegen/internal/descriptor"
)

// Schema extension keywords understood on properties.
const (
	// KeywordCategory places a property in "positional" or "common" instead
	// of the required/optional split implied by the schema.
	KeywordCategory = "x-category"
	// KeywordCompanionOf names the property this one accompanies. Companion
	// properties are not arguments of their own.
	KeywordCompanionOf = "x-companion-of"
)

// Extraction is the argument layout derived from a schema.
type Extraction struct {
	Arguments  descriptor.ArgumentSet
	Companions map[string][]descriptor.Argument
}

// Extract parses a JSON Schema and returns one argument per property, named
// "--<property>". Properties listed in "required" go to the required
// category, the rest to optional. Within each category arguments are sorted
// by name.
//
// Edge cases:
//   - nil, empty or "null" schema → empty extraction, no error
//   - missing or empty "properties" → empty extraction, no error
//   - unknown x-category value → error
func Extract(inputSchema json.RawMessage) (Extraction, error) {
	var ex Extraction
	if len(inputSchema) == 0 || string(inputSchema) == "null" {
		return ex, nil
	}

	var root map[string]any
	if err := json.Unmarshal(inputSchema, &root); err != nil {
		return ex, fmt.Errorf("schema: failed to parse inputSchema: %w", err)
	}

	properties, _ := root["properties"].(map[string]any)
	if len(properties) == 0 {
		return ex, nil
	}

	requiredSet := make(map[string]bool)
	if reqArr, ok := root["required"].([]any); ok {
		for _, v := range reqArr {
			if s, ok := v.(string); ok {
				requiredSet[s] = true
			}
		}
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		arg := descriptor.Argument{Name: "--" + name, TestValue: TestValue(prop)}

		if owner, ok := prop[KeywordCompanionOf].(string); ok && owner != "" {
			if ex.Companions == nil {
				ex.Companions = make(map[string][]descriptor.Argument)
			}
			ex.Companions["--"+owner] = append(ex.Companions["--"+owner], arg)
			continue
		}

		category := descriptor.Optional
		if requiredSet[name] {
			category = descriptor.Required
		}
		if c, ok := prop[KeywordCategory].(string); ok {
			switch descriptor.Category(c) {
			case descriptor.Positional, descriptor.Required, descriptor.Optional, descriptor.Common:
				category = descriptor.Category(c)
			default:
				return Extraction{}, fmt.Errorf("schema: property %q: unknown %s %q", name, KeywordCategory, c)
			}
		}
		ex.Arguments = appendTo(ex.Arguments, category, arg)
	}

	return ex, nil
}

func appendTo(set descriptor.ArgumentSet, c descriptor.Category, arg descriptor.Argument) descriptor.ArgumentSet {
	switch c {
	case descriptor.Positional:
		set.Positional = append(set.Positional, arg)
	case descriptor.Required:
		set.Required = append(set.Required, arg)
	case descriptor.Common:
		set.Common = append(set.Common, arg)
	default:
		set.Optional = append(set.Optional, arg)
	}
	return set
}
