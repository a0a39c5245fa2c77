package descriptor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder used by Parse.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension. Anything that is not
// ".json" is treated as YAML.
func FormatFor(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads and validates a descriptor file.
func Load(path string) (*ToolDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: reading %s: %w", path, err)
	}
	d, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return d, nil
}

// Parse decodes and validates a descriptor from raw bytes.
func Parse(data []byte, format Format) (*ToolDescriptor, error) {
	var d ToolDescriptor
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("descriptor: parsing json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("descriptor: parsing yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("descriptor: unknown format %q", format)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// FromMap decodes and validates a descriptor from a generic map, such as the
// arguments of an MCP tool call. Non-string test values are converted to
// their JSON text.
func FromMap(m map[string]any) (*ToolDescriptor, error) {
	var d ToolDescriptor
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(nullTestValueHook, literalHook),
		ErrorUnused: true,
		Result:      &d,
	})
	if err != nil {
		return nil, fmt.Errorf("descriptor: building decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("descriptor: decoding map: %w", err)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// nullTestValueHook turns an explicit nil testValue into the JSON null
// literal. mapstructure skips hooks for nil values, so this runs on the
// argument's map before its fields are decoded.
func nullTestValueHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Argument{}) {
		return data, nil
	}
	m, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	v, present := m["testValue"]
	if !present || v != nil {
		return data, nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	out["testValue"] = "null"
	return out, nil
}

// literalHook lets numbers, booleans, lists and objects land in string fields
// as JSON text, so `testValue: 5` and `testValue: "5"` are equivalent.
func literalHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() == reflect.String || data == nil {
		return data, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding %v as json: %w", data, err)
	}
	return string(raw), nil
}

// UnmarshalJSON accepts testValue either as a string holding JSON text or as
// an inline JSON value.
func (a *Argument) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string          `json:"name"`
		TestValue json.RawMessage `json:"testValue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Name = raw.Name
	a.TestValue = ""

	tv := bytes.TrimSpace(raw.TestValue)
	if len(tv) == 0 {
		return nil
	}
	if tv[0] == '"' {
		return json.Unmarshal(tv, &a.TestValue)
	}
	a.TestValue = string(tv)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents: scalars keep their
// literal text, sequences and mappings are re-encoded as JSON.
func (a *Argument) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Name      string    `yaml:"name"`
		TestValue yaml.Node `yaml:"testValue"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	a.Name = raw.Name
	a.TestValue = ""

	switch raw.TestValue.Kind {
	case 0:
		return nil
	case yaml.ScalarNode:
		return a.scalarTestValue(&raw.TestValue)
	default:
		var v any
		if err := raw.TestValue.Decode(&v); err != nil {
			return err
		}
		text, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("line %d: testValue is not representable as json: %w", raw.TestValue.Line, err)
		}
		a.TestValue = string(text)
		return nil
	}
}

// scalarTestValue maps a YAML scalar to JSON text. Strings hold JSON text
// already; other scalars keep their literal when it is valid JSON and are
// re-encoded otherwise (~, True, 0x1f, 1_000).
func (a *Argument) scalarTestValue(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!str":
		a.TestValue = n.Value
		return nil
	case "!!null":
		a.TestValue = "null"
		return nil
	}
	if json.Valid([]byte(n.Value)) {
		a.TestValue = n.Value
		return nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	text, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("line %d: testValue %q is not representable as json: %w", n.Line, n.Value, err)
	}
	a.TestValue = string(text)
	return nil
}
