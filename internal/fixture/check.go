package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
)

// Report summarises a fixture document.
type Report struct {
	Keys       []string // every key in document order, duplicates included
	Duplicates []string // keys seen more than once, in order of first repeat
	Nulls      []string // keys whose value is null
}

// Check verifies that doc is a valid JSON object and reports its keys.
// Duplicate keys are reported, not rejected.
func Check(doc []byte) (Report, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return Report{}, fmt.Errorf("fixture: invalid json: %w", err)
	}
	if _, ok := v.(map[string]any); !ok {
		return Report{}, fmt.Errorf("fixture: document is %T, want a json object", v)
	}

	var r Report
	seen := make(map[string]int)
	// ObjectEach hands over keys already unescaped.
	err := jsonparser.ObjectEach(doc, func(k, _ []byte, t jsonparser.ValueType, _ int) error {
		name := string(k)
		r.Keys = append(r.Keys, name)
		seen[name]++
		if seen[name] == 2 {
			r.Duplicates = append(r.Duplicates, name)
		}
		if t == jsonparser.Null {
			r.Nulls = append(r.Nulls, name)
		}
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("fixture: scanning keys: %w", err)
	}
	return r, nil
}
