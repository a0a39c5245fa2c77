package fixture

import (
	"bytes"
	"encoding/json"
	"strings"
)

// nullSentinels are the test-value texts rendered as a JSON null. They are
// compared as exact text: `[ ]` or `''` are emitted verbatim.
var nullSentinels = map[string]struct{}{
	`[]`:   {},
	`""`:   {},
	`null`: {},
}

// ResolveValue returns the literal written after an entry's colon.
func ResolveValue(testValue string) string {
	if IsNullSentinel(testValue) {
		return "null"
	}
	return testValue
}

// IsNullSentinel reports whether testValue is one of the texts that mean
// "caller must supply a value".
func IsNullSentinel(testValue string) bool {
	_, ok := nullSentinels[testValue]
	return ok
}

// StripMarker removes the leading "--" flag prefix from an argument name.
// Names without the prefix are returned unchanged.
func StripMarker(name string) string {
	return strings.TrimPrefix(name, "--")
}

// quote encodes s as a JSON string without HTML escaping.
func quote(s string) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(b.String(), "\n")
}
