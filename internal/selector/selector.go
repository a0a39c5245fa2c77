// Package selector narrows a list of names with include or exclude lists.
package selector

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "Did you mean" suggestion.
const maxSuggestDistance = 3

// ParseList splits a comma-separated string into a deduplicated, trimmed
// list of names. Empty entries are dropped; first occurrence wins.
func ParseList(csv string) []string {
	if csv == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var result []string
	for _, p := range strings.Split(csv, ",") {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

// Selector applies include/exclude lists to names of one kind ("tool",
// "argument") and phrases errors accordingly.
type Selector struct {
	Kind string
	// AllowEmpty accepts an exclude list that removes every name.
	AllowEmpty bool
}

// Select returns the names of available that survive include or exclude,
// in the order of available. Both lists empty returns available unchanged.
// Every included name must exist.
func (s Selector) Select(available, include, exclude []string) ([]string, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("include and exclude lists cannot be used together")
	}
	if len(include) == 0 && len(exclude) == 0 {
		return available, nil
	}

	known := make(map[string]struct{}, len(available))
	for _, name := range available {
		known[name] = struct{}{}
	}

	if len(include) > 0 {
		wanted := make(map[string]struct{}, len(include))
		for _, name := range include {
			if _, ok := known[name]; !ok {
				return nil, s.notFound(name, available)
			}
			wanted[name] = struct{}{}
		}
		return keep(available, func(name string) bool { _, ok := wanted[name]; return ok }), nil
	}

	dropped := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		dropped[name] = struct{}{}
	}
	result := keep(available, func(name string) bool { _, ok := dropped[name]; return !ok })
	if len(result) == 0 && !s.AllowEmpty {
		return nil, fmt.Errorf("all %ss excluded, nothing to render", s.kind())
	}
	return result, nil
}

func (s Selector) kind() string {
	if s.Kind == "" {
		return "name"
	}
	return s.Kind
}

func (s Selector) notFound(name string, available []string) error {
	msg := fmt.Sprintf("%s '%s' not found. Available %ss: %s",
		s.kind(), name, s.kind(), strings.Join(available, ", "))
	if suggestion := Suggest(name, available); suggestion != "" {
		msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
	}
	return fmt.Errorf("%s", msg)
}

func keep(names []string, pred func(string) bool) []string {
	var out []string
	for _, name := range names {
		if pred(name) {
			out = append(out, name)
		}
	}
	return out
}

// Suggest returns the entry of available closest to name, or "" when
// nothing is within maxSuggestDistance edits.
func Suggest(name string, available []string) string {
	best, bestDist := "", -1
	for _, candidate := range available {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if bestDist >= 0 && bestDist <= maxSuggestDistance {
		return best
	}
	return ""
}
