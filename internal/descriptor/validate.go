package descriptor

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMalformed is matched by every MalformedError.
var ErrMalformed = errors.New("malformed descriptor")

// MalformedError reports a required descriptor field that is missing.
type MalformedError struct {
	Field  string // e.g. "name", "arguments.required[2].testValue"
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("descriptor: %s: %s", e.Field, e.Reason)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// Validate checks that every structural field needed for rendering is present.
// Test values are not parsed; only their presence is checked.
func (d *ToolDescriptor) Validate() error {
	if d == nil {
		return &MalformedError{Field: "descriptor", Reason: "is nil"}
	}
	if d.Name == "" {
		return &MalformedError{Field: "name", Reason: "is required"}
	}
	if d.Version == "" {
		return &MalformedError{Field: "version", Reason: "is required"}
	}

	for _, c := range Categories {
		for i, arg := range d.Arguments.In(c) {
			if err := validateArgument(fmt.Sprintf("arguments.%s[%d]", c, i), arg); err != nil {
				return err
			}
		}
	}

	owners := make([]string, 0, len(d.CompanionResources))
	for owner := range d.CompanionResources {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	for _, owner := range owners {
		if owner == "" {
			return &MalformedError{Field: "companionResources", Reason: "contains an empty argument name"}
		}
		for i, arg := range d.CompanionResources[owner] {
			if err := validateArgument(fmt.Sprintf("companionResources[%s][%d]", owner, i), arg); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateArgument(field string, arg Argument) error {
	if arg.Name == "" {
		return &MalformedError{Field: field + ".name", Reason: "is required"}
	}
	if arg.TestValue == "" {
		return &MalformedError{Field: field + ".testValue", Reason: "is required"}
	}
	return nil
}
