package descriptor

import (
	"fmt"
	"strings"
)

// runtimeFields maps accepted --runtime keys to the field they set.
var runtimeFields = map[string]func(*RuntimeProperties) *string{
	"memoryRequirements":         func(r *RuntimeProperties) *string { return &r.MemoryRequirements },
	"diskRequirements":           func(r *RuntimeProperties) *string { return &r.DiskRequirements },
	"cpuRequirements":            func(r *RuntimeProperties) *string { return &r.CPURequirements },
	"preemptibleRequirements":    func(r *RuntimeProperties) *string { return &r.PreemptibleRequirements },
	"bootDiskSizeGbRequirements": func(r *RuntimeProperties) *string { return &r.BootDiskSizeGbRequirements },
	"memory":                     func(r *RuntimeProperties) *string { return &r.MemoryRequirements },
	"disk":                       func(r *RuntimeProperties) *string { return &r.DiskRequirements },
	"cpu":                        func(r *RuntimeProperties) *string { return &r.CPURequirements },
	"preemptible":                func(r *RuntimeProperties) *string { return &r.PreemptibleRequirements },
	"bootdisk":                   func(r *RuntimeProperties) *string { return &r.BootDiskSizeGbRequirements },
}

// Pair is one parsed key=value entry.
type Pair struct {
	Key   string
	Value string
}

// ParsePairs splits key=value entries on the first '='. flag names the
// originating option in error messages. An entry without '=' or with an
// empty key is an error; an empty value is allowed.
func ParsePairs(flag string, entries []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(entries))
	for _, entry := range entries {
		idx := strings.Index(entry, "=")
		if idx < 0 {
			return nil, fmt.Errorf("descriptor: invalid %s %q: expected key=value", flag, entry)
		}
		key := entry[:idx]
		if key == "" {
			return nil, fmt.Errorf("descriptor: invalid %s %q: empty key", flag, entry)
		}
		pairs = append(pairs, Pair{Key: key, Value: entry[idx+1:]})
	}
	return pairs, nil
}

// Overrides are caller-supplied adjustments applied on top of a loaded
// descriptor.
type Overrides struct {
	Runtime []string // --runtime field=value
	Values  []string // --set argName=jsonLiteral
}

// Empty reports whether there is nothing to apply.
func (o Overrides) Empty() bool {
	return len(o.Runtime) == 0 && len(o.Values) == 0
}

// Apply returns a copy of d with the overrides applied. d is not mutated.
// Later entries win over earlier ones. A --set naming an argument or
// companion that does not exist is an error.
func Apply(d *ToolDescriptor, o Overrides) (*ToolDescriptor, error) {
	out := d.Clone()

	runtime, err := ParsePairs("--runtime", o.Runtime)
	if err != nil {
		return nil, err
	}
	for _, p := range runtime {
		field, ok := runtimeFields[p.Key]
		if !ok {
			return nil, fmt.Errorf("descriptor: unknown runtime property %q", p.Key)
		}
		if out.RuntimeProperties == nil {
			out.RuntimeProperties = &RuntimeProperties{}
		}
		*field(out.RuntimeProperties) = p.Value
	}

	values, err := ParsePairs("--set", o.Values)
	if err != nil {
		return nil, err
	}
	for _, p := range values {
		if p.Value == "" {
			return nil, fmt.Errorf("descriptor: invalid --set %q: empty test value", p.Key+"=")
		}
		if n := out.setTestValue(p.Key, p.Value); n == 0 {
			return nil, fmt.Errorf("descriptor: --set %q: no argument or companion resource with that name", p.Key)
		}
	}

	return out, nil
}

// setTestValue updates every argument and companion named name and returns
// how many were changed.
func (d *ToolDescriptor) setTestValue(name, value string) int {
	n := 0
	update := func(args []Argument) {
		for i := range args {
			if args[i].Name == name {
				args[i].TestValue = value
				n++
			}
		}
	}
	for _, c := range Categories {
		update(d.Arguments.In(c))
	}
	for _, companions := range d.CompanionResources {
		update(companions)
	}
	return n
}

// Clone returns a deep copy of d.
func (d *ToolDescriptor) Clone() *ToolDescriptor {
	out := *d
	out.Arguments = ArgumentSet{
		Positional: cloneArgs(d.Arguments.Positional),
		Required:   cloneArgs(d.Arguments.Required),
		Optional:   cloneArgs(d.Arguments.Optional),
		Common:     cloneArgs(d.Arguments.Common),
	}
	if d.RuntimeProperties != nil {
		rp := *d.RuntimeProperties
		out.RuntimeProperties = &rp
	}
	if d.CompanionResources != nil {
		out.CompanionResources = make(map[string][]Argument, len(d.CompanionResources))
		for k, v := range d.CompanionResources {
			out.CompanionResources[k] = cloneArgs(v)
		}
	}
	return &out
}

func cloneArgs(src []Argument) []Argument {
	if src == nil {
		return nil
	}
	dst := make([]Argument, len(src))
	copy(dst, src)
	return dst
}
