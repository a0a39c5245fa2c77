// Package fixture renders the JSON test-input document for a wrapped tool.
//
// A document is an ordered list of entries: the preamble (docker image and
// invocation command), the five runtime properties, then the arguments of the
// positional, required, optional and common categories. Each argument is
// preceded by its companion resources.
package fixture

import (
	"strings"

	"github.com/thellimist/fixturegen/internal/descriptor"
)

const (
	// DockerRepository is the image the task runs in; the tool version is the tag.
	DockerRepository = "broadinstitute/gatk"
	// InvocationCommand runs the wrapped tool's command line.
	InvocationCommand = "/gatk/gatk"
	// Placeholder is written for runtime properties the caller did not supply.
	Placeholder = "String"
	// PositionalKey is the input shared by every positional argument.
	PositionalKey = "positionalArgs"
)

// Group identifies the block an entry belongs to. Blocks are separated by a
// blank line in the rendered text.
type Group string

const (
	GroupPreamble Group = "preamble"
	GroupRuntime  Group = "runtime"
)

// Entry is one key/value line of the document. Value is literal JSON text.
type Entry struct {
	Key   string
	Value string
	Group Group
}

// Options adjust rendering.
type Options struct {
	// CollapsePositionals emits a single positionalArgs entry holding an
	// array of every positional value instead of one entry per positional.
	CollapsePositionals bool
}

// Render validates d and returns the fixture document. On error no text is
// returned.
func Render(d *descriptor.ToolDescriptor, opts Options) (string, error) {
	entries, err := Entries(d, opts)
	if err != nil {
		return "", err
	}
	return Format(entries), nil
}

// Entries returns the flattened, ordered entries of the document for d.
func Entries(d *descriptor.ToolDescriptor, opts Options) ([]Entry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	entries := preambleEntries(d)
	entries = append(entries, runtimeEntries(d)...)
	for _, c := range descriptor.Categories {
		entries = append(entries, categoryEntries(d, c, opts)...)
	}
	return entries, nil
}

// Format writes entries as a JSON object. Every entry but the last is
// followed by a comma.
func Format(entries []Entry) string {
	var b strings.Builder
	b.WriteString("{\n")
	last := len(entries) - 1
	for i, e := range entries {
		if i > 0 && entries[i-1].Group != e.Group {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		b.WriteString(quote(e.Key))
		b.WriteString(": ")
		b.WriteString(e.Value)
		if i != last {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}

func key(d *descriptor.ToolDescriptor, suffix string) string {
	return d.Name + "." + suffix
}

func preambleEntries(d *descriptor.ToolDescriptor) []Entry {
	return []Entry{
		{Key: key(d, "dockerImage"), Value: quote(DockerRepository + ":" + d.Version), Group: GroupPreamble},
		{Key: key(d, "gatk"), Value: quote(InvocationCommand), Group: GroupPreamble},
	}
}

func runtimeEntries(d *descriptor.ToolDescriptor) []Entry {
	var rp descriptor.RuntimeProperties
	if d.RuntimeProperties != nil {
		rp = *d.RuntimeProperties
	}
	fields := []struct {
		suffix string
		value  string
	}{
		{"memoryRequirements", rp.MemoryRequirements},
		{"diskRequirements", rp.DiskRequirements},
		{"cpuRequirements", rp.CPURequirements},
		{"preemptibleRequirements", rp.PreemptibleRequirements},
		{"bootdisksizegbRequirements", rp.BootDiskSizeGbRequirements},
	}

	entries := make([]Entry, 0, len(fields))
	for _, f := range fields {
		v := f.value
		if v == "" {
			v = Placeholder
		}
		entries = append(entries, Entry{Key: key(d, f.suffix), Value: quote(v), Group: GroupRuntime})
	}
	return entries
}

func categoryEntries(d *descriptor.ToolDescriptor, c descriptor.Category, opts Options) []Entry {
	args := d.Arguments.In(c)
	group := Group(c)

	if c == descriptor.Positional && opts.CollapsePositionals {
		if len(args) == 0 {
			return nil
		}
		var entries []Entry
		values := make([]string, 0, len(args))
		for _, arg := range args {
			entries = append(entries, companionEntries(d, arg, group)...)
			values = append(values, ResolveValue(arg.TestValue))
		}
		return append(entries, Entry{
			Key:   key(d, PositionalKey),
			Value: "[" + strings.Join(values, ", ") + "]",
			Group: group,
		})
	}

	var entries []Entry
	for _, arg := range args {
		entries = append(entries, companionEntries(d, arg, group)...)
		suffix := StripMarker(arg.Name)
		if c == descriptor.Positional {
			suffix = PositionalKey
		}
		entries = append(entries, Entry{Key: key(d, suffix), Value: ResolveValue(arg.TestValue), Group: group})
	}
	return entries
}

func companionEntries(d *descriptor.ToolDescriptor, arg descriptor.Argument, group Group) []Entry {
	companions := d.Companions(arg.Name)
	entries := make([]Entry, 0, len(companions))
	for _, comp := range companions {
		entries = append(entries, Entry{
			Key:   key(d, StripMarker(comp.Name)),
			Value: ResolveValue(comp.TestValue),
			Group: group,
		})
	}
	return entries
}
