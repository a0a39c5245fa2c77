package descriptor

// ArgumentNames returns the primary argument names in rendering order.
func (d *ToolDescriptor) ArgumentNames() []string {
	names := make([]string, 0, d.Arguments.Len())
	for _, c := range Categories {
		for _, arg := range d.Arguments.In(c) {
			names = append(names, arg.Name)
		}
	}
	return names
}

// Retain returns a copy of d holding only the primary arguments whose names
// are in keep. Companion resources of dropped arguments are no longer
// reachable and therefore not rendered.
func (d *ToolDescriptor) Retain(keep []string) *ToolDescriptor {
	set := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		set[name] = struct{}{}
	}
	filter := func(args []Argument) []Argument {
		var out []Argument
		for _, arg := range args {
			if _, ok := set[arg.Name]; ok {
				out = append(out, arg)
			}
		}
		return out
	}

	out := d.Clone()
	out.Arguments = ArgumentSet{
		Positional: filter(out.Arguments.Positional),
		Required:   filter(out.Arguments.Required),
		Optional:   filter(out.Arguments.Optional),
		Common:     filter(out.Arguments.Common),
	}
	return out
}
