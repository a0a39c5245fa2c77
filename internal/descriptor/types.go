package descriptor

// Category names one of the four argument groups of a tool.
type Category string

const (
	Positional Category = "positional"
	Required   Category = "required"
	Optional   Category = "optional"
	Common     Category = "common"
)

// Categories lists the argument groups in rendering order.
var Categories = []Category{Positional, Required, Optional, Common}

// Argument is a single tool argument and the literal JSON text used as its
// test value (e.g. `5`, `""`, `[]`, `null`).
type Argument struct {
	Name      string `json:"name" yaml:"name" mapstructure:"name"`
	TestValue string `json:"testValue" yaml:"testValue" mapstructure:"testValue"`
}

// ArgumentSet holds a tool's arguments split by category. Order within each
// slice is the tool's declaration order.
type ArgumentSet struct {
	Positional []Argument `json:"positional,omitempty" yaml:"positional,omitempty" mapstructure:"positional"`
	Required   []Argument `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Optional   []Argument `json:"optional,omitempty" yaml:"optional,omitempty" mapstructure:"optional"`
	Common     []Argument `json:"common,omitempty" yaml:"common,omitempty" mapstructure:"common"`
}

// In returns the arguments of the given category.
func (s ArgumentSet) In(c Category) []Argument {
	switch c {
	case Positional:
		return s.Positional
	case Required:
		return s.Required
	case Optional:
		return s.Optional
	case Common:
		return s.Common
	}
	return nil
}

// Len returns the total number of arguments across all categories.
func (s ArgumentSet) Len() int {
	return len(s.Positional) + len(s.Required) + len(s.Optional) + len(s.Common)
}

// RuntimeProperties are optional overrides for the task's runtime block.
// An empty field means "not supplied".
type RuntimeProperties struct {
	MemoryRequirements         string `json:"memoryRequirements,omitempty" yaml:"memoryRequirements,omitempty" mapstructure:"memoryRequirements"`
	DiskRequirements           string `json:"diskRequirements,omitempty" yaml:"diskRequirements,omitempty" mapstructure:"diskRequirements"`
	CPURequirements            string `json:"cpuRequirements,omitempty" yaml:"cpuRequirements,omitempty" mapstructure:"cpuRequirements"`
	PreemptibleRequirements    string `json:"preemptibleRequirements,omitempty" yaml:"preemptibleRequirements,omitempty" mapstructure:"preemptibleRequirements"`
	BootDiskSizeGbRequirements string `json:"bootDiskSizeGbRequirements,omitempty" yaml:"bootDiskSizeGbRequirements,omitempty" mapstructure:"bootDiskSizeGbRequirements"`
}

// ToolDescriptor describes a wrapped tool: its task name, version, arguments,
// runtime overrides and the companion resources that accompany arguments.
type ToolDescriptor struct {
	Name               string                `json:"name" yaml:"name" mapstructure:"name"`
	Version            string                `json:"version" yaml:"version" mapstructure:"version"`
	Arguments          ArgumentSet           `json:"arguments" yaml:"arguments" mapstructure:"arguments"`
	RuntimeProperties  *RuntimeProperties    `json:"runtimeProperties,omitempty" yaml:"runtimeProperties,omitempty" mapstructure:"runtimeProperties"`
	CompanionResources map[string][]Argument `json:"companionResources,omitempty" yaml:"companionResources,omitempty" mapstructure:"companionResources"`
}

// Companions returns the companion resources registered for argName, in order.
func (d *ToolDescriptor) Companions(argName string) []Argument {
	if d.CompanionResources == nil {
		return nil
	}
	return d.CompanionResources[argName]
}
